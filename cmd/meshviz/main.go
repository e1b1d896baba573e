package main

import "github.com/aalvaropc/meshviz/internal/cli"

func main() {
	cli.Execute()
}
