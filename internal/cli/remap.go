package cli

import (
	"strings"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// splitRemaps separates ROS remapping arguments (name:=value), which
// roslaunch appends after the node's own arguments, from the command line.
func splitRemaps(args []string) ([]string, map[string]string) {
	rest := make([]string, 0, len(args))
	remaps := map[string]string{}
	for _, a := range args {
		from, to, ok := strings.Cut(a, ":=")
		if !ok || from == "" || strings.HasPrefix(a, "-") {
			rest = append(rest, a)
			continue
		}
		remaps[from] = to
	}
	return rest, remaps
}

// applyRemaps honours the special remappings that affect the node itself.
// An explicit --node-name wins over __name.
func applyRemaps(cfg *domain.Config, remaps map[string]string, nodeNameSet bool) {
	if name := strings.TrimSpace(remaps["__name"]); name != "" && !nodeNameSet {
		cfg.Node.Name = name
	}
}
