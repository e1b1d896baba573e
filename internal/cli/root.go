package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/meshviz/internal/buildinfo"
	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/infra/logger"
	"github.com/aalvaropc/meshviz/internal/infra/rosbridge"
	"github.com/aalvaropc/meshviz/internal/usecase"
)

// Process exit codes. Every fatal condition exits with -1 (255 as seen by the shell).
const (
	ExitOK    = 0
	ExitFatal = -1
)

var errUsage = errors.New("missing link name")

const rootLong = `Publish a link's collision mesh as line-strip markers.

ROS remapping arguments (name:=value) are accepted and __name:= renames the node.
A link named like a subcommand (inspect, links, version) must follow "--",
e.g. meshviz -- links.`

// reportedError marks an error that was already logged.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	args, remaps := splitRemaps(args)
	cmd := newRootCmd(remaps)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var reported reportedError
	if !errors.As(err, &reported) && !errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitFatal
}

func newRootCmd(remaps map[string]string) *cobra.Command {
	var g globalFlags
	var nodeName, topic, param string
	var rate, lineWidth float64
	var once bool

	cmd := &cobra.Command{
		Use:           "meshviz link_name",
		Short:         "meshviz: publish a link's collision mesh as line-strip markers",
		Long:          rootLong,
		Version:       buildinfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printUsage(cmd.ErrOrStderr())
				return errUsage
			}
			link := args[0]

			s, err := openSession(cmd, &g, func(cfg *domain.Config) {
				flags := cmd.Flags()
				if flags.Changed("node-name") {
					cfg.Node.Name = nodeName
				}
				applyRemaps(cfg, remaps, flags.Changed("node-name"))
				if flags.Changed("topic") {
					cfg.Node.Topic = topic
				}
				if flags.Changed("rate") {
					cfg.Node.Rate = rate
				}
				if flags.Changed("param") {
					cfg.Description.Param = param
				}
				if flags.Changed("line-width") {
					cfg.Marker.LineWidth = lineWidth
				}
			})
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			return fatal(visualize(cmd.Context(), s, link, once))
		},
	}

	g.register(cmd)
	cmd.Flags().StringVar(&nodeName, "node-name", "", "ROS node name (default robot_calibration_mesh_viz)")
	cmd.Flags().StringVar(&topic, "topic", "", "Marker topic; ~name is private to the node (default ~data)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Publish rate in Hz (default 1)")
	cmd.Flags().StringVar(&param, "param", "", "Robot description parameter (default /robot_description)")
	cmd.Flags().Float64Var(&lineWidth, "line-width", 0, "Line strip width in meters (default 0.005)")
	cmd.Flags().BoolVar(&once, "once", false, "Publish a single time and exit")

	cmd.AddCommand(inspectCmd(&g))
	cmd.AddCommand(linksCmd(&g))
	cmd.AddCommand(versionCmd())
	return cmd
}

func visualize(ctx context.Context, s *session, link string, once bool) error {
	log := logger.L()

	master, err := s.env.MasterAddress()
	if err != nil {
		return err
	}

	node, err := rosbridge.Connect(rosbridge.NodeConfig{
		Name:          s.cfg.Node.Name,
		MasterAddress: master,
		Host:          s.env.AdvertisedHost(),
	})
	if err != nil {
		return err
	}
	defer node.Close()

	pub, err := rosbridge.NewPublisher(node, s.cfg.Node.Topic)
	if err != nil {
		return err
	}
	defer pub.Close()

	src := s.cfg.Description.File
	var load *usecase.LoadLinkMesh
	if src != "" {
		load, err = s.fileLoad()
		if err != nil {
			return err
		}
	} else {
		src = s.cfg.Description.Param
		load = s.load(rosbridge.NewParamSource(node, s.cfg.Description.Param))
	}

	log.Info("visualize.started",
		"node", s.cfg.Node.Name,
		"master", master,
		"topic", pub.Topic(),
		"description", src,
		"link", link,
		"period", s.cfg.Node.Period().String(),
	)

	uc := usecase.NewVisualize(load, pub,
		usecase.WithStyle(s.cfg.Marker),
		usecase.WithPeriod(s.cfg.Node.Period()),
		usecase.WithOnce(once),
		usecase.WithLogger(log),
	)
	_, err = uc.Execute(ctx, link)
	return err
}

// fatal logs err with an operator-facing summary and marks it as reported.
func fatal(err error) error {
	if err == nil {
		return nil
	}
	logger.L().Error(fatalMessage(err), "err", err)
	return reportedError{err: err}
}

func fatalMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.KindMissingParameter):
		return "robot_description not set!"
	case domain.IsKind(err, domain.KindInvalidDescription):
		return "Failed to parse URDF."
	case domain.IsKind(err, domain.KindNotFound), domain.IsKind(err, domain.KindUnsupportedGeometry), domain.IsKind(err, domain.KindInvalidMesh):
		return "Unable to load mesh"
	case domain.IsKind(err, domain.KindInvalidConfig):
		return "Invalid configuration"
	default:
		return "meshviz failed"
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  meshviz link_name")
	fmt.Fprintln(w, "  meshviz -- link_name    (when link_name is inspect, links or version)")
	fmt.Fprintln(w)
}
