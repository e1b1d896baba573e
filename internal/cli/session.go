package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/infra/config"
	"github.com/aalvaropc/meshviz/internal/infra/logger"
	"github.com/aalvaropc/meshviz/internal/infra/meshfile"
	"github.com/aalvaropc/meshviz/internal/infra/meshloader"
	"github.com/aalvaropc/meshviz/internal/infra/resource"
	"github.com/aalvaropc/meshviz/internal/infra/urdf"
	"github.com/aalvaropc/meshviz/internal/ports"
	"github.com/aalvaropc/meshviz/internal/usecase"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	logFile    string
	urdfPath   string
	simplify   float64
}

func (g *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default: nearest meshviz.yaml, if any)")
	pf.BoolVar(&g.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&g.logFile, "log-file", "", "Write JSON logs to this file instead of stderr")
	pf.StringVar(&g.urdfPath, "urdf", "", "Read the robot description from a file instead of the parameter server")
	pf.Float64Var(&g.simplify, "simplify", 0, "Decimate the mesh to this fraction of its triangles (0 disables)")
}

// session holds everything a command needs once flags, config and env are resolved.
type session struct {
	cfg    domain.Config
	env    config.Environment
	loader ports.MeshLoader
	parser ports.DescriptionParser

	cleanup func() error
}

// openSession sets up logging and resolves config; overrides run after the
// global flags are applied and before validation.
func openSession(cmd *cobra.Command, g *globalFlags, overrides ...func(*domain.Config)) (*session, error) {
	cleanup, err := logger.Setup(logger.Config{
		File:   g.logFile,
		Debug:  g.debug,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	cfg, err := loadConfig(g.configPath)
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("urdf") {
		cfg.Description.File = g.urdfPath
	}
	if flags.Changed("simplify") {
		cfg.Mesh.Simplify = g.simplify
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := config.Validate(cfg); err != nil {
		_ = cleanup()
		return nil, err
	}

	env, err := config.ParseEnv()
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	var opts []resource.Option
	if cfg.Description.File != "" {
		abs, err := filepath.Abs(cfg.Description.File)
		if err == nil {
			cfg.Description.File = abs
			opts = append(opts, resource.WithBaseDir(filepath.Dir(abs)))
		}
	}

	loader := meshloader.New(
		resource.NewResolver(env.PackagePath, opts...),
		meshfile.NewDecoder(),
		meshloader.WithLogger(logger.L()),
	)

	logger.L().Debug("session.opened",
		"config", g.configPath,
		"description_file", cfg.Description.File,
		"description_param", cfg.Description.Param,
		"package_path", strings.Join(env.PackagePath, ":"),
		"log_file", logger.Path(),
	)

	return &session{
		cfg:     cfg,
		env:     env,
		loader:  loader,
		parser:  urdf.NewParser(),
		cleanup: cleanup,
	}, nil
}

func (s *session) Close() error {
	if s.cleanup == nil {
		return nil
	}
	return s.cleanup()
}

func (s *session) fileSource() (ports.DescriptionSource, error) {
	if s.cfg.Description.File == "" {
		return nil, &domain.OpError{
			Op:   "cli.description",
			Kind: domain.KindMissingParameter,
			Err:  fmt.Errorf("a robot description file is required (use --urdf or description.file in %s)", config.FileName),
		}
	}
	return urdf.NewFileSource(s.cfg.Description.File), nil
}

// fileLoad builds the mesh pipeline for commands that never touch the ROS graph.
func (s *session) fileLoad() (*usecase.LoadLinkMesh, error) {
	src, err := s.fileSource()
	if err != nil {
		return nil, err
	}
	return s.load(src), nil
}

func (s *session) load(src ports.DescriptionSource) *usecase.LoadLinkMesh {
	var opts []usecase.LoadOption
	if f := s.cfg.Mesh.Simplify; f > 0 && f < 1 {
		opts = append(opts, usecase.WithSimplifier(func(m domain.Mesh) domain.Mesh {
			return meshfile.Simplify(m, f)
		}))
	}
	return usecase.NewLoadLinkMesh(src, s.parser, s.loader, opts...)
}

// loadConfig reads an explicit config file, or the nearest meshviz.yaml, or
// falls back to defaults when none exists.
func loadConfig(path string) (domain.Config, error) {
	if strings.TrimSpace(path) != "" {
		return config.LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return domain.DefaultConfig(), nil
	}
	found, err := config.NewFinder().FindFile(wd)
	if err != nil {
		return domain.DefaultConfig(), nil
	}
	return config.LoadFile(found)
}
