// atlas - spatial data views in the terminal or a window.
//
// A point cloud and an animated terrain mesh are projected on the CPU and
// drawn side by side. Drag to rotate, scroll to zoom, click a point to
// select it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/config"
	"github.com/taigrr/atlas/internal/logger"
)

var version = "dev"

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	overrides  config.Overrides

	cfg  *config.Config
	from string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs root and logs a failure once. fang prints it for the user.
func execute(ctx context.Context, root *cobra.Command) error {
	err := fang.Execute(ctx, root, fang.WithVersion(version))
	if err != nil {
		logger.Error("command failed", zap.String("command", root.Name()), zap.Error(err))
		logger.Sync()
	}
	return err
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "atlas",
		Short: "Interactive 3D point cloud and terrain views",
		Long: `atlas projects a clustered point cloud and an animated terrain wireframe
on the CPU and draws them side by side.

Controls:
  Mouse drag   rotate the pane under the pointer
  Scroll, +/-  zoom
  Arrows       spin the focused pane
  Click        select a point
  Tab          switch focus
  R            reset the focused view
  T            toggle theme
  G            toggle point cloud guides
  ?            toggle HUD
  Esc          quit`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runView(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to config file")
	a.overrides.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newViewCmd(a),
		newWindowCmd(a),
		newSnapshotCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return root
}

// load reads the config and starts console logging.
func (a *app) load() error {
	cfg, from, err := config.Load(a.configPath, a.overrides)
	if err != nil {
		return err
	}
	a.cfg, a.from = cfg, from

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, true); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if from != "" {
		logger.Debug("config loaded", zap.String("path", from))
	}
	return nil
}
