package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/atlas/internal/dashboard"
	"github.com/taigrr/atlas/internal/host"
	"github.com/taigrr/atlas/internal/logger"
)

func newWindowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Show both views in a desktop window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Named("window")
			d, err := dashboard.New(a.cfg, log)
			if err != nil {
				return err
			}
			return host.RunWindow(cmd.Context(), d, host.WindowOptions{
				Title:  "atlas",
				Width:  a.cfg.Display.Width,
				Height: a.cfg.Display.Height,
				FPS:    a.cfg.Display.FPS,
			}, log)
		},
	}
}
