package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/atlas/internal/dashboard"
	"github.com/taigrr/atlas/internal/logger"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		view   string
		output string
		clock  float64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a view's geometry as binary glTF",
		Example: `  atlas export --view cloud -o cloud.glb
  atlas export --view terrain --time 3.5 -o terrain.glb`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = view + ".glb"
			}
			return dashboard.Export(a.cfg, view, output, clock, logger.Named("export"))
		},
	}
	cmd.Flags().StringVar(&view, "view", dashboard.ViewCloud, "View to export (cloud or terrain)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .glb path (default <view>.glb)")
	cmd.Flags().Float64Var(&clock, "time", 0, "Terrain animation time to sample")
	return cmd
}
