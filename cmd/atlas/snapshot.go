package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/atlas/internal/dashboard"
	"github.com/taigrr/atlas/internal/logger"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		view   string
		output string
		width  int
		height int
		frames int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one view to a PNG file",
		Example: `  atlas snapshot --view terrain -o terrain.png
  atlas snapshot --view cloud --frames 120 --width 1024 --height 768`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &a.cfg.Snapshot
			if width > 0 {
				s.Width = width
			}
			if height > 0 {
				s.Height = height
			}
			if frames > 0 {
				s.Frames = frames
			}
			if output == "" {
				output = view + ".png"
			}

			log := logger.Named("snapshot")
			fb, err := dashboard.Snapshot(a.cfg, view, log)
			if err != nil {
				return err
			}
			if err := fb.SavePNGScaled(output, s.Width, s.Height); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.Info("snapshot saved", zap.String("path", output), zap.Int("width", s.Width), zap.Int("height", s.Height))
			return nil
		},
	}
	cmd.Flags().StringVar(&view, "view", dashboard.ViewTerrain, "View to render (cloud or terrain)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PNG path (default <view>.png)")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels")
	cmd.Flags().IntVar(&frames, "frames", 0, "Frames to run before capturing")
	return cmd
}
