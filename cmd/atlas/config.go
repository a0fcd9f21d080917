package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/atlas/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or save the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			if a.from != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", a.from)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	var path string
	save := &cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to disk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path != "" {
				if err := a.cfg.SaveTo(path); err != nil {
					return err
				}
			} else if err := a.cfg.Save(); err != nil {
				return err
			}
			if path == "" {
				path = filepath.Join(config.ConfigDir(), config.FileName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}
	save.Flags().StringVarP(&path, "path", "p", "", "Destination (default user config dir)")
	cmd.AddCommand(save)

	return cmd
}
