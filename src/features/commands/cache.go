package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached preview and preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{configPath: root.configPath, debug: root.debug})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.providers.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	})
	return cmd
}
