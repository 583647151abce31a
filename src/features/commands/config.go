package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{configPath: root.configPath, debug: root.debug})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprint(cmd.OutOrStdout(), a.manager.GetYAML())
			return nil
		},
	})
	return cmd
}
