package commands

import (
	"context"

	"github.com/contre95/presetcli/src/features/config"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	debug      bool
}

// NewRootCommand builds the presetcli command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "presetcli",
		Short:        "Search, preview and install synth presets from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath(), "path to the configuration file")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newPresetShareCommand(flags),
		newCacheCommand(flags),
		newHistoryCommand(flags),
		newConfigCommand(flags),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
