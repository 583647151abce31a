package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/contre95/presetcli/src/features/importing"
	"github.com/contre95/presetcli/src/preset"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newHistoryCommand(root *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently imported presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{configPath: root.configPath, debug: root.debug})
			if err != nil {
				return err
			}
			defer a.Close()

			service := importing.NewService(a.providers, a.importers, a.history, a.metrics)
			records, err := service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No presets imported yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(records))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries, 0 for all")
	return cmd
}

func renderHistory(records []preset.ImportRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("IMPORTED", "SYNTH", "NAME", "AUTHOR", "PATH").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range records {
		t.Row(r.ImportedAt.Local().Format("2006-01-02 15:04"), r.Synth.String(), r.Name, r.Author, r.Path)
	}
	return t.String()
}
