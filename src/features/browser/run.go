package browser

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/contre95/presetcli/src/infra/watcher"
	"github.com/contre95/presetcli/src/preset"
)

// Run starts the browser and blocks until the user quits. Changes received on events
// refresh the downloaded indicators; events may be nil.
func Run(ctx context.Context, results preset.SearchResults, previewer Previewer, installer Installer, pager Pager, events <-chan watcher.FileEvent) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if err := previewer.Stop(); err != nil {
			slog.Warn("Failed to stop playback", "error", err)
		}
	}()

	m := NewModel(ctx, results, previewer, installer, pager)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if events != nil {
		go func() {
			for {
				select {
				case event, ok := <-events:
					if !ok {
						return
					}
					slog.Debug("Refreshing download indicators", "path", event.Path, "type", event.EventType)
					p.Send(refreshMsg{})
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	_, err := p.Run()
	return err
}
