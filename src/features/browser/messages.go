package browser

import "github.com/contre95/presetcli/src/preset"

// Completion messages of async actions. They carry the row index the action started on,
// so a result is never re-resolved after the cursor moved.
type previewDoneMsg struct {
	index int
	done  <-chan struct{}
	err   error
}

// playbackEndedMsg reports that the preview started as seq has stopped playing.
type playbackEndedMsg struct{ seq int }

type importDoneMsg struct {
	index int
	path  string
	err   error
}

type moreResultsMsg struct {
	results preset.SearchResults
	err     error
}

type stoppedMsg struct{ err error }

// refreshMsg asks the model to re-derive every row indicator from disk.
type refreshMsg struct{}

type statusClearMsg struct{ id int }
