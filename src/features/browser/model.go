package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/contre95/presetcli/src/preset"
)

const statusTimeout = 3 * time.Second

// Previewer plays preset previews.
type Previewer interface {
	Preview(ctx context.Context, result preset.SearchResult) (<-chan struct{}, error)
	Stop() error
}

// Installer downloads presets into synth libraries.
type Installer interface {
	IsDownloaded(result preset.SearchResult) bool
	Install(ctx context.Context, result preset.SearchResult) (string, error)
}

// Pager continues the search that produced the initial results.
type Pager interface {
	HasMore() bool
	Next(ctx context.Context) (preset.SearchResults, error)
}

// Model is the result browser. All state is owned by the bubbletea event loop; async
// actions report back through messages and never touch the model directly.
type Model struct {
	ctx       context.Context
	previewer Previewer
	installer Installer
	pager     Pager

	results    []preset.SearchResult
	downloaded []bool
	cursor     int
	offset     int
	page       int
	totalPages int

	// loading gates every action: while true new actions are dropped, not queued.
	loading   bool
	action    string
	previewed int
	playSeq   int

	spinner  spinner.Model
	status   string
	statusID int
	width    int
	height   int
}

// NewModel creates a browser over results. pager may be nil.
func NewModel(ctx context.Context, results preset.SearchResults, previewer Previewer, installer Installer, pager Pager) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	m := Model{
		ctx:        ctx,
		previewer:  previewer,
		installer:  installer,
		pager:      pager,
		results:    append([]preset.SearchResult(nil), results.Results...),
		page:       results.Page,
		totalPages: results.TotalPages,
		previewed:  -1,
		spinner:    s,
	}
	m.refreshAll()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case previewDoneMsg:
		m.loading = false
		m.action = ""
		if msg.err != nil {
			m.previewed = -1
			slog.Error("Preview failed", "id", m.results[msg.index].ID, "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Preview failed: %v", msg.err))
		}
		m.previewed = msg.index
		m.playSeq++
		status := m.setStatus(fmt.Sprintf("Playing %s", m.results[msg.index].Name))
		if msg.done == nil {
			return m, status
		}
		return m, tea.Batch(status, waitForPlayback(msg.done, m.playSeq))

	case playbackEndedMsg:
		if msg.seq == m.playSeq {
			m.previewed = -1
		}
		return m, nil

	case importDoneMsg:
		m.loading = false
		m.action = ""
		if msg.err != nil {
			slog.Error("Import failed", "id", m.results[msg.index].ID, "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Download failed: %v", msg.err))
		}
		m.refreshRow(msg.index)
		return m, m.setStatus(fmt.Sprintf("Imported to %s", msg.path))

	case moreResultsMsg:
		m.loading = false
		m.action = ""
		if msg.err != nil {
			slog.Error("Loading more results failed", "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Loading more failed: %v", msg.err))
		}
		start := len(m.results)
		m.results = append(m.results, msg.results.Results...)
		m.downloaded = append(m.downloaded, make([]bool, len(msg.results.Results))...)
		for i := start; i < len(m.results); i++ {
			m.refreshRow(i)
		}
		m.page = msg.results.Page
		m.totalPages = msg.results.TotalPages
		return m, m.setStatus(fmt.Sprintf("Loaded %d more presets", len(msg.results.Results)))

	case stoppedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Stop failed: %v", msg.err))
		}
		m.previewed = -1
		return m, nil

	case refreshMsg:
		m.refreshAll()
		return m, nil

	case statusClearMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, m.quit()

	case "up", "k":
		m.moveTo(m.cursor - 1)
	case "down", "j":
		m.moveTo(m.cursor + 1)
	case "pgup", "ctrl+u":
		m.moveTo(m.cursor - m.listHeight())
	case "pgdown", "ctrl+d":
		m.moveTo(m.cursor + m.listHeight())
	case "home", "g":
		m.moveTo(0)
	case "end", "G":
		m.moveTo(len(m.results) - 1)

	case " ", "space", "p":
		return m.startPreview()
	case "enter", "d":
		return m.startImport()
	case "n":
		return m.startLoadMore()
	case "s":
		return m, m.stopPlayback()
	}
	return m, nil
}

func (m Model) startPreview() (tea.Model, tea.Cmd) {
	if m.loading || len(m.results) == 0 {
		return m, nil
	}
	index := m.cursor
	result := m.results[index]
	if !result.HasPreview() {
		return m, nil
	}

	m.loading = true
	m.action = fmt.Sprintf("Loading preview of %s", result.Name)
	ctx, previewer := m.ctx, m.previewer
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		done, err := previewer.Preview(ctx, result)
		return previewDoneMsg{index: index, done: done, err: err}
	})
}

func waitForPlayback(done <-chan struct{}, seq int) tea.Cmd {
	return func() tea.Msg {
		<-done
		return playbackEndedMsg{seq: seq}
	}
}

func (m Model) startImport() (tea.Model, tea.Cmd) {
	if m.loading || len(m.results) == 0 {
		return m, nil
	}
	index := m.cursor
	result := m.results[index]

	m.loading = true
	m.action = fmt.Sprintf("Downloading %s", result.Name)
	ctx, installer := m.ctx, m.installer
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		path, err := installer.Install(ctx, result)
		return importDoneMsg{index: index, path: path, err: err}
	})
}

func (m Model) startLoadMore() (tea.Model, tea.Cmd) {
	if m.loading || m.pager == nil || !m.pager.HasMore() {
		return m, nil
	}

	m.loading = true
	m.action = "Loading more presets"
	ctx, pager := m.ctx, m.pager
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		results, err := pager.Next(ctx)
		return moreResultsMsg{results: results, err: err}
	})
}

func (m Model) stopPlayback() tea.Cmd {
	previewer := m.previewer
	return func() tea.Msg {
		return stoppedMsg{err: previewer.Stop()}
	}
}

// quit stops playback before the program tears down.
func (m Model) quit() tea.Cmd {
	previewer := m.previewer
	return func() tea.Msg {
		if err := previewer.Stop(); err != nil {
			slog.Warn("Failed to stop playback on quit", "error", err)
		}
		return tea.QuitMsg{}
	}
}

func (m *Model) moveTo(index int) {
	if len(m.results) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(m.results)-1 {
		index = len(m.results) - 1
	}
	m.cursor = index
	m.clampOffset()
}

func (m *Model) clampOffset() {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) listHeight() int {
	height := m.height
	if height == 0 {
		height = defaultHeight
	}
	if height -= chromeHeight; height < 1 {
		height = 1
	}
	return height
}

func (m *Model) refreshRow(index int) {
	m.downloaded[index] = m.installer.IsDownloaded(m.results[index])
}

func (m *Model) refreshAll() {
	m.downloaded = make([]bool, len(m.results))
	for i := range m.results {
		m.refreshRow(i)
	}
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.status = msg
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// Selected returns the result under the cursor. ok is false when there are no results.
func (m Model) Selected() (preset.SearchResult, bool) {
	if len(m.results) == 0 {
		return preset.SearchResult{}, false
	}
	return m.results[m.cursor], true
}

// Loading reports whether an action is in flight.
func (m Model) Loading() bool {
	return m.loading
}
