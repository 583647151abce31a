package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("presets · page %d/%d · %d results", m.page, m.totalPages, len(m.results))
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n\n")

	if len(m.results) == 0 {
		sb.WriteString("No presets found.\n\n")
		sb.WriteString(helpStyle.Render("q: quit"))
		return sb.String()
	}

	list := listStyle.Height(m.listHeight()).Render(strings.Join(m.rows(), "\n"))
	details := detailStyle.Width(m.detailWidth()).Render(m.Details())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, details))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " " + loadingStyle.Render(m.action+"..."))
	case m.status != "":
		sb.WriteString(statusBarStyle.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(m.helpLine()))
	return sb.String()
}

// rows renders the visible part of the list in result order.
func (m Model) rows() []string {
	end := m.offset + m.listHeight()
	if end > len(m.results) {
		end = len(m.results)
	}

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		mark := missingMark
		if m.downloaded[i] {
			mark = downloadedMark
		}
		row := truncate(mark+m.results[i].Name, listWidth-2)
		switch {
		case i == m.cursor:
			row = selectedStyle.Render(row)
		case i == m.previewed:
			row = playingStyle.Render(row)
		}
		if i == m.previewed {
			row += playingStyle.Render(" ♪")
		}
		rows = append(rows, row)
	}
	return rows
}

// Details is the details pane text for the selected result.
func (m Model) Details() string {
	result, ok := m.Selected()
	if !ok {
		return ""
	}
	return result.Author + detailSeparator + result.Description
}

func (m Model) detailWidth() int {
	width := m.width - listWidth - 4
	if width < 20 {
		width = 40
	}
	return width
}

func (m Model) helpLine() string {
	help := "↑/↓:navigate  space:preview  s:stop  enter:download+import"
	if m.pager != nil && m.pager.HasMore() {
		help += "  n:more"
	}
	return help + "  q:quit"
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
