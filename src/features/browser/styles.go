package browser

import "github.com/charmbracelet/lipgloss"

const (
	listWidth       = 50
	defaultHeight   = 24
	chromeHeight    = 5
	downloadedMark  = "[✓] "
	missingMark     = "[ ] "
	detailSeparator = "\n-----\n"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	listStyle = lipgloss.NewStyle().
			Width(listWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("240"))

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)
