// Package review provides a terminal UI for paging through processed
// invoices next to their extracted data.
package review

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
)

// Entry pairs one catalog record with the local copy of its PDF.
type Entry struct {
	Key       string
	Record    catalog.Record
	LocalPath string
}

// Entries builds the review list from a loaded catalog and the staging
// directory the batch downloaded into.
func Entries(cat *catalog.Catalog, stagingDir string) []Entry {
	keys := cat.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		rec, _ := cat.Get(key)
		entries = append(entries, Entry{
			Key:       key,
			Record:    rec,
			LocalPath: filepath.Join(stagingDir, filepath.FromSlash(key)),
		})
	}
	return entries
}

// tabs in display order, matching the record's field order.
var tabNames = [3]string{"Full", "Structured", "Summary"}

// Theme holds the color scheme for the review display.
type Theme struct {
	Selected lipgloss.Color
	Border   lipgloss.Color
	TabOn    lipgloss.Color
	Hint     lipgloss.Color
}

var defaultTheme = Theme{
	Selected: lipgloss.Color("#5FAFD7"),
	Border:   lipgloss.Color("#3A3A3A"),
	TabOn:    lipgloss.Color("#00D787"),
	Hint:     lipgloss.Color("#6C6C6C"),
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Selected).Bold(true)
}

func (t Theme) tabOnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.TabOn).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

const listWidth = 34

// Model is the bubbletea model for the review application.
type Model struct {
	entries  []Entry
	cursor   int
	tab      int
	viewport viewport.Model
	theme    Theme
	width    int
	height   int
	ready    bool
}

// NewModel creates the review model over the given entries.
func NewModel(entries []Entry) Model {
	return Model{
		entries:  entries,
		viewport: viewport.New(),
		theme:    defaultTheme,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window size changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(max(20, m.width-listWidth-4))
		m.viewport.SetHeight(max(5, m.height-6))
		m.ready = true
		m.refreshContent()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshContent()
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.refreshContent()
			}
		case "left", "h":
			m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
			m.refreshContent()
		case "right", "l", "tab":
			m.tab = (m.tab + 1) % len(tabNames)
			m.refreshContent()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// refreshContent loads the selected entry's current tab into the viewport.
func (m *Model) refreshContent() {
	if len(m.entries) == 0 {
		m.viewport.SetContent("Catalog is empty.")
		return
	}
	entry := m.entries[m.cursor]

	var text string
	switch m.tab {
	case 0:
		text = entry.Record.Full
	case 1:
		text = entry.Record.Structured
	case 2:
		text = entry.Record.Summary
	}
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

// View renders the two-pane layout: invoice list left, extracted data right.
func (m Model) View() tea.View {
	if !m.ready {
		return tea.NewView("Loading...\n")
	}
	return tea.NewView(m.render())
}

func (m Model) render() string {
	left := m.renderList()
	right := m.renderDetail()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	hint := m.theme.hintStyle().Render("↑/↓ invoice · ←/→ field · q quit")
	return body + "\n" + hint + "\n"
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Invoices (%d)\n\n", len(m.entries)))

	visible := max(1, m.height-8)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(m.entries), start+visible)

	for i := start; i < end; i++ {
		line := truncate(m.entries[i].Key, listWidth-4)
		if i == m.cursor {
			b.WriteString(m.theme.selectedStyle().Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(listWidth).Render(b.String())
}

func (m Model) renderDetail() string {
	if len(m.entries) == 0 {
		return "No processed invoices found."
	}
	entry := m.entries[m.cursor]

	var tabs []string
	for i, name := range tabNames {
		if i == m.tab {
			tabs = append(tabs, m.theme.tabOnStyle().Render("["+name+"]"))
		} else {
			tabs = append(tabs, " "+name+" ")
		}
	}

	header := strings.Join(tabs, " ")
	pdfLine := m.theme.hintStyle().Render("PDF: " + entry.LocalPath)
	return header + "\n" + pdfLine + "\n\n" + m.viewport.View()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return s[:n-1] + "…"
}
