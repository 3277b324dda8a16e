package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/rank"
	"nfrtrace/internal/service"
)

// Model is the Bubble Tea model for browsing ranked trace candidates.
type Model struct {
	corpus   *domain.Corpus
	results  []*service.Result
	input    textinput.Model
	viewport viewport.Model
	variant  int
	nfr      int
	topN     int
	status   string
	ready    bool
}

// New creates a browser over results. topN is clamped to 1..FR count.
func New(corpus *domain.Corpus, results []*service.Result, topN int) Model {
	ti := textinput.New()
	ti.Prompt = "top N> "
	ti.Placeholder = fmt.Sprintf("1-%d, Enter to apply", corpus.FRCount())
	ti.Focus()
	ti.CharLimit = 6
	vp := viewport.New(0, 0)
	if topN < 1 {
		topN = 1
	}
	if topN > corpus.FRCount() && corpus.FRCount() > 0 {
		topN = corpus.FRCount()
	}
	return Model{
		corpus:   corpus,
		results:  results,
		input:    ti,
		viewport: vp,
		topN:     topN,
		status:   "tab: next NFR  left/right: variant  ctrl+c: quit",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, tabs, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderRanking())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			m.applyTopN(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			m.viewport.SetContent(m.renderRanking())
			return m, nil
		case "tab":
			m.nfr = (m.nfr + 1) % m.corpus.NFRCount()
			m.viewport.SetContent(m.renderRanking())
			return m, nil
		case "shift+tab":
			m.nfr = (m.nfr - 1 + m.corpus.NFRCount()) % m.corpus.NFRCount()
			m.viewport.SetContent(m.renderRanking())
			return m, nil
		case "right":
			if len(m.results) > 0 {
				m.variant = (m.variant + 1) % len(m.results)
				m.viewport.SetContent(m.renderRanking())
			}
			return m, nil
		case "left":
			if len(m.results) > 0 {
				m.variant = (m.variant - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderRanking())
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyTopN range-checks the typed value against the current ranking.
func (m *Model) applyTopN(raw string) {
	if raw == "" {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		m.status = fmt.Sprintf("Error: %q is not a number", raw)
		return
	}
	if _, err := rank.TopN(m.currentRanking(), n); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.topN = n
	m.status = fmt.Sprintf("Showing top %d", n)
}

// View renders the layout and the current ranking.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("NFR Trace Browser")
	tabs := m.renderTabs()
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + tabs + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) currentResult() *service.Result {
	if len(m.results) == 0 {
		return nil
	}
	return m.results[m.variant]
}

func (m Model) currentNFR() string {
	return m.corpus.At(m.nfr).ID
}

func (m Model) currentRanking() domain.CandidateList {
	res := m.currentResult()
	if res == nil {
		return nil
	}
	return res.Ranked.List(m.currentNFR())
}

func (m Model) renderTabs() string {
	var parts []string
	for i, res := range m.results {
		label := fmt.Sprintf("%s (>%.2f)", res.Variant, res.Threshold)
		if i == m.variant {
			label = activeTabStyle.Render(label)
		} else {
			label = tabStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (m Model) renderRanking() string {
	res := m.currentResult()
	if res == nil {
		return "No results."
	}
	nfr, _ := m.corpus.Get(m.currentNFR())
	list := m.currentRanking()
	top, err := rank.TopN(list, m.topN)
	if err != nil {
		top = list
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", nfr.ID, nfr.Text)
	fmt.Fprintf(&b, "%s, top %d of %d\n\n", res.Variant.Description(), len(top), len(list))
	for i, c := range top {
		fr, _ := m.corpus.Get(c.FRID)
		line := fmt.Sprintf("%2d. %-6s %.3f  %s", i+1, c.FRID, c.Score, fr.Text)
		if c.Score > res.Threshold {
			line = highlightStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Underline(true)
)
