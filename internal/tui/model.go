package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ragchat/internal/chunker"
	"ragchat/internal/domain"
	"ragchat/internal/textutil"
)

// ChatPort is the TUI-facing subset of the RAG service.
type ChatPort interface {
	Ask(ctx context.Context, query string) (domain.AskResult, error)
	Chat(ctx context.Context, sessionID, query string) (domain.ChatResult, error)
}

const requestTimeout = 60 * time.Second

type entry struct {
	sender  domain.Sender
	text    string
	query   string
	sources []domain.Source
}

// answerMsg carries the outcome of an Ask or Chat call back into Update.
type answerMsg struct {
	gen       int
	query     string
	answer    string
	sources   []domain.Source
	sessionID string
	err       error
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	service    ChatPort
	input      textinput.Model
	viewport   viewport.Model
	transcript []entry
	sessionID  string
	gen        int // bumped by Ctrl+N; replies from older generations are dropped
	status     string
	busy       bool
	ready      bool
}

// New creates a new TUI model instance.
func New(service ChatPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask anything and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, status: "New session. Ctrl+N starts over, Ctrl+C quits."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header lines, status, input box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case answerMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.sessionID = msg.sessionID
		m.transcript = append(m.transcript, entry{sender: domain.SenderBot, text: msg.answer, query: msg.query, sources: msg.sources})
		m.status = fmt.Sprintf("Answered %q", msg.query)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+n":
			m.gen++
			m.busy = false
			m.sessionID = ""
			m.transcript = nil
			m.status = "New session."
			m.refresh()
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.input.SetValue("")
			m.transcript = append(m.transcript, entry{sender: domain.SenderUser, text: q})
			m.status = "Thinking..."
			m.refresh()
			return m, m.send(q)
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send asks on the first question of a session and chats afterwards.
func (m Model) send(q string) tea.Cmd {
	svc, id, gen := m.service, m.sessionID, m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if id == "" {
			res, err := svc.Ask(ctx, q)
			return answerMsg{gen: gen, query: q, answer: res.Answer, sources: res.Sources, sessionID: res.SessionID, err: err}
		}
		res, err := svc.Chat(ctx, id, q)
		return answerMsg{gen: gen, query: q, answer: res.Answer, sessionID: res.SessionID, err: err}
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("ragchat")
	session := "no session"
	if m.sessionID != "" {
		session = "session " + m.sessionID
	}
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(session)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := transcriptBoxStyle.Render(m.viewport.View())
	return header + "\n" + sub + "\n" + body + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "Nothing asked yet."
	}
	var b strings.Builder
	for i, e := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if e.sender == domain.SenderUser {
			b.WriteString(userStyle.Render("You: "))
			b.WriteString(e.text)
			continue
		}
		b.WriteString(botStyle.Render("Bot: "))
		b.WriteString(highlightBestSentence(e.text, e.query))
		for n, s := range e.sources {
			b.WriteString(fmt.Sprintf("\n  [%d] %s\n      %s", n+1, s.Title, sourceStyle.Render(s.URL)))
		}
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	sourceStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	splitter           = chunker.NewSentenceSplitter()
)

// highlightBestSentence emphasises the sentence sharing the most terms with
// the query, paragraph by paragraph.
func highlightBestSentence(text, query string) string {
	qTerms := textutil.TermSet(query)
	if len(qTerms) == 0 || strings.TrimSpace(text) == "" {
		return text
	}
	paragraphs := strings.Split(text, "\n\n")
	bestP, bestS, bestScore := -1, -1, 0
	split := make([][]string, len(paragraphs))
	for p, para := range paragraphs {
		split[p] = splitter.Split(para)
		for s, sent := range split[p] {
			if score := overlap(qTerms, sent); score > bestScore {
				bestP, bestS, bestScore = p, s, score
			}
		}
	}
	if bestP < 0 {
		return text
	}
	split[bestP][bestS] = highlightStyle.Render(split[bestP][bestS])
	out := make([]string, len(split))
	for p := range split {
		out[p] = strings.Join(split[p], " ")
	}
	return strings.Join(out, "\n\n")
}

func overlap(qTerms map[string]struct{}, sentence string) int {
	score := 0
	for t := range textutil.TermSet(sentence) {
		if _, ok := qTerms[t]; ok {
			score++
		}
	}
	return score
}
