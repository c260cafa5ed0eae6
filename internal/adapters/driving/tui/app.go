package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/tui/components/status"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/tui/keymap"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/tui/messages"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/tui/styles"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// Rows taken by the header, the framed input and the status bar.
const chromeHeight = 5

// entry is one line of the transcript.
type entry struct {
	speaker messages.Speaker
	text    string
	sources []string
}

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	status   *status.Bar

	// target scopes every question. An unset target chats without documents.
	target    domain.RetrievalTarget
	sessionID string

	transcript []entry
	busy       bool
	err        error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat TUI bound to the given document scope.
func NewApp(ports *Ports, target domain.RetrievalTarget) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	bar := status.NewBar(s, km)
	bar.SetScope(describeTarget(target))

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
		input:    ti,
		spinner:  sp,
		status:   bar,
		target:   target,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("study - chat"),
		a.loadDocuments,
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.DocumentsLoaded:
		a.handleDocuments(msg)
		return a, nil

	case messages.ChatCompleted:
		a.handleReply(msg)
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.Send):
		text := strings.TrimSpace(a.input.Value())
		if text == "" || a.busy {
			return a, nil
		}
		a.input.Reset()
		a.append(entry{speaker: messages.SpeakerUser, text: text})
		a.busy = true
		a.err = nil
		a.status.SetState(status.StateThinking)
		return a, tea.Batch(a.send(text), a.spinner.Tick)

	case keymap.Matches(key, a.keymap.NewSession):
		if a.busy {
			return a, nil
		}
		a.sessionID = ""
		a.transcript = nil
		a.err = nil
		a.status.Clear()
		a.refresh()
		return a, nil

	case keymap.Matches(key, a.keymap.ScrollUp), keymap.Matches(key, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleDocuments(msg messages.DocumentsLoaded) {
	switch {
	case msg.Err != nil:
		a.append(entry{speaker: messages.SpeakerSystem, text: "Could not list documents: " + msg.Err.Error()})
	case len(msg.Documents) == 0 && a.target.IsSet():
		a.append(entry{
			speaker: messages.SpeakerSystem,
			text:    "No documents uploaded yet. Answers will not draw on any material.",
		})
	case a.target.DocumentName != "" && !hasDocument(msg.Documents, a.target.DocumentName):
		a.append(entry{
			speaker: messages.SpeakerSystem,
			text:    fmt.Sprintf("Document %q is not uploaded. Answers will not draw on it.", a.target.DocumentName),
		})
	}
}

func (a *App) handleReply(msg messages.ChatCompleted) {
	a.busy = false
	if msg.Err != nil {
		a.err = msg.Err
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		a.append(entry{speaker: messages.SpeakerSystem, text: msg.Err.Error()})
		return
	}

	a.sessionID = msg.Reply.SessionID
	a.status.SetState(status.StateReady)
	a.status.SetMessageCount(msg.Reply.MessageCount)
	a.append(entry{
		speaker: messages.SpeakerAssistant,
		text:    msg.Reply.Response,
		sources: msg.Reply.Sources,
	})
}

// send asks the study service for a reply off the UI goroutine.
func (a *App) send(text string) tea.Cmd {
	req := domain.ChatRequest{
		Message:   text,
		Target:    a.target,
		SessionID: a.sessionID,
	}
	return func() tea.Msg {
		reply, err := a.ports.Study.Chat(a.ctx, req)
		return messages.ChatCompleted{Reply: reply, Err: err}
	}
}

func (a *App) loadDocuments() tea.Msg {
	docs, err := a.ports.Document.List(a.ctx)
	return messages.DocumentsLoaded{Documents: docs, Err: err}
}

func (a *App) append(e entry) {
	a.transcript = append(a.transcript, e)
	a.refresh()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (a *App) refresh() {
	width := a.viewport.Width
	var b strings.Builder
	for i, e := range a.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(a.renderEntry(e, width))
	}
	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

func (a *App) renderEntry(e entry, width int) string {
	body := a.styles.Message.Width(width).Render(e.text)

	var label string
	switch e.speaker {
	case messages.SpeakerUser:
		label = a.styles.UserLabel.Render(e.speaker.String())
	case messages.SpeakerAssistant:
		label = a.styles.AssistantLabel.Render(e.speaker.String())
	case messages.SpeakerSystem:
		label = a.styles.Muted.Render(e.speaker.String())
		body = a.styles.Error.PaddingLeft(2).Width(width).Render(e.text)
	}

	parts := []string{label, body}
	if len(e.sources) > 0 {
		parts = append(parts, a.styles.Sources.Render("Sources: "+strings.Join(e.sources, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.styles.Header.Render("Study chat") + "  " +
		a.styles.Scope.Render(describeTarget(a.target))

	prompt := a.input.View()
	if a.busy {
		prompt = a.spinner.View() + " waiting for a reply..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.viewport.View(),
		a.styles.InputField.Width(a.width-2).Render(prompt),
		a.status.View(),
	)
}

// Run starts the TUI program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions resizes every component to the terminal.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	vpHeight := height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	a.viewport.Width = width
	a.viewport.Height = vpHeight

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.input.Width = inputWidth
	a.status.SetWidth(width)
	a.refresh()
}

// SessionID returns the current conversation, empty before the first reply.
func (a *App) SessionID() string {
	return a.sessionID
}

// Busy reports whether a reply is outstanding.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the last chat error.
func (a *App) Err() error {
	return a.err
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// describeTarget renders the document scope for the header and status bar.
func describeTarget(t domain.RetrievalTarget) string {
	switch {
	case t.AllDocuments:
		return "all documents"
	case t.DocumentName != "":
		return t.DocumentName
	default:
		return "general chat"
	}
}

func hasDocument(docs []domain.DocumentSummary, name string) bool {
	for _, d := range docs {
		if d.Name == name {
			return true
		}
	}
	return false
}
