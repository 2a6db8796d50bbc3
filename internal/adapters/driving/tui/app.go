// Package tui provides the interactive chat interface for the advisor,
// built on Bubbletea following the Elm architecture.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// chatRole identifies who authored a chat message.
type chatRole int

const (
	roleUser chatRole = iota
	roleAdvisor
)

// chatMessage is one entry in the conversation history.
type chatMessage struct {
	role chatRole
	text string
}

// replyMsg carries the advisor's response back into the update loop.
type replyMsg struct {
	text string
	err  error
}

// App is the chat application model. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	// sessionID identifies this chat session in verbose logs.
	sessionID string

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	history []chatMessage
	waiting bool
	err     error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Describe an incident or ask a question..."
	input.Focus()
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    DefaultStyles(),
		sessionID: uuid.NewString(),
		input:     input,
		spinner:   sp,
	}, nil
}

// WithContext sets the context used for advisor calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			return a, a.send()
		}
		if msg.String() == "q" && a.input.Value() == "" {
			return a, tea.Quit
		}

	case replyMsg:
		a.waiting = false
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.err = nil
			a.history = append(a.history, chatMessage{role: roleAdvisor, text: msg.text})
		}
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// send submits the current input to the advisor.
func (a *App) send() tea.Cmd {
	message := strings.TrimSpace(a.input.Value())
	if message == "" || a.waiting {
		return nil
	}

	logger.Debug("Chat session %s: %q", a.sessionID, message)

	a.input.Reset()
	a.history = append(a.history, chatMessage{role: roleUser, text: message})
	a.waiting = true
	a.err = nil
	a.refreshViewport()

	respond := func() tea.Msg {
		reply, err := a.ports.Responder.Respond(a.ctx, message)
		return replyMsg{text: reply, err: err}
	}

	return tea.Batch(respond, a.spinner.Tick)
}

// layout recomputes component sizes after a resize.
func (a *App) layout() {
	inputHeight := 3
	headerHeight := 2
	statusHeight := 1
	vpHeight := a.height - inputHeight - headerHeight - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !a.ready {
		a.viewport = viewport.New(a.width, vpHeight)
		a.ready = true
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = vpHeight
	}

	a.input.Width = a.width - 6
	a.refreshViewport()
}

// refreshViewport re-renders the history and scrolls to the bottom.
func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.renderHistory())
	a.viewport.GotoBottom()
}

// renderHistory renders the conversation for the viewport.
func (a *App) renderHistory() string {
	if len(a.history) == 0 {
		return a.styles.Muted.Render(
			"Describe an incident to find similar past cases, or ask for\n" +
				"recommendations, training suggestions, or statistics.")
	}

	var b strings.Builder
	for _, msg := range a.history {
		switch msg.role {
		case roleUser:
			b.WriteString(a.styles.UserLabel.Render("You"))
		case roleAdvisor:
			b.WriteString(a.styles.AdvisorLabel.Render("Advisor"))
		}
		b.WriteString("\n")
		b.WriteString(wrapText(msg.text, a.viewport.Width))
		b.WriteString("\n\n")
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Incident Advisor"))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.styles.InputBorder.Width(a.width - 2).Render(a.input.View()))
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)))
	case a.waiting:
		b.WriteString(a.spinner.View() + a.styles.Muted.Render(" thinking..."))
	default:
		b.WriteString(a.styles.Muted.Render("Enter to send, Esc to quit"))
	}

	return b.String()
}

// wrapText soft-wraps text to the given width, preserving existing
// line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		for len(line) > width {
			cut := strings.LastIndex(line[:width], " ")
			if cut <= 0 {
				cut = width
			}
			out = append(out, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
