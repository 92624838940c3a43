package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/command"
)

// entry is one executed command line and its reply.
type entry struct {
	input string
	reply string
}

// Model is the Bubble Tea model for the interactive session: a growing
// transcript of command/reply pairs above a single-line prompt.
type Model struct {
	dispatcher *command.Dispatcher
	save       func() error
	input      textinput.Model
	history    []entry
	quitting   bool
	saveErr    error
}

// NewModel creates a Model dispatching through d. save is called once
// when the session ends; a nil save is allowed.
func NewModel(d *command.Dispatcher, save func() error) Model {
	ti := textinput.New()
	ti.Prompt = PromptStyle().Render("> ")
	ti.Placeholder = "hello"
	ti.Focus()

	return Model{dispatcher: d, save: save, input: ti}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input: Enter dispatches the current line, Ctrl+C
// and Ctrl+D end the session like the exit verb.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m.exit()
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			reply, quit := m.dispatcher.Dispatch(line)
			if quit {
				m.history = append(m.history, entry{input: line})
				return m.exit()
			}
			m.history = append(m.history, entry{input: line, reply: reply})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exit saves the book and quits. The save error is kept on the model so
// Run can surface it after the program releases the terminal.
func (m Model) exit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.save != nil {
		m.saveErr = m.save()
	}
	return m, tea.Quit
}

// View renders the banner, the transcript, and either the prompt or the
// farewell once the session is over.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(BannerStyle().Render(banner))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(EchoStyle().Render("> "))
		b.WriteString(e.input)
		b.WriteString("\n")
		if e.reply != "" {
			b.WriteString(RenderReply(e.reply))
			b.WriteString("\n")
		}
	}

	if m.quitting {
		b.WriteString(BannerStyle().Render(farewell))
		b.WriteString("\n")
		if m.saveErr != nil {
			b.WriteString(RenderReply("Error: " + m.saveErr.Error()))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HintStyle().Render("commands: hello · add · change · phone · all · add-birthday · show-birthday · birthdays · remove · exit"))
	b.WriteString("\n")
	return b.String()
}
