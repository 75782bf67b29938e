package app

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/ragdeck/ragdeck/internal/api"
	"github.com/ragdeck/ragdeck/internal/msg"
	"github.com/ragdeck/ragdeck/internal/styles"
)

const chatTimeout = 60 * time.Second

// chatReplyMsg carries the backend's stored reply for a sent message.
type chatReplyMsg struct {
	message api.ChatMessage
	err     error
}

// chatHistoryMsg carries a reloaded message history.
type chatHistoryMsg struct {
	messages []api.ChatMessage
	err      error
}

// chatPage is a single-thread chat view with markdown-rendered answers.
type chatPage struct {
	client *api.Client

	chatID   string
	input    textinput.Model
	view     viewport.Model
	ready    bool
	sending  bool
	messages []api.ChatMessage
	err      error
}

func newChatPage(client *api.Client) *chatPage {
	input := textinput.New()
	input.Placeholder = "ask a question"
	input.CharLimit = 2048
	input.Focus()

	return &chatPage{
		client: client,
		chatID: "default",
		input:  input,
	}
}

func (p *chatPage) ID() string    { return "chat" }
func (p *chatPage) Title() string { return "Chat" }

func (p *chatPage) consumesTextInput() bool {
	return p.input.Focused()
}

func (p *chatPage) Update(m tea.Msg) tea.Cmd {
	switch m := m.(type) {
	case tea.WindowSizeMsg:
		p.resize(m.Width, m.Height)
		return nil
	case chatReplyMsg:
		p.sending = false
		p.err = m.err
		if m.err == nil {
			p.messages = append(p.messages, m.message)
			p.refreshContent()
			p.view.GotoBottom()
			// The assistant reply lands in the history asynchronously.
			return p.loadHistory()
		}
		return nil
	case chatHistoryMsg:
		if m.err == nil && len(m.messages) >= len(p.messages) {
			p.messages = m.messages
			p.refreshContent()
			p.view.GotoBottom()
		}
		return nil
	case tea.KeyMsg:
		if p.input.Focused() {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(m)
			return cmd
		}
		var cmd tea.Cmd
		p.view, cmd = p.view.Update(m)
		return cmd
	}
	return nil
}

func (p *chatPage) HandleCommand(cmd string) tea.Cmd {
	switch cmd {
	case "send-message":
		return p.send()
	case "back":
		p.input.Blur()
		return nil
	case "focus-input":
		p.input.Focus()
		return textinput.Blink
	case "yank-answer":
		return p.yankAnswer()
	case "scroll-top":
		p.view.GotoTop()
		return nil
	case "scroll-bottom":
		p.view.GotoBottom()
		return nil
	case "cursor-down":
		p.view.ScrollDown(1)
		return nil
	case "cursor-up":
		p.view.ScrollUp(1)
		return nil
	case "refresh":
		return p.loadHistory()
	}
	return nil
}

func (p *chatPage) send() tea.Cmd {
	content := strings.TrimSpace(p.input.Value())
	if content == "" || p.sending {
		return nil
	}
	p.input.SetValue("")
	p.sending = true

	client := p.client
	chatID := p.chatID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		reply, err := client.SendChat(ctx, chatID, content)
		return chatReplyMsg{message: reply, err: err}
	}
}

func (p *chatPage) loadHistory() tea.Cmd {
	client := p.client
	chatID := p.chatID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		messages, err := client.ChatMessages(ctx, chatID)
		return chatHistoryMsg{messages: messages, err: err}
	}
}

// yankAnswer copies the latest assistant message to the clipboard.
func (p *chatPage) yankAnswer() tea.Cmd {
	for i := len(p.messages) - 1; i >= 0; i-- {
		if p.messages[i].Role != "assistant" {
			continue
		}
		if err := clipboard.WriteAll(p.messages[i].Content); err != nil {
			return msg.ShowErrorToast("clipboard unavailable", 3*time.Second)
		}
		return msg.ShowToast("answer copied", 3*time.Second)
	}
	return msg.ShowErrorToast("no answer to copy", 3*time.Second)
}

func (p *chatPage) resize(width, height int) {
	// Header, optional status line and the input each take a row; the
	// actual body height arrives through View and trims further.
	vh := height - 4
	if vh < 3 {
		vh = 3
	}
	if !p.ready {
		p.view = viewport.New(width, vh)
		p.ready = true
	} else {
		p.view.Width = width
		p.view.Height = vh
	}
	p.refreshContent()
}

// fitViewport clamps the viewport to the body height View was given.
func (p *chatPage) fitViewport(height int) {
	vh := height - 4
	if vh < 3 {
		vh = 3
	}
	if p.view.Height != vh {
		p.view.Height = vh
	}
}

// refreshContent re-renders the transcript into the viewport. Assistant
// messages go through glamour with the palette's markdown theme; user
// messages stay plain.
func (p *chatPage) refreshContent() {
	if !p.ready {
		return
	}

	var b strings.Builder
	for _, m := range p.messages {
		switch m.Role {
		case "assistant":
			b.WriteString(styles.Subtitle.Render("assistant"))
			b.WriteString("\n")
			b.WriteString(renderMarkdown(m.Content, p.view.Width))
		default:
			b.WriteString(styles.Title.Render("you"))
			b.WriteString("\n")
			b.WriteString(styles.Body.Render(m.Content))
		}
		b.WriteString("\n\n")
	}
	p.view.SetContent(b.String())
}

// renderMarkdown renders md for the current theme, falling back to the
// raw text when glamour fails.
func renderMarkdown(md string, width int) string {
	if width < 10 {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.GetMarkdownTheme()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (p *chatPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(styles.PanelHeader.Render("Chat"))
	b.WriteString("\n")

	switch {
	case p.err != nil:
		b.WriteString(styles.StatusBad.Render("chat failed: " + p.err.Error()))
		b.WriteString("\n")
	case p.sending:
		b.WriteString(styles.Muted.Render("waiting for answer..."))
		b.WriteString("\n")
	}

	if p.ready {
		p.fitViewport(height)
		b.WriteString(p.view.View())
		b.WriteString("\n")
	}
	b.WriteString(p.input.View())
	return b.String()
}
