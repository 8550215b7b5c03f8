// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/config"
	"github.com/omniemployee/omnichat/internal/conversation"
	"github.com/omniemployee/omnichat/internal/session"
	"github.com/omniemployee/omnichat/internal/ui/components"
	"github.com/omniemployee/omnichat/internal/ui/styles"
)

// drainInterval is the cadence at which queued stream events are
// applied to the conversation state while a stream is live.
const drainInterval = 33 * time.Millisecond

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It owns the
// conversation state and is the only goroutine that mutates it; the
// stream goroutine only pushes decoded events onto the queue.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation state and the network-to-UI event queue
	state *conversation.State
	queue *conversation.Queue

	// Active turn token; only meaningful while the state is loading
	activeTurn conversation.Turn

	// Backend
	client  *api.Client
	session *session.Manager

	// Configuration (sidebar visibility toggles live here)
	cfg *config.Config

	// Connection state
	connStatus components.ConnectionStatus
	agentInfo  *api.AgentInfo

	// Sidebar
	activePanel components.Panel

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown renderer for assistant messages; nil falls back to
	// plain text rendering
	renderer *glamour.TermRenderer

	// Key bindings
	keyMap KeyMap

	quitting bool
}

// New creates a new chat model wired to the given backend client.
func New(theme *styles.Theme, client *api.Client, sess *session.Manager, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message or /help for commands..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		theme:       theme,
		state:       conversation.NewState(),
		queue:       conversation.NewQueue(),
		client:      client,
		session:     sess,
		cfg:         cfg,
		connStatus:  components.Connecting,
		activePanel: components.PanelMemory,
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		renderer:    renderer,
		keyMap:      DefaultKeyMap(),
	}
}

// State exposes the conversation state for tests.
func (m *Model) State() *conversation.State {
	return m.state
}

// resize recomputes component dimensions from the window size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	chatWidth := width
	if m.sidebarVisible() {
		chatWidth = width - sidebarWidth
	}

	// Header, input, and status bar each take a fixed slice.
	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = chatWidth
	m.viewport.Height = vpHeight
	m.input.Width = chatWidth - 4

	if m.renderer != nil {
		wrap := chatWidth - 8
		if wrap < 20 {
			wrap = 20
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
		}
	}
}

// sidebarVisible reports whether the sidebar fits and at least one
// panel is enabled in the config.
func (m *Model) sidebarVisible() bool {
	if m.theme.GetLayoutMode() != styles.LayoutWide {
		return false
	}
	return m.cfg.UI.ShowMemory || m.cfg.UI.ShowKnowledge || m.cfg.UI.ShowTools
}

// visiblePanel returns the active panel, skipping panels the config has
// disabled.
func (m *Model) visiblePanel() components.Panel {
	p := m.activePanel
	for i := 0; i < 3; i++ {
		if m.panelEnabled(p) {
			return p
		}
		p = p.Next()
	}
	return m.activePanel
}

func (m *Model) panelEnabled(p components.Panel) bool {
	switch p {
	case components.PanelMemory:
		return m.cfg.UI.ShowMemory
	case components.PanelKnowledge:
		return m.cfg.UI.ShowKnowledge
	default:
		return m.cfg.UI.ShowTools
	}
}
