package tui

import (
	"context"
	"strings"

	"jotter/internal/database/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type sessionMsg struct {
	user *models.User
}

type availabilityMsg struct {
	available bool
}

type notesMsg struct {
	notes []models.Note
	err   error
}

type createdMsg struct {
	note *models.Note
	err  error
}

type updatedMsg struct {
	note *models.Note
	err  error
}

type deletedMsg struct {
	id  uuid.UUID
	err error
}

type optimizedMsg struct {
	text string
	err  error
}

type loginMsg struct {
	user *models.User
	err  error
}

type signedOutMsg struct{}

// authChangedMsg carries session-change notifications from the auth context
// subscription into the update loop.
type authChangedMsg struct {
	user *models.User
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadSessionCmd(), m.spin.Tick)
}

func (m appModel) loadSessionCmd() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		auth.Load(context.Background())
		user, _ := auth.User()
		return sessionMsg{user: user}
	}
}

func (m appModel) checkAvailabilityCmd() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return availabilityMsg{available: c.OptimizeAvailable(context.Background())}
	}
}

func (m appModel) fetchNotesCmd() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		notes, err := c.ListNotes(context.Background())
		return notesMsg{notes: notes, err: err}
	}
}

func (m appModel) loginCmd(email, password string) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		user, err := auth.SignIn(context.Background(), email, password)
		return loginMsg{user: user, err: err}
	}
}

func (m appModel) signOutCmd() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		auth.SignOut(context.Background())
		return signedOutMsg{}
	}
}

func (m appModel) createNoteCmd(title, text string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		note, err := c.CreateNote(context.Background(), title, text)
		return createdMsg{note: note, err: err}
	}
}

func (m appModel) updateNoteCmd(id uuid.UUID, title, text string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		note, err := c.UpdateNote(context.Background(), id, title, text)
		return updatedMsg{note: note, err: err}
	}
}

func (m appModel) deleteNoteCmd(id uuid.UUID) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteNote(context.Background(), id)
		return deletedMsg{id: id, err: err}
	}
}

func (m appModel) optimizeCmd(text string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		optimized, err := c.Optimize(context.Background(), text)
		return optimizedMsg{text: optimized, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textArea.SetWidth(min(msg.Width-4, 78))
		return m, nil

	case sessionMsg:
		if msg.user == nil {
			m.screen = screenLogin
			return m, nil
		}
		m.screen = screenNotes
		m.fetching = true
		return m, tea.Batch(m.fetchNotesCmd(), m.checkAvailabilityCmd())

	case availabilityMsg:
		m.aiAvailable = msg.available
		return m, nil

	case notesMsg:
		m.fetching = false
		m.loaded = true
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notes = msg.notes
		if m.cursor >= len(m.notes) {
			m.cursor = 0
		}
		return m, nil

	case loginMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.screen = screenNotes
		m.fetching = true
		m.errMsg = ""
		m.passwordInput.SetValue("")
		return m, tea.Batch(m.fetchNotesCmd(), m.checkAvailabilityCmd())

	case signedOutMsg:
		m.resetToLogin()
		return m, nil

	case authChangedMsg:
		// A session lost while the notes screen is open fails closed to
		// login; anything else is already handled by the explicit flows.
		if msg.user == nil && m.screen == screenNotes {
			m.resetToLogin()
			m.errMsg = "session expired, sign in again"
		}
		return m, nil

	case createdMsg:
		m.busy = false
		if msg.err != nil {
			// Draft stays intact so nothing typed is lost.
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notes = append([]models.Note{*msg.note}, m.notes...)
		m.cursor = 0
		m.cancelDraft()
		m.status = "note created"
		return m, nil

	case updatedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.replaceNote(*msg.note)
		m.cancelDraft()
		m.status = "note saved"
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.removeNote(msg.id)
		m.status = "note deleted"
		return m, nil

	case optimizedMsg:
		m.busy = false
		m.optimizing = false
		if msg.err != nil {
			// The draft is left untouched on failure.
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.applyOptimized(msg.text)
		m.status = "optimized (ctrl+u to undo)"
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenNotes:
			return m.updateNotes(msg)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.loginFocus = 0
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.errMsg = "email and password are required"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeComposing || m.mode == modeEditing {
		return m.updateDraft(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if n := m.cursorNote(); n != nil {
			m.selectNote(n.ID)
		}
		return m, nil
	case "esc":
		m.selected = nil
		m.status = ""
		m.errMsg = ""
		return m, nil
	case "n":
		m.startCompose()
		return m, nil
	case "e":
		target := m.cursorNote()
		if m.selected != nil {
			if n := m.noteByID(*m.selected); n != nil {
				target = n
			}
		}
		if target != nil {
			m.startEdit(*target)
		}
		return m, nil
	case "d":
		if m.busy {
			return m, nil
		}
		if n := m.cursorNote(); n != nil {
			m.busy = true
			m.errMsg = ""
			return m, m.deleteNoteCmd(n.ID)
		}
		return m, nil
	case "r":
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		m.errMsg = ""
		return m, m.fetchNotesCmd()
	case "s":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.signOutCmd()
	}
	return m, nil
}

func (m appModel) updateDraft(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.cancelDraft()
		return m, nil
	case "tab":
		m.toggleDraftFocus()
		return m, nil
	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		text := m.textArea.Value()
		if strings.TrimSpace(text) == "" {
			m.errMsg = "note text must not be empty"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		// Saving consumes the draft; the undo snapshot dies with it.
		m.undoText = nil
		if m.mode == modeEditing {
			return m, m.updateNoteCmd(m.editingID, m.titleInput.Value(), text)
		}
		return m, m.createNoteCmd(m.titleInput.Value(), text)
	case "ctrl+o":
		if !m.aiAvailable || m.busy {
			return m, nil
		}
		text := m.textArea.Value()
		if strings.TrimSpace(text) == "" {
			m.errMsg = "note text must not be empty"
			return m, nil
		}
		m.busy = true
		m.optimizing = true
		m.errMsg = ""
		return m, m.optimizeCmd(text)
	case "ctrl+u":
		if m.undoOptimize() {
			m.status = "optimization undone"
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.textArea, cmd = m.textArea.Update(msg)
	}
	return m, cmd
}
