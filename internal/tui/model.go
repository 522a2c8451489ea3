package tui

import (
	"jotter/internal/client"
	"jotter/internal/database/models"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/google/uuid"
)

type screen int

const (
	screenLoading screen = iota
	screenLogin
	screenNotes
)

// mode is the draft state. Exactly one of composing/editing can be active;
// entering either discards the other's draft.
type mode int

const (
	modeIdle mode = iota
	modeComposing
	modeEditing
)

type draftFocus int

const (
	focusTitle draftFocus = iota
	focusText
)

type appModel struct {
	client *client.Client
	auth   *client.AuthContext

	screen screen
	width  int
	height int

	// login form
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int

	// notes list
	notes    []models.Note
	cursor   int
	selected *uuid.UUID
	fetching bool
	loaded   bool

	// draft
	mode       mode
	editingID  uuid.UUID
	titleInput textinput.Model
	textArea   textarea.Model
	focus      draftFocus
	// undoText holds the pre-optimize draft for one-shot undo. At most one
	// snapshot exists; a new optimize overwrites an unconsumed one.
	undoText *string

	aiAvailable bool
	// busy guards against overlapping mutating calls: a second trigger is
	// ignored while one is in flight.
	busy       bool
	optimizing bool

	spin   spinner.Model
	errMsg string
	status string
}

func newAppModel(c *client.Client) appModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	title := textinput.New()
	title.Placeholder = "title (optional)"
	text := textarea.New()
	text.Placeholder = "write your note..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return appModel{
		client:        c,
		auth:          client.NewAuthContext(c),
		screen:        screenLoading,
		emailInput:    email,
		passwordInput: password,
		titleInput:    title,
		textArea:      text,
		spin:          sp,
	}
}

// startCompose opens a fresh draft. Composing and an open detail panel are
// mutually exclusive, so the selection is cleared.
func (m *appModel) startCompose() {
	m.mode = modeComposing
	m.editingID = uuid.Nil
	m.selected = nil
	m.titleInput.SetValue("")
	m.textArea.SetValue("")
	m.undoText = nil
	m.errMsg = ""
	m.status = ""
	m.focusText()
}

// startEdit loads an existing note into the draft, discarding any other
// active draft and its undo snapshot.
func (m *appModel) startEdit(n models.Note) {
	m.mode = modeEditing
	m.editingID = n.ID
	m.titleInput.SetValue(n.Title)
	m.textArea.SetValue(n.Text)
	m.undoText = nil
	m.errMsg = ""
	m.status = ""
	m.focusText()
}

func (m *appModel) cancelDraft() {
	m.mode = modeIdle
	m.editingID = uuid.Nil
	m.undoText = nil
	m.errMsg = ""
	m.titleInput.Blur()
	m.textArea.Blur()
}

// selectNote opens the detail panel. Selecting while composing cancels the
// compose and discards its text.
func (m *appModel) selectNote(id uuid.UUID) {
	if m.mode == modeComposing {
		m.cancelDraft()
	}
	id2 := id
	m.selected = &id2
}

// applyOptimized swaps the draft text for the optimized version and keeps the
// previous text for a single undo.
func (m *appModel) applyOptimized(optimized string) {
	prev := m.textArea.Value()
	m.undoText = &prev
	m.textArea.SetValue(optimized)
}

// undoOptimize restores the snapshot. Returns false when there is nothing to
// undo, which makes a second undo in a row a no-op.
func (m *appModel) undoOptimize() bool {
	if m.undoText == nil {
		return false
	}
	m.textArea.SetValue(*m.undoText)
	m.undoText = nil
	return true
}

func (m *appModel) focusText() {
	m.focus = focusText
	m.titleInput.Blur()
	m.textArea.Focus()
}

func (m *appModel) toggleDraftFocus() {
	if m.focus == focusText {
		m.focus = focusTitle
		m.textArea.Blur()
		m.titleInput.Focus()
		return
	}
	m.focusText()
}

func (m *appModel) noteByID(id uuid.UUID) *models.Note {
	for i := range m.notes {
		if m.notes[i].ID == id {
			return &m.notes[i]
		}
	}
	return nil
}

func (m *appModel) cursorNote() *models.Note {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return nil
	}
	return &m.notes[m.cursor]
}

// removeNote drops a note from the in-memory list and clears the selection if
// it pointed at the removed note.
func (m *appModel) removeNote(id uuid.UUID) {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.notes) && m.cursor > 0 {
		m.cursor = len(m.notes) - 1
	}
	if m.selected != nil && *m.selected == id {
		m.selected = nil
	}
}

// resetToLogin discards all note state, matching a full page load.
func (m *appModel) resetToLogin() {
	m.busy = false
	m.screen = screenLogin
	m.notes = nil
	m.fetching = false
	m.loaded = false
	m.cursor = 0
	m.selected = nil
	m.cancelDraft()
	m.errMsg = ""
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.emailInput.Focus()
	m.loginFocus = 0
}

// replaceNote swaps a note in place by id, keeping list order.
func (m *appModel) replaceNote(n models.Note) {
	for i := range m.notes {
		if m.notes[i].ID == n.ID {
			m.notes[i] = n
			return
		}
	}
}
