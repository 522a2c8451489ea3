package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"jotter/internal/database/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

func testNote(title, text string) models.Note {
	return models.Note{ID: uuid.New(), Title: title, Text: text, CreatedAt: time.Now()}
}

func notesModel(notes ...models.Note) appModel {
	m := newAppModel(nil)
	m.screen = screenNotes
	m.loaded = true
	m.notes = notes
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func asModel(t *testing.T, res tea.Model) appModel {
	t.Helper()
	m, ok := res.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", res)
	}
	return m
}

func TestStartCompose_ClearsSelection(t *testing.T) {
	n := testNote("a", "text")
	m := notesModel(n)
	m.selectNote(n.ID)

	res, _ := m.Update(keyRune('n'))
	m = asModel(t, res)

	if m.mode != modeComposing {
		t.Fatalf("expected composing, got %v", m.mode)
	}
	if m.selected != nil {
		t.Fatal("composing must close the detail panel")
	}
}

func TestSelectWhileComposing_CancelsCompose(t *testing.T) {
	n := testNote("a", "text")
	m := notesModel(n)
	m.startCompose()
	m.textArea.SetValue("unsaved draft")

	m.selectNote(n.ID)

	if m.mode != modeIdle {
		t.Fatalf("selecting must cancel the compose, mode=%v", m.mode)
	}
	if m.selected == nil || *m.selected != n.ID {
		t.Fatal("expected the note to be selected")
	}
}

func TestOnlyOneDraftActive(t *testing.T) {
	n := testNote("a", "original")
	m := notesModel(n)

	m.startCompose()
	m.textArea.SetValue("compose draft")
	m.startEdit(n)

	if m.mode != modeEditing || m.editingID != n.ID {
		t.Fatal("expected editing mode for the note")
	}
	if m.textArea.Value() != "original" {
		t.Fatalf("edit must load the note text, got %q", m.textArea.Value())
	}

	m.startCompose()
	if m.mode != modeComposing {
		t.Fatal("expected composing mode")
	}
	if m.textArea.Value() != "" {
		t.Fatal("compose must start from an empty draft")
	}
}

func TestOptimizeUndo_OneShot(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("orig text")

	m.applyOptimized("better text")
	if m.textArea.Value() != "better text" {
		t.Fatalf("draft not replaced: %q", m.textArea.Value())
	}

	if !m.undoOptimize() {
		t.Fatal("first undo must succeed")
	}
	if m.textArea.Value() != "orig text" {
		t.Fatalf("undo must restore exactly the pre-optimize text, got %q", m.textArea.Value())
	}
	if m.undoOptimize() {
		t.Fatal("second undo in a row must be a no-op")
	}
}

func TestNewOptimize_OverwritesUnconsumedSnapshot(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("v1")

	m.applyOptimized("v2")
	m.applyOptimized("v3")

	if !m.undoOptimize() {
		t.Fatal("undo must succeed")
	}
	if got := m.textArea.Value(); got != "v2" {
		t.Fatalf("undo must restore the latest snapshot, got %q", got)
	}
}

func TestSave_ClearsUndoSnapshot(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("text")
	m.applyOptimized("optimized")

	res, cmd := m.Update(key(tea.KeyCtrlS))
	m = asModel(t, res)

	if cmd == nil {
		t.Fatal("save must issue a command")
	}
	if m.undoText != nil {
		t.Fatal("save must clear the undo snapshot")
	}
	if !m.busy {
		t.Fatal("save must set the busy flag")
	}
}

func TestCancel_ClearsUndoSnapshot(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("text")
	m.applyOptimized("optimized")

	res, _ := m.Update(key(tea.KeyEsc))
	m = asModel(t, res)

	if m.mode != modeIdle {
		t.Fatal("esc must cancel the draft")
	}
	if m.undoText != nil {
		t.Fatal("cancel must clear the undo snapshot")
	}
}

func TestDoubleSubmitGuard(t *testing.T) {
	n := testNote("a", "text")
	m := notesModel(n)
	m.busy = true

	res, cmd := m.Update(keyRune('d'))
	m = asModel(t, res)
	if cmd != nil {
		t.Fatal("delete while busy must be ignored")
	}

	m.startEdit(n)
	m.busy = true
	_, cmd = m.Update(key(tea.KeyCtrlS))
	if cmd != nil {
		t.Fatal("save while busy must be ignored")
	}
	_, cmd = m.Update(key(tea.KeyCtrlO))
	if cmd != nil {
		t.Fatal("optimize while busy must be ignored")
	}
}

func TestOptimizeUnavailable_ControlHiddenAndIgnored(t *testing.T) {
	m := notesModel()
	m.aiAvailable = false
	m.startCompose()
	m.textArea.SetValue("text")

	if strings.Contains(m.helpLine(), "optimize") {
		t.Fatal("optimize control must not render when unavailable")
	}

	res, cmd := m.Update(key(tea.KeyCtrlO))
	m = asModel(t, res)
	if cmd != nil || m.busy {
		t.Fatal("ctrl+o must be ignored when the feature is unavailable")
	}
}

func TestEmptyDraft_RejectedLocally(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("   \n ")

	res, cmd := m.Update(key(tea.KeyCtrlS))
	m = asModel(t, res)
	if cmd != nil {
		t.Fatal("whitespace-only draft must not reach the network")
	}
	if m.errMsg == "" {
		t.Fatal("expected an inline validation error")
	}
}

func TestCreatedMsg_SuccessPrependsAndClearsDraft(t *testing.T) {
	existing := testNote("old", "old text")
	m := notesModel(existing)
	m.startCompose()
	m.textArea.SetValue("new text")
	m.busy = true

	created := testNote("new", "new text")
	res, _ := m.Update(createdMsg{note: &created})
	m = asModel(t, res)

	if m.busy {
		t.Fatal("busy must clear on completion")
	}
	if len(m.notes) != 2 || m.notes[0].ID != created.ID {
		t.Fatal("new note must be prepended without a re-fetch")
	}
	if m.mode != modeIdle {
		t.Fatal("draft must close after a successful create")
	}
}

func TestCreatedMsg_FailureKeepsDraft(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("precious draft")
	m.busy = true

	res, _ := m.Update(createdMsg{err: errors.New("boom")})
	m = asModel(t, res)

	if m.busy {
		t.Fatal("busy must clear even on failure")
	}
	if m.mode != modeComposing || m.textArea.Value() != "precious draft" {
		t.Fatal("a failed create must preserve the draft")
	}
	if m.errMsg != "boom" {
		t.Fatalf("expected surfaced error, got %q", m.errMsg)
	}
}

func TestDeletedMsg_ClearsSelection(t *testing.T) {
	n := testNote("a", "text")
	other := testNote("b", "text")
	m := notesModel(n, other)
	m.selectNote(n.ID)
	m.busy = true

	res, _ := m.Update(deletedMsg{id: n.ID})
	m = asModel(t, res)

	if len(m.notes) != 1 || m.notes[0].ID != other.ID {
		t.Fatal("deleted note must leave the in-memory list")
	}
	if m.selected != nil {
		t.Fatal("deleting the selected note must clear the selection")
	}
}

func TestOptimizedMsg_FailureLeavesDraftUnchanged(t *testing.T) {
	m := notesModel()
	m.startCompose()
	m.textArea.SetValue("draft")
	m.busy = true
	m.optimizing = true

	res, _ := m.Update(optimizedMsg{err: errors.New("upstream sad")})
	m = asModel(t, res)

	if m.textArea.Value() != "draft" {
		t.Fatal("failed optimize must not touch the draft")
	}
	if m.undoText != nil {
		t.Fatal("failed optimize must not create an undo snapshot")
	}
	if m.errMsg == "" {
		t.Fatal("expected surfaced error")
	}
}

func TestErrorClearedOnNewAttempt(t *testing.T) {
	m := notesModel(testNote("a", "text"))
	m.errMsg = "stale error"

	res, cmd := m.Update(keyRune('d'))
	m = asModel(t, res)
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	if m.errMsg != "" {
		t.Fatal("starting a new attempt must clear the previous error")
	}
}

func TestSessionLoss_FailsClosedToLogin(t *testing.T) {
	n := testNote("a", "text")
	m := notesModel(n)
	m.selectNote(n.ID)
	m.startEdit(n)

	res, _ := m.Update(authChangedMsg{user: nil})
	m = asModel(t, res)

	if m.screen != screenLogin {
		t.Fatal("losing the session must drop back to the login screen")
	}
	if m.notes != nil || m.selected != nil || m.mode != modeIdle {
		t.Fatal("note state must be discarded like a full page load")
	}
	if m.errMsg == "" {
		t.Fatal("expected an expiry notice")
	}
}

func TestSessionChange_IgnoredOnLoginScreen(t *testing.T) {
	m := newAppModel(nil)
	m.screen = screenLogin

	res, _ := m.Update(authChangedMsg{user: nil})
	m = asModel(t, res)

	if m.screen != screenLogin || m.errMsg != "" {
		t.Fatal("a nil-session notification on the login screen is a no-op")
	}
}

func TestLoadingAndEmptyAreDistinct(t *testing.T) {
	m := newAppModel(nil)
	m.screen = screenNotes
	m.fetching = true

	if !strings.Contains(m.View(), "loading notes") {
		t.Fatal("expected loading state")
	}

	res, _ := m.Update(notesMsg{notes: nil})
	m = asModel(t, res)
	if !strings.Contains(m.View(), "no notes yet") {
		t.Fatal("expected empty state after load")
	}
}
