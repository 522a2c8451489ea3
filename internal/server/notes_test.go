package server

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"jotter/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNotesAPI_RequiresSession(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateNote_WhitespaceOnlyRejectedBeforeStore(t *testing.T) {
	srv, mock := newTestServer(t, config.Config{})

	req := jsonRequest(http.MethodPost, "/api/notes", `{"text":"   \n  "}`)
	req.AddCookie(sessionCookieFor(t, srv, uuid.New(), "a@example.com"))
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, decodeBody(t, resp)["error"])
	// No SQL expectations were registered: the store must not be touched.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNote_DerivesTitleFromText(t *testing.T) {
	srv, mock := newTestServer(t, config.Config{})
	userID := uuid.New()
	noteID := uuid.New()

	long := strings.Repeat("a", 60)
	wantTitle := strings.Repeat("a", 50) + "..."

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notes`)).
		WithArgs(wantTitle, long, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(noteID, time.Now()))

	req := jsonRequest(http.MethodPost, "/api/notes", `{"text":"`+long+`"}`)
	req.AddCookie(sessionCookieFor(t, srv, userID, "a@example.com"))
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	note := decodeBody(t, resp)["note"].(map[string]any)
	require.Equal(t, wantTitle, note["title"])
	require.Nil(t, note["updated_at"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_KeepsCreationTimestamp(t *testing.T) {
	srv, mock := newTestServer(t, config.Config{})
	userID := uuid.New()
	noteID := uuid.New()
	created := time.Now().Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE notes`)).
		WithArgs("hi", "hi", noteID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(created, time.Now()))

	req := jsonRequest(http.MethodPut, "/api/notes/"+noteID.String(), `{"text":"hi"}`)
	req.AddCookie(sessionCookieFor(t, srv, userID, "a@example.com"))
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	note := decodeBody(t, resp)["note"].(map[string]any)
	require.NotEqual(t, "0001-01-01T00:00:00Z", note["created_at"])
	require.NotNil(t, note["updated_at"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_ForeignNoteIsNotFound(t *testing.T) {
	srv, mock := newTestServer(t, config.Config{})
	userID := uuid.New()
	noteID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE notes`)).
		WithArgs("hi", "hi", noteID, userID).
		WillReturnError(sql.ErrNoRows)

	req := jsonRequest(http.MethodPut, "/api/notes/"+noteID.String(), `{"text":"hi"}`)
	req.AddCookie(sessionCookieFor(t, srv, userID, "a@example.com"))
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, decodeBody(t, resp)["error"], "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNote_SecondDeleteReportsNotFound(t *testing.T) {
	srv, mock := newTestServer(t, config.Config{})
	userID := uuid.New()
	noteID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes`)).
		WithArgs(noteID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes`)).
		WithArgs(noteID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	cookie := sessionCookieFor(t, srv, userID, "a@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/"+noteID.String(), nil)
	req.AddCookie(cookie)
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/notes/"+noteID.String(), nil)
	req.AddCookie(cookie)
	resp, err = srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllNotes_EmptyListIsNotNull(t *testing.T) {
	srv, mock := newTestServer(t, config.Config{})
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, text, user_id, created_at, updated_at FROM notes WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "text", "user_id", "created_at", "updated_at"}))

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.AddCookie(sessionCookieFor(t, srv, userID, "a@example.com"))
	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes, ok := decodeBody(t, resp)["notes"].([]any)
	require.True(t, ok, "notes must be an array, not null")
	require.Empty(t, notes)
	require.NoError(t, mock.ExpectationsWereMet())
}
