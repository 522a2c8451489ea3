// Package client is the Go consumer of the jotter API used by the terminal
// UI. It keeps the session cookie in a jar, mirrors the server's local
// validation, and exposes the auth state as an observable context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"jotter/internal/database/dto"
	"jotter/internal/database/models"

	"github.com/google/uuid"
)

// ErrEmptyText rejects whitespace-only note content before any request is
// made.
var ErrEmptyText = errors.New("note text must not be empty")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if data, err := io.ReadAll(resp.Body); err == nil {
			if json.Unmarshal(data, &envelope) == nil {
				apiErr.Message = envelope.Error
			}
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/login", dto.LoginCredentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Register(ctx context.Context, user *models.User) error {
	return c.do(ctx, http.MethodPost, "/api/register", user, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Session returns the currently authenticated user, or an APIError with
// status 401 when the session is absent or expired.
func (c *Client) Session(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/session", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var resp struct {
		Notes []models.Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *Client) CreateNote(ctx context.Context, title, text string) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	var resp struct {
		Note *models.Note `json:"note"`
	}
	err := c.do(ctx, http.MethodPost, "/api/notes", dto.NoteRequest{Title: title, Text: text}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id uuid.UUID, title, text string) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	var resp struct {
		Note *models.Note `json:"note"`
	}
	err := c.do(ctx, http.MethodPut, "/api/notes/"+id.String(), dto.NoteRequest{Title: title, Text: text}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id.String(), nil, nil)
}

func (c *Client) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	var resp struct {
		Notes []models.Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notes/search?q="+url.QueryEscape(query), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// Optimize relays draft text through the server's completion proxy.
func (c *Client) Optimize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyText
	}
	var resp dto.OptimizeResponse
	err := c.do(ctx, http.MethodPost, "/api/optimize-note", dto.OptimizeRequest{Content: content}, &resp)
	if err != nil {
		return "", err
	}
	if resp.OptimizedContent == "" {
		return "", errors.New("optimize returned no content")
	}
	return resp.OptimizedContent, nil
}

// OptimizeAvailable probes whether the optimize feature is configured
// server-side. Any failure reads as unavailable.
func (c *Client) OptimizeAvailable(ctx context.Context) bool {
	var resp struct {
		Available bool `json:"available"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/optimize-note", nil, &resp); err != nil {
		return false
	}
	return resp.Available
}
