// Package optimizer relays note text to an external language-model completion
// API. The feature degrades instead of failing: server-class or transport
// errors upstream produce a marked copy of the original text so the editing
// flow is never blocked.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jotter/internal/config"
)

const systemPrompt = "You are a note optimization assistant. Optimize the provided note for grammar, structure, and concision while preserving its original meaning. Return only the optimized text."

// SimulatedPrefix marks fallback responses synthesized when the upstream is
// unreachable or failing server-side.
const SimulatedPrefix = "[simulated optimization] "

var (
	ErrEmptyContent = errors.New("note content must not be empty")
	ErrNoAPIKey     = errors.New("completion API key not configured")
	ErrMalformed    = errors.New("completion API returned malformed data")
)

// UpstreamError carries a client-class upstream failure through to the caller
// with its original status code.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type Optimizer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func New(cfg config.Config) *Optimizer {
	return &Optimizer{
		apiKey:  cfg.OpenRouterAPIKey,
		baseURL: cfg.OpenRouterAPIURL,
		model:   cfg.OpenRouterModel,
		// A hung upstream must not hang the request indefinitely. A
		// timeout counts as a transport failure and falls back.
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Available reports whether the optimize feature can be offered at all.
func (o *Optimizer) Available() bool {
	return o.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Optimize makes exactly one upstream attempt. Failure policy:
//   - upstream >= 500 or any transport error: return the original content
//     behind SimulatedPrefix, err nil
//   - upstream 4xx: *UpstreamError with the upstream status and message
//   - response missing the content field: ErrMalformed
func (o *Optimizer) Optimize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	if o.apiKey == "" {
		return "", ErrNoAPIKey
	}

	payload := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Optimize note: " + content},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return SimulatedPrefix + content, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint(), bytes.NewReader(body))
	if err != nil {
		return SimulatedPrefix + content, nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return SimulatedPrefix + content, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return SimulatedPrefix + content, nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := fmt.Sprintf("completion API request failed: %d", resp.StatusCode)
		var errBody upstreamErrorBody
		if data, err := io.ReadAll(resp.Body); err == nil {
			if json.Unmarshal(data, &errBody) == nil && errBody.Error.Message != "" {
				msg = errBody.Error.Message
			}
		}
		return "", &UpstreamError{Status: resp.StatusCode, Message: msg}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return SimulatedPrefix + content, nil
	}
	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return SimulatedPrefix + content, nil
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrMalformed
	}

	optimized := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if optimized == "" {
		return content, nil
	}
	return optimized, nil
}

func (o *Optimizer) endpoint() string {
	if strings.HasSuffix(o.baseURL, "/chat/completions") {
		return o.baseURL
	}
	return strings.TrimSuffix(o.baseURL, "/") + "/chat/completions"
}
