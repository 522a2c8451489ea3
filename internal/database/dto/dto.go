package dto

import (
	"strings"
	"unicode/utf8"
)

type LoginCredentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type NoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type OptimizeRequest struct {
	Content string `json:"content"`
}

type OptimizeResponse struct {
	OptimizedContent string `json:"optimizedContent"`
}

// titleMax is the number of characters of note text used for a derived title.
const titleMax = 50

// DeriveTitle returns the trimmed title if present, otherwise the first 50
// characters of the trimmed text, with an ellipsis when truncated. Counted in
// runes so multibyte text is never cut mid-character.
func DeriveTitle(title, text string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	t := strings.TrimSpace(text)
	runes := []rune(t)
	if utf8.RuneCountInString(t) <= titleMax {
		return t
	}
	return string(runes[:titleMax]) + "..."
}
