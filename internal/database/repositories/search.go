package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"jotter/internal/database/models"
	"strings"

	"github.com/google/uuid"
)

type SearchRepository interface {
	SearchNotes(ctx context.Context, query string, userID uuid.UUID) ([]models.Note, error)
}

type searchRepository struct {
	db *sql.DB
}

func NewSearchRepository(db *sql.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (s *searchRepository) SearchNotes(ctx context.Context, query string, userID uuid.UUID) ([]models.Note, error) {
	tsQuery := "to_tsquery('english', $1)"
	notesQuery := `
   	SELECT id, title, text, user_id, created_at, updated_at
   	FROM notes
   	WHERE user_id = $2 AND
   	      (to_tsvector('english', title) @@ ` + tsQuery + ` OR
   	       to_tsvector('english', text) @@ ` + tsQuery + `)
   	ORDER BY ts_rank(to_tsvector('english', title || ' ' || text), ` + tsQuery + `) DESC
   `

	formattedQuery := formatTsQuery(query)

	rows, err := s.db.QueryContext(ctx, notesQuery, formattedQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error searching notes: %v", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Text,
			&note.UserID,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning note: %v", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %v", err)
	}
	return notes, nil
}

func formatTsQuery(query string) string {
	// Split the query into words
	words := strings.Fields(query)

	// Process each word
	for i, word := range words {
		// Escape special characters
		word = strings.ReplaceAll(word, "'", "''")
		// Add prefix matching
		words[i] = word + ":*"
	}

	// Join with & for AND operations
	return strings.Join(words, " & ")
}
