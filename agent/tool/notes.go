package tool

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

const (
	NameNotesSearch = "notes.search.v1"
	NameNotesSave   = "notes.save.v1"
)

const (
	defaultNotesLimit = 5
	maxNotesLimit     = 50
)

var notesSearchSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"query": {"type": "string", "minLength": 1},
		"limit": {"type": "integer", "minimum": 1, "maximum": 50}
	},
	"required": ["userId", "query"],
	"additionalProperties": false
}`)

var notesSaveSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"content": {"type": "string", "minLength": 1}
	},
	"required": ["userId", "content"],
	"additionalProperties": false
}`)

type NotesSearchResult struct {
	Notes []contractx.Note `json:"notes"`
}

type NotesSaveResult struct {
	Note contractx.Note `json:"note"`
}

// NotesSearch finds the user's prior prep notes matching a query.
func NotesSearch() *contractx.Contract {
	return &contractx.Contract{
		Name:        NameNotesSearch,
		Version:     "v1",
		Description: "Search the user's saved prep notes by keyword.",
		InputSchema: notesSearchSchema,
		Handler:     handleNotesSearch,
	}
}

// NotesSave persists a prep note for the user. This is the one built-in
// contract with a durable write.
func NotesSave() *contractx.Contract {
	return &contractx.Contract{
		Name:        NameNotesSave,
		Version:     "v1",
		Description: "Save a prep note for the user.",
		InputSchema: notesSaveSchema,
		Handler:     handleNotesSave,
	}
}

func handleNotesSearch(ctx context.Context, args map[string]any, ec *contractx.ExecutionContext) (any, error) {
	query := strings.TrimSpace(args["query"].(string))

	limit := defaultNotesLimit
	if raw, ok := args["limit"].(float64); ok {
		limit = int(raw)
	}
	if limit < 1 || limit > maxNotesLimit {
		limit = defaultNotesLimit
	}

	notes, err := ec.Store.SearchNotes(ctx, ec.UserID, query, limit)
	if err != nil {
		return nil, contractx.Internal("notes search failed", err)
	}
	if notes == nil {
		notes = []contractx.Note{}
	}
	return NotesSearchResult{Notes: notes}, nil
}

func handleNotesSave(ctx context.Context, args map[string]any, ec *contractx.ExecutionContext) (any, error) {
	note := contractx.Note{
		ID:        uuid.NewString(),
		UserID:    ec.UserID,
		Content:   strings.TrimSpace(args["content"].(string)),
		CreatedAt: time.Now().UTC(),
	}
	if err := ec.Store.SaveNote(ctx, &note); err != nil {
		return nil, contractx.Internal("note save failed", err)
	}
	return NotesSaveResult{Note: note}, nil
}
