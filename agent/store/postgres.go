package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

type Config struct {
	DSN          string `envconfig:"DSN" split_words:"true" required:"true"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"10"`
}

type integrationRow struct {
	bun.BaseModel `bun:"table:user_integrations"`

	UserID       string    `bun:"user_id"`
	Kind         string    `bun:"kind"`
	AccessToken  string    `bun:"access_token"`
	RefreshToken string    `bun:"refresh_token"`
	Expiry       time.Time `bun:"expiry,nullzero"`
	IsActive     bool      `bun:"is_active"`
}

type noteRow struct {
	bun.BaseModel `bun:"table:prep_notes"`

	ID        string    `bun:"id,pk"`
	UserID    string    `bun:"user_id"`
	Content   string    `bun:"content"`
	CreatedAt time.Time `bun:"created_at"`
}

// PostgresStore is the durable storage collaborator. All reads and writes
// are scoped by user id, so independent requests never contend on rows.
type PostgresStore struct {
	db *bun.DB
}

var _ contractx.Store = (*PostgresStore)(nil)

func NewPostgresStore(cfg Config) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store: dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &PostgresStore{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// GetIntegration returns the stored credential record for one integration
// kind, or nil when the user never connected it.
func (s *PostgresStore) GetIntegration(ctx context.Context, userID string, kind contractx.IntegrationKind) (*contractx.IntegrationRecord, error) {
	row := new(integrationRow)
	err := s.db.NewSelect().
		Model(row).
		Where("user_id = ?", userID).
		Where("kind = ?", string(kind)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get integration %s/%s: %w", userID, kind, err)
	}

	return &contractx.IntegrationRecord{
		UserID:       row.UserID,
		Kind:         contractx.IntegrationKind(row.Kind),
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		Expiry:       row.Expiry,
		IsActive:     row.IsActive,
	}, nil
}

func (s *PostgresStore) SearchNotes(ctx context.Context, userID string, query string, limit int) ([]contractx.Note, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []noteRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Where("content ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: search notes for %s: %w", userID, err)
	}

	notes := make([]contractx.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, contractx.Note{
			ID:        row.ID,
			UserID:    row.UserID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}
	return notes, nil
}

func (s *PostgresStore) SaveNote(ctx context.Context, note *contractx.Note) error {
	if note == nil {
		return errors.New("store: note is nil")
	}
	row := &noteRow{
		ID:        note.ID,
		UserID:    note.UserID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("store: save note for %s: %w", note.UserID, err)
	}
	return nil
}
