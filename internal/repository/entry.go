package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/teamjokbo/jokbo/internal/model"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

type EntryRepository interface {
	ByTeam(ctx context.Context, teamID string) ([]*model.Entry, error)
	ByID(ctx context.Context, id int64) (*model.Entry, error)
	Create(ctx context.Context, entry *model.Entry) error
	Update(ctx context.Context, entry *model.Entry) error
	Delete(ctx context.Context, id int64) error
}

type entryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) EntryRepository {
	return &entryRepository{db: db}
}

// ByTeam returns the team's entries newest first.
func (r *entryRepository) ByTeam(ctx context.Context, teamID string) ([]*model.Entry, error) {
	var entries []*model.Entry
	query := `SELECT * FROM check_entries WHERE team_id = $1 ORDER BY created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &entries, query, teamID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *entryRepository) ByID(ctx context.Context, id int64) (*model.Entry, error) {
	entry := &model.Entry{}
	query := `SELECT * FROM check_entries WHERE id = $1`

	err := r.db.GetContext(ctx, entry, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Create inserts the entry and fills in its generated id and timestamps.
func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `INSERT INTO check_entries
	          (team_id, category, item_type, review_text, shared_at, author_name, note, link_url, attachments, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	result, err := r.db.ExecContext(ctx, query,
		entry.TeamID,
		entry.Category,
		entry.ItemType,
		entry.ReviewText,
		entry.SharedAt,
		entry.AuthorName,
		entry.Note,
		entry.LinkURL,
		entry.Attachments,
		entry.CreatedBy,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id

	return nil
}

func (r *entryRepository) Update(ctx context.Context, entry *model.Entry) error {
	entry.UpdatedAt = time.Now()

	query := `UPDATE check_entries
	          SET category = $1, item_type = $2, review_text = $3, shared_at = $4,
	              author_name = $5, note = $6, link_url = $7, attachments = $8, updated_at = $9
	          WHERE id = $10 AND team_id = $11`

	result, err := r.db.ExecContext(ctx, query,
		entry.Category,
		entry.ItemType,
		entry.ReviewText,
		entry.SharedAt,
		entry.AuthorName,
		entry.Note,
		entry.LinkURL,
		entry.Attachments,
		entry.UpdatedAt,
		entry.ID,
		entry.TeamID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete is not reachable from the UI; it exists for administrative cleanup.
func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM check_entries WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEntryNotFound
	}

	return nil
}
