package repository

import (
	"context"

	"notes-api/internal/config"
	"notes-api/internal/constant"
	"notes-api/internal/entity"
	"notes-api/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

type INoteRepository interface {
	// List returns at most limit notes, newest first.
	List(ctx context.Context, limit int) ([]*entity.Note, error)
	// Create inserts note and fills in the store-assigned Id and CreatedAt.
	Create(ctx context.Context, note *entity.Note) error
}

// NewNoteRepository picks the store implementation named by cfg.Driver. pool
// is only used by the postgres driver and may be nil otherwise.
func NewNoteRepository(cfg config.StoreConfig, pool *pgxpool.Pool) INoteRepository {
	if cfg.Driver == config.StoreDriverPostgres {
		return NewPostgresNoteRepository(pool)
	}
	return NewRestNoteRepository(cfg)
}

type postgresNoteRepository struct {
	db database.DatabaseQueryer
}

func NewPostgresNoteRepository(db database.DatabaseQueryer) INoteRepository {
	return &postgresNoteRepository{db: db}
}

func (r *postgresNoteRepository) List(ctx context.Context, limit int) ([]*entity.Note, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, content, created_at FROM `+constant.NoteTable+` ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*entity.Note, 0)
	for rows.Next() {
		var note entity.Note
		if err := rows.Scan(&note.Id, &note.Content, &note.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &note)
	}

	return res, rows.Err()
}

func (r *postgresNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return r.db.QueryRow(
		ctx,
		`INSERT INTO `+constant.NoteTable+` (content) VALUES ($1) RETURNING id, content, created_at`,
		note.Content,
	).Scan(&note.Id, &note.Content, &note.CreatedAt)
}
