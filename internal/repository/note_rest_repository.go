package repository

import (
	"context"
	"fmt"
	"time"

	"notes-api/internal/config"
	"notes-api/internal/constant"
	"notes-api/internal/entity"
	"notes-api/pkg/postgrest"
)

// Timestamps without a zone come from timestamp columns and are taken as UTC.
var storeTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

type noteRow struct {
	Id        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func (r noteRow) toEntity() (*entity.Note, error) {
	createdAt, err := parseStoreTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Note{Id: r.Id, Content: r.Content, CreatedAt: createdAt}, nil
}

func parseStoreTime(value string) (time.Time, error) {
	for _, layout := range storeTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized created_at %q", value)
}

type insertNoteRow struct {
	Content string `json:"content"`
}

// restNoteRepository talks to the managed store over its REST interface. A new
// client is built for every call from the configured URL and service key.
type restNoteRepository struct {
	cfg postgrest.Config
}

func NewRestNoteRepository(cfg config.StoreConfig) INoteRepository {
	return &restNoteRepository{
		cfg: postgrest.Config{
			URL:        cfg.URL,
			ServiceKey: cfg.ServiceKey,
		},
	}
}

func (r *restNoteRepository) List(ctx context.Context, limit int) ([]*entity.Note, error) {
	client, err := postgrest.NewClient(r.cfg)
	if err != nil {
		return nil, err
	}

	var rows []noteRow
	err = client.Select(ctx, constant.NoteTable, postgrest.Query{
		Select:     "*",
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
	}, &rows)
	if err != nil {
		return nil, err
	}

	res := make([]*entity.Note, 0, len(rows))
	for _, row := range rows {
		note, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		res = append(res, note)
	}

	return res, nil
}

func (r *restNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	client, err := postgrest.NewClient(r.cfg)
	if err != nil {
		return err
	}

	var row noteRow
	err = client.InsertSingle(ctx, constant.NoteTable, insertNoteRow{Content: note.Content}, &row)
	if err != nil {
		return err
	}

	created, err := row.toEntity()
	if err != nil {
		return err
	}

	*note = *created
	return nil
}
