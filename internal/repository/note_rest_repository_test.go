package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notes-api/internal/config"
	"notes-api/internal/entity"
	"notes-api/pkg/postgrest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restRepository(t *testing.T, handler http.HandlerFunc) INoteRepository {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewNoteRepository(config.StoreConfig{
		Driver:     config.StoreDriverRest,
		URL:        srv.URL,
		ServiceKey: "service-key",
	}, nil)
}

func TestRestNoteRepository_List(t *testing.T) {
	repo := restRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/notes", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.URL.Query().Get("order"), "created_at.desc"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		io.WriteString(w, `[{"id":3,"content":"c","created_at":"2024-05-01T10:00:02Z"},{"id":1,"content":"a","created_at":"2024-05-01T10:00:00Z"}]`)
	})

	notes, err := repo.List(context.Background(), 50)
	require.NoError(t, err)

	require.Len(t, notes, 2)
	assert.Equal(t, int64(3), notes[0].Id)
	assert.Equal(t, "a", notes[1].Content)
}

func TestRestNoteRepository_ListEmpty(t *testing.T) {
	repo := restRepository(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	notes, err := repo.List(context.Background(), 50)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestRestNoteRepository_Create(t *testing.T) {
	repo := restRepository(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content":"buy milk"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":1,"content":"buy milk","created_at":"2024-05-01T10:00:00Z"}`)
	})

	note := &entity.Note{Content: "buy milk"}
	require.NoError(t, repo.Create(context.Background(), note))

	assert.Equal(t, int64(1), note.Id)
	assert.Equal(t, "buy milk", note.Content)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), note.CreatedAt.UTC())
}

func TestRestNoteRepository_TimestampWithoutZone(t *testing.T) {
	repo := restRepository(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":2,"content":"b","created_at":"2024-05-01T10:00:00.123456"}`)
			return
		}
		io.WriteString(w, `[{"id":1,"content":"a","created_at":"2024-05-01 09:00:00"}]`)
	})

	notes, err := repo.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), notes[0].CreatedAt)

	note := &entity.Note{Content: "b"}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC), note.CreatedAt)
}

func TestRestNoteRepository_UnrecognizedTimestamp(t *testing.T) {
	repo := restRepository(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"content":"a","created_at":"yesterday"}]`)
	})

	_, err := repo.List(context.Background(), 50)
	assert.Error(t, err)
}

func TestRestNoteRepository_StoreError(t *testing.T) {
	repo := restRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Invalid API key"}`)
	})

	_, err := repo.List(context.Background(), 50)
	require.Error(t, err)
	assert.Equal(t, "Invalid API key", err.Error())

	err = repo.Create(context.Background(), &entity.Note{Content: "x"})
	assert.EqualError(t, err, "Invalid API key")
}

func TestRestNoteRepository_NotConfigured(t *testing.T) {
	repo := NewNoteRepository(config.StoreConfig{Driver: config.StoreDriverRest}, nil)

	_, err := repo.List(context.Background(), 50)
	assert.ErrorIs(t, err, postgrest.ErrMissingURL)

	err = repo.Create(context.Background(), &entity.Note{Content: "x"})
	assert.ErrorIs(t, err, postgrest.ErrMissingURL)
}
