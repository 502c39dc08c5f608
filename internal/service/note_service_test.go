package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"notes-api/internal/dto"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNoteRepo struct {
	mu      sync.Mutex
	notes   []*entity.Note
	nextId  int64
	now     time.Time
	err     error
	creates int
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{
		nextId: 1,
		now:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (m *mockNoteRepo) List(ctx context.Context, limit int) ([]*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	res := make([]*entity.Note, len(m.notes))
	copy(res, m.notes)
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *mockNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.creates++
	note.Id = m.nextId
	note.CreatedAt = m.now.Add(time.Duration(m.nextId) * time.Second)
	m.nextId++

	stored := *note
	m.notes = append(m.notes, &stored)
	return nil
}

type mockPublisher struct {
	payloads [][]byte
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, payload []byte) error {
	m.payloads = append(m.payloads, payload)
	return m.err
}

func TestNoteService_Create(t *testing.T) {
	repo := newMockNoteRepo()
	publisher := &mockPublisher{}
	svc := NewNoteService(repo, publisher)

	res, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: "  buy milk "})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Id)
	assert.Equal(t, "buy milk", res.Content)
	assert.False(t, res.CreatedAt.IsZero())
	assert.Equal(t, "buy milk", repo.notes[0].Content)

	require.Len(t, publisher.payloads, 1)
	assert.JSONEq(t, `{"note_id":1,"created_at":"2024-05-01T10:00:01Z"}`, string(publisher.payloads[0]))
}

func TestNoteService_CreateBlankContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t "} {
		repo := newMockNoteRepo()
		publisher := &mockPublisher{}
		svc := NewNoteService(repo, publisher)

		_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: content})
		require.Error(t, err)

		var ve *serverutils.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "content is required", ve.Error())
		assert.Zero(t, repo.creates)
		assert.Empty(t, publisher.payloads)
	}
}

func TestNoteService_CreateStoreError(t *testing.T) {
	repo := newMockNoteRepo()
	repo.err = errors.New("connection refused")
	publisher := &mockPublisher{}
	svc := NewNoteService(repo, publisher)

	_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: "x"})
	require.Error(t, err)

	var httpErr *serverutils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Code)
	assert.Equal(t, "connection refused", httpErr.Message)
	assert.ErrorIs(t, err, repo.err)
	assert.Empty(t, publisher.payloads)
}

func TestNoteService_CreatePublishFailureIgnored(t *testing.T) {
	repo := newMockNoteRepo()
	svc := NewNoteService(repo, &mockPublisher{err: errors.New("closed")})

	res, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Id)
}

func TestNoteService_CreateWithoutPublisher(t *testing.T) {
	svc := NewNoteService(newMockNoteRepo(), nil)

	_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: "x"})
	assert.NoError(t, err)
}

func TestNoteService_List(t *testing.T) {
	repo := newMockNoteRepo()
	svc := NewNoteService(repo, nil)

	for i := 0; i < 60; i++ {
		_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: "note"})
		require.NoError(t, err)
	}

	res, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, res, 50)
	assert.Equal(t, int64(60), res[0].Id)
	for i := 1; i < len(res); i++ {
		assert.True(t, res[i-1].CreatedAt.After(res[i].CreatedAt))
	}
}

func TestNoteService_ListEmpty(t *testing.T) {
	svc := NewNoteService(newMockNoteRepo(), nil)

	res, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestNoteService_ListStoreError(t *testing.T) {
	repo := newMockNoteRepo()
	repo.err = errors.New("store unreachable")
	svc := NewNoteService(repo, nil)

	_, err := svc.List(context.Background())

	var httpErr *serverutils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Code)
	assert.Equal(t, "store unreachable", httpErr.Message)
}
