package service

import (
	"context"
	"encoding/json"
	"strings"

	"notes-api/internal/constant"
	"notes-api/internal/dto"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/repository"

	"github.com/gofiber/fiber/v2/log"
)

type INoteService interface {
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
}

type noteService struct {
	noteRepository   repository.INoteRepository
	publisherService IPublisherService
}

func NewNoteService(noteRepository repository.INoteRepository, publisherService IPublisherService) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		publisherService: publisherService,
	}
}

func (c *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := c.noteRepository.List(ctx, constant.NoteListLimit)
	if err != nil {
		return nil, serverutils.StoreError(err)
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, dto.NewNoteResponse(note))
	}

	return res, nil
}

// Create stores a note with the trimmed content. Blank content is rejected
// before the store is touched.
func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	note := entity.Note{Content: req.Content}
	if err := c.noteRepository.Create(ctx, &note); err != nil {
		return nil, serverutils.StoreError(err)
	}

	c.publishCreated(ctx, &note)

	return dto.NewNoteResponse(&note), nil
}

// publishCreated announces a stored note. The note is already committed, so a
// failure here is only logged.
func (c *noteService) publishCreated(ctx context.Context, note *entity.Note) {
	if c.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.NoteCreatedMessage{
		NoteId:    note.Id,
		CreatedAt: note.CreatedAt,
	})
	if err != nil {
		log.Warnf("[Publisher] failed to encode event for note %d: %v", note.Id, err)
		return
	}

	if err := c.publisherService.Publish(ctx, payload); err != nil {
		log.Warnf("[Publisher] failed to publish event for note %d: %v", note.Id, err)
	}
}
