package dto

import (
	"time"

	"notes-api/internal/entity"
)

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

type NoteResponse struct {
	Id        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNoteResponse(note *entity.Note) *NoteResponse {
	return &NoteResponse{
		Id:        note.Id,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}

type NoteCreatedMessage struct {
	NoteId    int64     `json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
}
