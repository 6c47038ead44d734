package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/storage"
)

type NoteRequest struct {
	Content  string `json:"content" validate:"required"`
	Priority string `json:"priority" validate:"required,oneof=low medium high"`
}

func ValidateNoteRequest(req *NoteRequest) error {
	return validate.Struct(req)
}

func ListNotes(ctx context.Context, data *storage.UserData, user *internal.User) ([]internal.Note, error) {
	return data.Notes(ctx, user.Email)
}

func CreateNote(ctx context.Context, data *storage.UserData, user *internal.User, req *NoteRequest) (*internal.Note, error) {
	note := internal.Note{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Content:   req.Content,
		Priority:  internal.NotePriority(req.Priority),
		CreatedAt: time.Now(),
	}
	notes, err := data.Notes(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	notes = append(notes, note)
	if err := data.SaveNotes(ctx, user.Email, notes); err != nil {
		return nil, err
	}
	return &note, nil
}

func ToggleNote(ctx context.Context, data *storage.UserData, user *internal.User, noteID string) (*internal.Note, error) {
	notes, err := data.Notes(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == noteID {
			notes[i].IsCompleted = !notes[i].IsCompleted
			if notes[i].IsCompleted {
				now := time.Now()
				notes[i].CompletedAt = &now
			} else {
				notes[i].CompletedAt = nil
			}
			if err := data.SaveNotes(ctx, user.Email, notes); err != nil {
				return nil, err
			}
			n := notes[i]
			return &n, nil
		}
	}
	return nil, internal.NotFoundError("note not found")
}

func DeleteNote(ctx context.Context, data *storage.UserData, user *internal.User, noteID string) error {
	notes, err := data.Notes(ctx, user.Email)
	if err != nil {
		return err
	}
	for i := range notes {
		if notes[i].ID == noteID {
			notes = append(notes[:i], notes[i+1:]...)
			return data.SaveNotes(ctx, user.Email, notes)
		}
	}
	return internal.NotFoundError("note not found")
}
