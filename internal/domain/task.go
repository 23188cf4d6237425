package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyOwnerID     = errors.New("task owner cannot be empty")
)

// Task represents a single to-do item owned by exactly one user.
// The owner is stamped at creation from the authenticated identity and is
// immutable afterwards; it is not among the updatable fields.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by ownerID. It generates a new UUID and
// sets the creation/update timestamps. Returns a validation error if the
// description is empty or the owner is missing.
func NewTask(ownerID uuid.UUID, description string, completed bool) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Completed:   completed,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}

	return nil
}
