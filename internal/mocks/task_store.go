package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/domain"
	"github.com/ruyichen/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default behavior
// keeps tasks in a map by ID and applies the same ownership gate as the real
// store: a task owned by someone else is indistinguishable from a missing one.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, task *domain.Task) error
	GetOneFn            func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	ListFn              func(ctx context.Context, ownerID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error)
	UpdateFn            func(ctx context.Context, ownerID uuid.UUID, task *domain.Task) error
	DeleteFn            func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	DeleteAllForOwnerFn func(ctx context.Context, ownerID uuid.UUID) error

	// Data for the default implementation
	Tasks map[uuid.UUID]*domain.Task
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Tasks: make(map[uuid.UUID]*domain.Task)}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// GetOne implements the TaskStore interface
func (m *MockTaskStore) GetOne(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetOneFn != nil {
		return m.GetOneFn(ctx, ownerID, taskID)
	}

	task, exists := m.Tasks[taskID]
	if !exists || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// List implements the TaskStore interface. The default implementation applies
// the completed filter, sort criteria, and skip/limit window in memory.
func (m *MockTaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	opts store.TaskListOptions,
) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, opts)
	}

	tasks := []*domain.Task{}
	for _, task := range m.Tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if opts.Completed != nil && task.Completed != *opts.Completed {
			continue
		}
		copied := *task
		tasks = append(tasks, &copied)
	}

	criteria := opts.Sort
	if len(criteria) == 0 {
		criteria = []store.TaskSort{{Field: store.SortByCreatedAt}}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		for _, c := range criteria {
			cmp := compareTasks(tasks[i], tasks[j], c.Field)
			if cmp == 0 {
				continue
			}
			if c.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	if opts.Skip != nil {
		if *opts.Skip >= len(tasks) {
			tasks = []*domain.Task{}
		} else {
			tasks = tasks[*opts.Skip:]
		}
	}
	if opts.Limit != nil && *opts.Limit < len(tasks) {
		tasks = tasks[:*opts.Limit]
	}

	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	task *domain.Task,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, task)
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, taskID)
	}

	task, exists := m.Tasks[taskID]
	if !exists || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	delete(m.Tasks, taskID)
	return task, nil
}

// DeleteAllForOwner implements the TaskStore interface
func (m *MockTaskStore) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	if m.DeleteAllForOwnerFn != nil {
		return m.DeleteAllForOwnerFn(ctx, ownerID)
	}

	for id, task := range m.Tasks {
		if task.OwnerID == ownerID {
			delete(m.Tasks, id)
		}
	}
	return nil
}

// compareTasks orders two tasks by a single sort field, returning a negative,
// zero, or positive value in the manner of strings.Compare.
func compareTasks(a, b *domain.Task, field store.TaskSortField) int {
	switch field {
	case store.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case store.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case store.SortByCompleted:
		switch {
		case a.Completed == b.Completed:
			return 0
		case b.Completed:
			return -1
		default:
			return 1
		}
	case store.SortByDescription:
		switch {
		case a.Description < b.Description:
			return -1
		case a.Description > b.Description:
			return 1
		}
	}
	return 0
}
