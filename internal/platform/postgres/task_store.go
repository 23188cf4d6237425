package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/domain"
	"github.com/ruyichen/task-api/internal/platform/logger"
	"github.com/ruyichen/task-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
//
// Every single-resource query includes the owner in its WHERE clause via
// ownershipPredicate, so an ID belonging to another user behaves exactly
// like an ID that does not exist.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{db: db}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, description, completed, user_id, created_at, updated_at"

// ownershipPredicate is the single shared gate for get, update, and delete.
// It always binds the task ID as $1 and the owner as $2.
const ownershipPredicate = "id = $1 AND user_id = $2"

// sortColumns maps client-visible sort field names to table columns.
// Sort specifications are never interpolated into SQL from raw input.
var sortColumns = map[store.TaskSortField]string{
	store.SortByCreatedAt:   "created_at",
	store.SortByUpdatedAt:   "updated_at",
	store.SortByCompleted:   "completed",
	store.SortByDescription: "description",
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO tasks (id, description, completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Description,
		task.Completed,
		task.OwnerID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert task",
			"task_id", task.ID,
			"owner_id", task.OwnerID,
			"error", err)
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// GetOne implements store.TaskStore.GetOne
func (s *TaskStore) GetOne(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s", taskColumns, ownershipPredicate)
	return s.scanTask(ctx, s.db.QueryRowContext(ctx, query, taskID, ownerID))
}

// List implements store.TaskStore.List
func (s *TaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	opts store.TaskListOptions,
) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)

	query, args := buildListQuery(ownerID, opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			"owner_id", ownerID,
			"error", err)
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Description,
			&task.Completed,
			&task.OwnerID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error("failed to scan task row",
				"owner_id", ownerID,
				"error", err)
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, ownerID uuid.UUID, task *domain.Task) error {
	log := logger.FromContext(ctx)

	query := fmt.Sprintf(`
		UPDATE tasks
		SET description = $3, completed = $4, updated_at = $5
		WHERE %s
	`, ownershipPredicate)

	task.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query,
		task.ID,
		ownerID,
		task.Description,
		task.Completed,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update task",
			"task_id", task.ID,
			"owner_id", ownerID,
			"error", err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete. The RETURNING clause lets the
// delete be a single gated statement while still producing the removed task
// for the response body.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf(
		"DELETE FROM tasks WHERE %s RETURNING %s",
		ownershipPredicate, taskColumns,
	)
	return s.scanTask(ctx, s.db.QueryRowContext(ctx, query, taskID, ownerID))
}

// DeleteAllForOwner implements store.TaskStore.DeleteAllForOwner
func (s *TaskStore) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, ownerID)
	if err != nil {
		log.Error("failed to delete tasks for owner",
			"owner_id", ownerID,
			"error", err)
		return fmt.Errorf("failed to delete tasks for owner: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil {
		log.Debug("cascade-deleted tasks", "owner_id", ownerID, "count", n)
	}

	return nil
}

// buildListQuery constructs the SELECT for a task listing from the parsed
// options. The owner filter is always first and unconditional; completed,
// ORDER BY, LIMIT, and OFFSET are appended only when requested. Sort columns
// come from the sortColumns allow-list, and limit/skip are bound as
// placeholders, so no client input reaches the SQL text.
func buildListQuery(ownerID uuid.UUID, opts store.TaskListOptions) (string, []any) {
	var sb strings.Builder
	args := []any{ownerID}

	sb.WriteString("SELECT ")
	sb.WriteString(taskColumns)
	sb.WriteString(" FROM tasks WHERE user_id = $1")

	if opts.Completed != nil {
		args = append(args, *opts.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}

	orderings := make([]string, 0, len(opts.Sort))
	for _, sort := range opts.Sort {
		column, ok := sortColumns[sort.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if sort.Descending {
			direction = "DESC"
		}
		orderings = append(orderings, column+" "+direction)
	}
	if len(orderings) == 0 {
		// Stable default so pagination windows do not shuffle between requests.
		orderings = append(orderings, "created_at ASC")
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(orderings, ", "))

	if opts.Limit != nil {
		args = append(args, *opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if opts.Skip != nil {
		args = append(args, *opts.Skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return sb.String(), args
}

// scanTask scans a single task row, mapping sql.ErrNoRows to ErrTaskNotFound.
func (s *TaskStore) scanTask(ctx context.Context, row *sql.Row) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Description,
		&task.Completed,
		&task.OwnerID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to scan task row", "error", err)
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}

	return &task, nil
}
