package store

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every operation other than Create takes the owner's identity as an
// implicit filter: a caller can only ever observe or mutate tasks whose
// owner matches. Ownership misses and true absence are indistinguishable —
// both surface as ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task to the store. The task's OwnerID must already
	// be stamped from the authenticated identity.
	Create(ctx context.Context, task *domain.Task) error

	// GetOne retrieves the task with the given ID only if it is owned by
	// ownerID. Returns ErrTaskNotFound otherwise.
	GetOne(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List returns the tasks owned by ownerID matching opts, in the
	// requested order, windowed by the skip/limit options.
	List(ctx context.Context, ownerID uuid.UUID, opts TaskListOptions) ([]*domain.Task, error)

	// Update persists the task's current description and completed values
	// only if the task is owned by ownerID. Returns ErrTaskNotFound otherwise.
	Update(ctx context.Context, ownerID uuid.UUID, task *domain.Task) error

	// Delete removes the task only if it is owned by ownerID and returns the
	// deleted task. Returns ErrTaskNotFound otherwise.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// DeleteAllForOwner removes every task owned by ownerID. Used by the
	// account-deletion cascade; deleting zero rows is not an error.
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error
}

// TaskSortField names a client-visible sortable field.
type TaskSortField string

// Sortable task fields as they appear in the sortBy query parameter.
const (
	SortByCreatedAt   TaskSortField = "createdAt"
	SortByUpdatedAt   TaskSortField = "updatedAt"
	SortByCompleted   TaskSortField = "completed"
	SortByDescription TaskSortField = "description"
)

// TaskSort is one parsed sort criterion.
type TaskSort struct {
	Field      TaskSortField
	Descending bool
}

// TaskListOptions captures the filter, sort, and pagination options for a
// task listing, parsed from request query parameters. Nil pointer fields
// mean "not specified".
type TaskListOptions struct {
	// Completed filters for an exact completed value when non-nil.
	Completed *bool

	// Sort lists the requested sort criteria in order of precedence.
	Sort []TaskSort

	// Limit and Skip window the result set when non-nil.
	Limit *int
	Skip  *int
}

// ParseTaskListOptions builds TaskListOptions from URL query parameters.
//
// Parsing is deliberately permissive: limit/skip values that are not
// non-negative integers are ignored rather than rejected, unknown sort
// fields are dropped, and any completed value other than the literal "true"
// filters for false. This mirrors long-standing client-facing behavior and
// is intentional, not an oversight.
func ParseTaskListOptions(values url.Values) TaskListOptions {
	var opts TaskListOptions

	if values.Has("completed") {
		completed := values.Get("completed") == "true"
		opts.Completed = &completed
	}

	for _, spec := range values["sortBy"] {
		if sort, ok := parseTaskSort(spec); ok {
			opts.Sort = append(opts.Sort, sort)
		}
	}

	if n, ok := parseNonNegativeInt(values.Get("limit")); ok {
		opts.Limit = &n
	}
	if n, ok := parseNonNegativeInt(values.Get("skip")); ok {
		opts.Skip = &n
	}

	return opts
}

// parseTaskSort parses a single sortBy specification of the form
// "field:direction" or "field_direction". The direction token "desc" sorts
// descending; anything else, including its absence, sorts ascending.
func parseTaskSort(spec string) (TaskSort, bool) {
	field, direction := spec, ""
	if i := strings.IndexAny(spec, ":_"); i >= 0 {
		field, direction = spec[:i], spec[i+1:]
	}

	switch TaskSortField(field) {
	case SortByCreatedAt, SortByUpdatedAt, SortByCompleted, SortByDescription:
		return TaskSort{Field: TaskSortField(field), Descending: direction == "desc"}, true
	}
	return TaskSort{}, false
}

// parseNonNegativeInt parses s as a non-negative integer, reporting whether
// it was usable. Empty, malformed, and negative values are simply unusable.
func parseNonNegativeInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
