package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/ruyichen/task-api/internal/store"
)

func TestBuildListQuery(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	intPtr := func(n int) *int { return &n }
	boolPtr := func(b bool) *bool { return &b }

	const selectPrefix = "SELECT id, description, completed, user_id, created_at, updated_at" +
		" FROM tasks WHERE user_id = $1"

	tests := []struct {
		name     string
		opts     store.TaskListOptions
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no options uses stable default order",
			opts:     store.TaskListOptions{},
			wantSQL:  selectPrefix + " ORDER BY created_at ASC",
			wantArgs: []any{ownerID},
		},
		{
			name:     "completed filter binds a placeholder",
			opts:     store.TaskListOptions{Completed: boolPtr(true)},
			wantSQL:  selectPrefix + " AND completed = $2 ORDER BY created_at ASC",
			wantArgs: []any{ownerID, true},
		},
		{
			name: "descending sort",
			opts: store.TaskListOptions{
				Sort: []store.TaskSort{{Field: store.SortByCreatedAt, Descending: true}},
			},
			wantSQL:  selectPrefix + " ORDER BY created_at DESC",
			wantArgs: []any{ownerID},
		},
		{
			name: "multiple sort criteria keep precedence order",
			opts: store.TaskListOptions{
				Sort: []store.TaskSort{
					{Field: store.SortByCompleted, Descending: true},
					{Field: store.SortByDescription},
				},
			},
			wantSQL:  selectPrefix + " ORDER BY completed DESC, description ASC",
			wantArgs: []any{ownerID},
		},
		{
			name:     "limit and skip bind placeholders",
			opts:     store.TaskListOptions{Limit: intPtr(5), Skip: intPtr(10)},
			wantSQL:  selectPrefix + " ORDER BY created_at ASC LIMIT $2 OFFSET $3",
			wantArgs: []any{ownerID, 5, 10},
		},
		{
			name: "everything together",
			opts: store.TaskListOptions{
				Completed: boolPtr(false),
				Sort:      []store.TaskSort{{Field: store.SortByUpdatedAt, Descending: true}},
				Limit:     intPtr(2),
				Skip:      intPtr(4),
			},
			wantSQL: selectPrefix +
				" AND completed = $2 ORDER BY updated_at DESC LIMIT $3 OFFSET $4",
			wantArgs: []any{ownerID, false, 2, 4},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotSQL, gotArgs := buildListQuery(ownerID, tc.opts)
			assert.Equal(t, tc.wantSQL, gotSQL)
			assert.Equal(t, tc.wantArgs, gotArgs)
		})
	}
}
