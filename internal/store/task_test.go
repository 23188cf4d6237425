package store

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskListOptions(t *testing.T) {
	t.Parallel()

	intPtr := func(n int) *int { return &n }
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name  string
		query string
		want  TaskListOptions
	}{
		{
			name:  "empty query",
			query: "",
			want:  TaskListOptions{},
		},
		{
			name:  "completed true",
			query: "completed=true",
			want:  TaskListOptions{Completed: boolPtr(true)},
		},
		{
			name:  "completed false",
			query: "completed=false",
			want:  TaskListOptions{Completed: boolPtr(false)},
		},
		{
			name: "any other completed value filters for false",
			// Only the literal "true" selects completed tasks.
			query: "completed=yes",
			want:  TaskListOptions{Completed: boolPtr(false)},
		},
		{
			name:  "sort with colon separator",
			query: "sortBy=createdAt:desc",
			want: TaskListOptions{
				Sort: []TaskSort{{Field: SortByCreatedAt, Descending: true}},
			},
		},
		{
			name:  "sort with underscore separator",
			query: "sortBy=createdAt_desc",
			want: TaskListOptions{
				Sort: []TaskSort{{Field: SortByCreatedAt, Descending: true}},
			},
		},
		{
			name:  "sort without direction is ascending",
			query: "sortBy=description",
			want: TaskListOptions{
				Sort: []TaskSort{{Field: SortByDescription, Descending: false}},
			},
		},
		{
			name:  "unknown sort direction is ascending",
			query: "sortBy=completed:sideways",
			want: TaskListOptions{
				Sort: []TaskSort{{Field: SortByCompleted, Descending: false}},
			},
		},
		{
			name:  "unknown sort field is dropped",
			query: "sortBy=owner:desc",
			want:  TaskListOptions{},
		},
		{
			name:  "multiple sort criteria keep order",
			query: "sortBy=completed:desc&sortBy=createdAt",
			want: TaskListOptions{
				Sort: []TaskSort{
					{Field: SortByCompleted, Descending: true},
					{Field: SortByCreatedAt, Descending: false},
				},
			},
		},
		{
			name:  "limit and skip",
			query: "limit=10&skip=20",
			want:  TaskListOptions{Limit: intPtr(10), Skip: intPtr(20)},
		},
		{
			name:  "malformed limit is ignored",
			query: "limit=abc&skip=5",
			want:  TaskListOptions{Skip: intPtr(5)},
		},
		{
			name:  "negative skip is ignored",
			query: "limit=3&skip=-5",
			want:  TaskListOptions{Limit: intPtr(3)},
		},
		{
			name:  "zero limit is respected",
			query: "limit=0",
			want:  TaskListOptions{Limit: intPtr(0)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			values, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			got := ParseTaskListOptions(values)

			if tc.want.Completed == nil {
				assert.Nil(t, got.Completed)
			} else {
				require.NotNil(t, got.Completed)
				assert.Equal(t, *tc.want.Completed, *got.Completed)
			}
			assert.Equal(t, tc.want.Sort, got.Sort)
			if tc.want.Limit == nil {
				assert.Nil(t, got.Limit)
			} else {
				require.NotNil(t, got.Limit)
				assert.Equal(t, *tc.want.Limit, *got.Limit)
			}
			if tc.want.Skip == nil {
				assert.Nil(t, got.Skip)
			} else {
				require.NotNil(t, got.Skip)
				assert.Equal(t, *tc.want.Skip, *got.Skip)
			}
		})
	}
}
