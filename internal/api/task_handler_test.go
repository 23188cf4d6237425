package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruyichen/task-api/internal/domain"
)

// createTask creates a task through the API and returns the response body.
func createTask(t *testing.T, env *testEnv, token, description string, completed bool) domain.Task {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/tasks", token, map[string]any{
		"description": description,
		"completed":   completed,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task domain.Task
	decodeBody(t, rec, &task)
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("owner is stamped from the session", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")

		task := createTask(t, env, signedUp.Token, "buy milk", false)
		assert.Equal(t, "buy milk", task.Description)
		assert.Equal(t, signedUp.User.ID, task.OwnerID)
		assert.False(t, task.Completed)
	})

	t.Run("missing description", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")

		rec := env.do(t, http.MethodPost, "/tasks", signedUp.Token, map[string]any{
			"completed": true,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, env.tasks.Tasks)
	})

	t.Run("blank description", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")

		rec := env.do(t, http.MethodPost, "/tasks", signedUp.Token, map[string]any{
			"description": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/tasks", "", map[string]any{
			"description": "buy milk",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	t.Run("owner sees their task", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		task := createTask(t, env, signedUp.Token, "buy milk", false)

		rec := env.do(t, http.MethodGet, "/tasks/"+task.ID.String(), signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Task
		decodeBody(t, rec, &got)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("someone else's task is a 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		owner := env.signup(t, "Owner", "owner@example.com")
		intruder := env.signup(t, "Intruder", "intruder@example.com")
		task := createTask(t, env, owner.Token, "secret errand", false)

		rec := env.do(t, http.MethodGet, "/tasks/"+task.ID.String(), intruder.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code,
			"existence must not be revealed to non-owners")
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")

		rec := env.do(t, http.MethodGet,
			"/tasks/7b4ad9f5-3f3c-4dd6-9930-6a8b91da83d3", signedUp.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is a 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")

		rec := env.do(t, http.MethodGet, "/tasks/not-a-uuid", signedUp.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, env *testEnv, token string) {
		t.Helper()
		createTask(t, env, token, "first", false)
		createTask(t, env, token, "second", true)
		createTask(t, env, token, "third", true)
	}

	t.Run("lists only the caller's tasks", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		other := env.signup(t, "Other", "other@example.com")
		seed(t, env, signedUp.Token)
		createTask(t, env, other.Token, "not yours", false)

		rec := env.do(t, http.MethodGet, "/tasks", signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []domain.Task
		decodeBody(t, rec, &tasks)
		require.Len(t, tasks, 3)
		for _, task := range tasks {
			assert.Equal(t, signedUp.User.ID, task.OwnerID)
		}
	})

	t.Run("completed filter", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		seed(t, env, signedUp.Token)

		rec := env.do(t, http.MethodGet, "/tasks?completed=true", signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []domain.Task
		decodeBody(t, rec, &tasks)
		require.Len(t, tasks, 2)
		for _, task := range tasks {
			assert.True(t, task.Completed)
		}
	})

	t.Run("sort and window", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		seed(t, env, signedUp.Token)

		rec := env.do(t, http.MethodGet,
			"/tasks?sortBy=description:desc&limit=2", signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []domain.Task
		decodeBody(t, rec, &tasks)
		require.Len(t, tasks, 2)
		assert.Equal(t, "third", tasks[0].Description)
		assert.Equal(t, "second", tasks[1].Description)
	})

	t.Run("unusable pagination values are ignored", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		seed(t, env, signedUp.Token)

		rec := env.do(t, http.MethodGet, "/tasks?limit=abc&skip=-2", signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var tasks []domain.Task
		decodeBody(t, rec, &tasks)
		assert.Len(t, tasks, 3)
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")

		rec := env.do(t, http.MethodGet, "/tasks", signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	t.Run("updates allowed fields", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		task := createTask(t, env, signedUp.Token, "buy milk", false)

		rec := env.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), signedUp.Token,
			map[string]any{"completed": true})
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Task
		decodeBody(t, rec, &got)
		assert.True(t, got.Completed)
		assert.Equal(t, "buy milk", got.Description)
	})

	t.Run("disallowed field fails whole request", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		task := createTask(t, env, signedUp.Token, "buy milk", false)

		rec := env.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), signedUp.Token,
			map[string]any{"completed": true, "owner_id": "attacker"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		stored := env.tasks.Tasks[task.ID]
		require.NotNil(t, stored)
		assert.False(t, stored.Completed, "a rejected update must change nothing")
		assert.Equal(t, signedUp.User.ID, stored.OwnerID)
	})

	t.Run("blank description is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		task := createTask(t, env, signedUp.Token, "buy milk", false)

		rec := env.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), signedUp.Token,
			map[string]any{"description": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong field type is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		task := createTask(t, env, signedUp.Token, "buy milk", false)

		rec := env.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), signedUp.Token,
			map[string]any{"completed": "yes"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("someone else's task is a 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		owner := env.signup(t, "Owner", "owner@example.com")
		intruder := env.signup(t, "Intruder", "intruder@example.com")
		task := createTask(t, env, owner.Token, "buy milk", false)

		rec := env.do(t, http.MethodPatch, "/tasks/"+task.ID.String(), intruder.Token,
			map[string]any{"completed": true})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		stored := env.tasks.Tasks[task.ID]
		require.NotNil(t, stored)
		assert.False(t, stored.Completed)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("returns the deleted task", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		signedUp := env.signup(t, "LZW", "a@example.com")
		task := createTask(t, env, signedUp.Token, "buy milk", false)

		rec := env.do(t, http.MethodDelete, "/tasks/"+task.ID.String(), signedUp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Task
		decodeBody(t, rec, &got)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "buy milk", got.Description)

		rec = env.do(t, http.MethodDelete, "/tasks/"+task.ID.String(), signedUp.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "a second delete finds nothing")
	})

	t.Run("someone else's task is a 404", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		owner := env.signup(t, "Owner", "owner@example.com")
		intruder := env.signup(t, "Intruder", "intruder@example.com")
		task := createTask(t, env, owner.Token, "buy milk", false)

		rec := env.do(t, http.MethodDelete, "/tasks/"+task.ID.String(), intruder.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		assert.NotNil(t, env.tasks.Tasks[task.ID], "the task must survive")
	})
}
