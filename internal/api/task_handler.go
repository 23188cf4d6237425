package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ruyichen/task-api/internal/api/shared"
	"github.com/ruyichen/task-api/internal/domain"
	"github.com/ruyichen/task-api/internal/store"
)

// TaskHandler handles the ownership-scoped task CRUD surface. Every
// operation passes the authenticated user's ID into the store, which applies
// it as an unconditional filter.
type TaskHandler struct {
	tasks     store.TaskStore
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks store.TaskStore) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		validator: validator.New(),
	}
}

// Create handles POST /tasks. The owner is stamped from the authenticated
// identity; the request shape has no owner field to override it with.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation error")
		return
	}

	task, err := domain.NewTask(user.ID, req.Description, req.Completed)
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err), "")
		return
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /tasks with the completed, sortBy, limit, and skip query
// parameters. Unusable parameter values are ignored, not rejected.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	opts := store.ParseTaskListOptions(r.URL.Query())

	tasks, err := h.tasks.List(r.Context(), user.ID, opts)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}. A task owned by someone else produces the
// same 404 as a task that does not exist.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := pathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, store.ErrTaskNotFound, "")
		return
	}

	task, err := h.tasks.GetOne(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PATCH /tasks/{id}. Only description and completed may
// appear in the body; any other key — notably owner_id — is a hard 400.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := pathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, store.ErrTaskNotFound, "")
		return
	}

	fields, err := decodeAllowedFields(r, "description", "completed")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.GetOne(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if raw, present := fields["description"]; present {
		if err := decodeField(raw, "description", &task.Description); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}
	if raw, present := fields["completed"]; present {
		if err := decodeField(raw, "completed", &task.Completed); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	if err := task.Validate(); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err), "")
		return
	}

	if err := h.tasks.Update(r.Context(), user.ID, task); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}, returning the deleted task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := pathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, store.ErrTaskNotFound, "")
		return
	}

	task, err := h.tasks.Delete(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}
