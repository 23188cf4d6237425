package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ruyichen/task-api/internal/api/shared"
	"github.com/ruyichen/task-api/internal/service"
)

// maxAvatarBytes caps avatar uploads at 1 MB.
const maxAvatarBytes = 1 << 20

// UserHandler handles the authenticated user's profile and avatar endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /users/me, returning the caller's serialized profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateMe handles PATCH /users/me. Only name, email, password, and age may
// appear in the body; any other key fails the whole request with a 400.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	fields, err := decodeAllowedFields(r, "name", "email", "password", "age")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var upd service.UserUpdate
	if raw, present := fields["name"]; present {
		upd.Name = new(string)
		if err := decodeField(raw, "name", upd.Name); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}
	if raw, present := fields["email"]; present {
		upd.Email = new(string)
		if err := decodeField(raw, "email", upd.Email); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}
	if raw, present := fields["password"]; present {
		upd.Password = new(string)
		if err := decodeField(raw, "password", upd.Password); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}
	if raw, present := fields["age"]; present {
		upd.Age = new(int)
		if err := decodeField(raw, "age", upd.Age); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	updated, err := h.userService.Update(r.Context(), user, upd)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(updated))
}

// DeleteMe handles DELETE /users/me: cascade-deletes the caller's tasks and
// sessions, removes the account, and returns the final profile view.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UploadAvatar handles POST /users/me/avatar. The multipart field "avatar"
// must be a .jpg/.jpeg/.png file of at most 1 MB; the stored form is whatever
// the normalizer produces, not the original upload.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)

	file, header, err := r.FormFile("avatar")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer func() { _ = file.Close() }()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".jpg", ".jpeg", ".png":
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "please upload an image")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "failed to read avatar upload")
		return
	}

	if err := h.userService.SetAvatar(r.Context(), user, data); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.userService.ClearAvatar(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
}

// GetAvatar handles GET /users/{id}/avatar. This is the one public user
// endpoint; a missing user and a missing avatar are both a plain 404.
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		// Malformed IDs read as absence, same as an unknown one.
		HandleAPIError(w, r, service.ErrAvatarNotFound, "")
		return
	}

	avatar, err := h.userService.GetAvatar(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(avatar); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to write avatar")
	}
}
