package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ruyichen/task-api/internal/api/middleware"
	"github.com/ruyichen/task-api/internal/imaging"
	"github.com/ruyichen/task-api/internal/mocks"
	"github.com/ruyichen/task-api/internal/service"
	"github.com/ruyichen/task-api/internal/service/auth"
)

// testEnv runs the handlers behind the same routes and middleware as the
// production router, over in-memory stores.
type testEnv struct {
	router   chi.Router
	users    *mocks.MockUserStore
	tasks    *mocks.MockTaskStore
	sessions *mocks.MockSessionStore
	mailer   *mocks.MockMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    mocks.NewMockUserStore(),
		tasks:    mocks.NewMockTaskStore(),
		sessions: mocks.NewMockSessionStore(),
		mailer:   &mocks.MockMailer{},
	}

	jwtService := mocks.NewMockJWTService()
	userService := service.NewUserService(
		env.users,
		env.tasks,
		env.sessions,
		jwtService,
		auth.NewBcryptHasher(bcrypt.MinCost),
		env.mailer,
		imaging.NewPNGNormalizer(4),
		nil,
	)

	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	taskHandler := NewTaskHandler(env.tasks)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, env.sessions, env.users)

	r := chi.NewRouter()
	r.Post("/users", authHandler.Signup)
	r.Post("/users/login", authHandler.Login)
	r.Get("/users/{id}/avatar", userHandler.GetAvatar)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/users/logout", authHandler.Logout)
		r.Post("/users/logoutAll", authHandler.LogoutAll)

		r.Get("/users/me", userHandler.Me)
		r.Patch("/users/me", userHandler.UpdateMe)
		r.Delete("/users/me", userHandler.DeleteMe)
		r.Post("/users/me/avatar", userHandler.UploadAvatar)
		r.Delete("/users/me/avatar", userHandler.DeleteAvatar)

		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks", taskHandler.List)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Patch("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	env.router = r
	return env
}

// do performs one request against the test router. A non-empty token is sent
// as a bearer Authorization header; a non-nil body is JSON-encoded.
func (env *testEnv) do(
	t *testing.T,
	method, path, token string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// signup registers an account through the API and returns the auth response.
func (env *testEnv) signup(t *testing.T, name, email string) AuthResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "qwe2895509",
		"age":      30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

// decodeBody unmarshals a recorded JSON response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// multipartAvatar builds a multipart body with one file field named "avatar".
func multipartAvatar(t *testing.T, filename string, data []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}
