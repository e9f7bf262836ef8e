package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/config"
	"github.com/eduforge/lms/internal/lifecycle"
	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/service"
	"github.com/eduforge/lms/internal/storage"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Auth *service.AuthService

	A *AuthHandler
	C *CourseHandler
	Q *QuizHandler
	V *VideoHandler
	U *UploadHandler

	PDFs       *storage.Store
	VideoFiles *storage.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	pdfs, err := storage.New(t.TempDir(), "/pdfs")
	require.NoError(t, err)
	videoFiles, err := storage.New(t.TempDir(), "/video-files")
	require.NoError(t, err)

	auth := &service.AuthService{DB: db, JWTSecret: []byte("test-jwt-secret"), TokenTTL: time.Hour}

	courses := &lifecycle.Manager[models.Course]{
		DB:      db,
		Files:   pdfs,
		FileRef: func(c *models.Course) string { return c.PDFURL },
	}
	videos := &lifecycle.Manager[models.Video]{
		DB:        db,
		Files:     videoFiles,
		FileRef:   func(v *models.Video) string { return v.VideoURL },
		ListOrder: "created_at DESC",
	}

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Auth: auth,
		A:    &AuthHandler{Auth: auth},
		C:    &CourseHandler{Courses: courses},
		Q: &QuizHandler{
			Quizzes:   &lifecycle.Manager[models.Quiz]{DB: db},
			Questions: &lifecycle.Manager[models.Question]{DB: db},
			Results:   &lifecycle.Manager[models.QuizResult]{DB: db},
		},
		V:          &VideoHandler{Videos: videos, Files: videoFiles},
		U:          &UploadHandler{PDFs: pdfs},
		PDFs:       pdfs,
		VideoFiles: videoFiles,
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doFormRequest(method, path string, form map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	values := make([]string, 0, len(form))
	for k, v := range form {
		values = append(values, k+"="+v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(strings.Join(values, "&")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doMultipartRequest(method, path string, fields map[string]string, fileField, filename string, file []byte) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(env.T, err)
		_, err = fw.Write(file)
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) createUser(name, email, password string) *models.User {
	env.T.Helper()
	user, err := env.Auth.Register(context.Background(), name, email, password)
	require.NoError(env.T, err)
	return user
}

func (env *testEnv) storedPath(s *storage.Store, url string) string {
	return filepath.Join(s.Root, strings.TrimPrefix(url, s.Public+"/"))
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Code
}
