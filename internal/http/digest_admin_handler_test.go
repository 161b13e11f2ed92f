package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"message-digest-admin/internal/domain"
	"message-digest-admin/internal/form"
	"message-digest-admin/internal/repository"
	"message-digest-admin/internal/service"
	"message-digest-admin/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConfigStorage struct {
	*repository.MemoryConfigStorage
	readErr  error
	writeErr error
}

func (s *fakeConfigStorage) Read(ctx context.Context, name string) (map[string]any, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.MemoryConfigStorage.Read(ctx, name)
}

func (s *fakeConfigStorage) Write(ctx context.Context, name string, data map[string]any) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.MemoryConfigStorage.Write(ctx, name, data)
}

type fakeStaging struct {
	*repository.MemoryStagingRepository
	err error
}

func (s *fakeStaging) ForEachStaged(ctx context.Context, status string, fn func(domain.StagedItem) error) error {
	if s.err != nil {
		return s.err
	}
	return s.MemoryStagingRepository.ForEachStaged(ctx, status, fn)
}

func (s *fakeStaging) ListStaged(ctx context.Context, status string) ([]domain.StagedItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.MemoryStagingRepository.ListStaged(ctx, status)
}

type testEnv struct {
	router  *Router
	staging *fakeStaging
	storage *fakeConfigStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	staging := &fakeStaging{MemoryStagingRepository: repository.NewMemoryStagingRepository()}
	storage := &fakeConfigStorage{MemoryConfigStorage: repository.NewMemoryConfigStorage()}
	tokens, err := form.NewTokens("test-secret")
	require.NoError(t, err)

	f := service.NewStagedContentForm(service.StagedContentFormOptions{
		Staging:  staging,
		Settings: settings.NewFactory(storage),
		Links:    form.NewPathLinkBuilder(""),
		Action:   DigestAdminPath,
		Logger:   logger,
	})
	router := NewRouter(logger)
	router.RegisterDigestAdminRoutes(NewDigestAdminHandler(f, tokens, nil, logger))
	return &testEnv{router: router, staging: staging, storage: storage}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("X-User-Role", "SystemAdmin")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

var (
	buildIDRe = regexp.MustCompile(`name="form_build_id" value="([^"]+)"`)
	tokenRe   = regexp.MustCompile(`name="form_token" value="([^"]+)"`)
	rowRe     = regexp.MustCompile(`<tr><td>`)
)

func (e *testEnv) getForm(t *testing.T) (body, buildID, token string) {
	t.Helper()
	w := e.do(httptest.NewRequest(http.MethodGet, DigestAdminPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	m := buildIDRe.FindStringSubmatch(body)
	require.Len(t, m, 2)
	n := tokenRe.FindStringSubmatch(body)
	require.Len(t, n, 2)
	return body, m[1], n[1]
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, DigestAdminPath, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestDigestAdmin_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, DigestAdminPath, nil)
	req.Header.Set("X-User-Role", "Caregiver")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DigestAdminPath, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDigestAdmin_EmptyStagingShowsPlaceholder(t *testing.T) {
	env := newTestEnv(t)

	body, _, _ := env.getForm(t)

	assert.Contains(t, body, "<caption>Staged Content</caption>")
	assert.Contains(t, body, "<th>Title</th>")
	assert.Len(t, rowRe.FindAllString(body, -1), 1)
	assert.Contains(t, body, "<span>No old content</span>")
}

func TestDigestAdmin_RowsAreLinksInOrder(t *testing.T) {
	env := newTestEnv(t)
	env.staging.Stage(domain.StagedStatusSent,
		domain.StagedItem{NodeID: 7, Title: "Q1"},
		domain.StagedItem{NodeID: 9, Title: "Q2"},
	)

	body, _, _ := env.getForm(t)

	assert.Len(t, rowRe.FindAllString(body, -1), 2)
	first := strings.Index(body, `<a href="/node/7">Q1</a>`)
	second := strings.Index(body, `<a href="/node/9">Q2</a>`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.NotContains(t, body, "No old content")
}

func TestDigestAdmin_EscapesTitles(t *testing.T) {
	env := newTestEnv(t)
	env.staging.Stage(domain.StagedStatusSent, domain.StagedItem{NodeID: 7, Title: `<b>bold</b> & "q"`})

	body, _, _ := env.getForm(t)

	assert.NotContains(t, body, "<b>bold</b>")
	assert.Contains(t, body, "&lt;b&gt;bold&lt;/b&gt; &amp; &#34;q&#34;")
}

func TestDigestAdmin_QueryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.staging.err = errors.New("db down")

	w := env.do(httptest.NewRequest(http.MethodGet, DigestAdminPath, nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "No old content")
	assert.NotContains(t, w.Body.String(), "<table>")
}

func TestDigestAdmin_SubmitPersistsAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	_, buildID, token := env.getForm(t)

	w := env.do(postForm(url.Values{
		"form_id":         {service.StagedContentFormID},
		"form_build_id":   {buildID},
		"form_token":      {token},
		"welcome_message": {"Welcome to this week's digest"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, DigestAdminPath+"?saved=1", w.Header().Get("Location"))

	w = env.do(httptest.NewRequest(http.MethodGet, DigestAdminPath+"?saved=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The configuration options have been saved.")
	assert.Contains(t, w.Body.String(), "Welcome to this week&#39;s digest</textarea>")
}

func TestDigestAdmin_SubmitPersistenceFailure(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.storage.MemoryConfigStorage.Write(context.Background(), domain.AdminSettingsName,
		map[string]any{domain.SettingWelcomeMessage: "previous"}))
	_, buildID, token := env.getForm(t)
	env.storage.writeErr = errors.New("config store unreachable")

	w := env.do(postForm(url.Values{
		"form_id":         {service.StagedContentFormID},
		"form_build_id":   {buildID},
		"form_token":      {token},
		"welcome_message": {"unsaved edit"},
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "could not be saved")
	assert.Contains(t, body, "unsaved edit</textarea>")

	stored, err := env.storage.Read(context.Background(), domain.AdminSettingsName)
	require.NoError(t, err)
	assert.Equal(t, "previous", stored[domain.SettingWelcomeMessage])
}

func TestDigestAdmin_SubmitWhileConfigStoreDown(t *testing.T) {
	env := newTestEnv(t)
	env.staging.Stage(domain.StagedStatusSent, domain.StagedItem{NodeID: 5, Title: "Still listed"})
	env.storage.readErr = errors.New("config store unreachable")

	body, buildID, token := env.getForm(t)
	assert.Contains(t, body, "The current configuration could not be loaded.")

	env.storage.writeErr = errors.New("config store unreachable")
	w := env.do(postForm(url.Values{
		"form_id":         {service.StagedContentFormID},
		"form_build_id":   {buildID},
		"form_token":      {token},
		"welcome_message": {"unsaved edit"},
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body = w.Body.String()
	assert.Contains(t, body, "could not be saved")
	assert.Contains(t, body, "unsaved edit</textarea>")
	assert.Contains(t, body, "Still listed")
}

func TestDigestAdmin_SubmitInvalidToken(t *testing.T) {
	env := newTestEnv(t)
	_, buildID, _ := env.getForm(t)

	w := env.do(postForm(url.Values{
		"form_id":         {service.StagedContentFormID},
		"form_build_id":   {buildID},
		"form_token":      {"forged"},
		"welcome_message": {"evil"},
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "The form has become outdated.")
	_, err := env.storage.Read(context.Background(), domain.AdminSettingsName)
	assert.ErrorIs(t, err, repository.ErrConfigNotFound)
}

func TestDigestAdmin_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(httptest.NewRequest(http.MethodDelete, DigestAdminPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestDigestAdmin_Export(t *testing.T) {
	env := newTestEnv(t)
	env.staging.Stage(domain.StagedStatusSent, domain.StagedItem{NodeID: 7, Title: "Q1"})

	w := env.do(httptest.NewRequest(http.MethodGet, DigestAdminPath+"/staged.xlsx", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))

	env.staging.err = errors.New("db down")
	w = env.do(httptest.NewRequest(http.MethodGet, DigestAdminPath+"/staged.xlsx", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
