package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibetank/vibetank/internal/catalog"
	"github.com/vibetank/vibetank/internal/config"
	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/llm"
	"github.com/vibetank/vibetank/internal/server/middleware"
	"github.com/vibetank/vibetank/internal/server/ratelimit"
	"github.com/vibetank/vibetank/internal/storage"
	"github.com/vibetank/vibetank/internal/storage/storagetest"
	"github.com/vibetank/vibetank/internal/types"
)

const testAdminPassword = "hunter2-tank"

var fixedNow = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	server *Server
	remote *storagetest.MemoryRemote
	local  *storagetest.MemoryLocal
	store  *content.Store
	chat   *fakeChat
}

type envOptions struct {
	adminPassword    string
	chatAPIKey       string
	remoteConfigured bool
	rateLimit        *ratelimit.Config
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	remote := storagetest.NewMemoryRemote()
	local := storagetest.NewMemoryLocal()
	adapter := storage.NewAdapter(remote, local, opts.remoteConfigured, nil)
	store := content.New(adapter, content.Options{Now: func() time.Time { return fixedNow }})

	passphrase := config.NewPassphrase(opts.adminPassword, local, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})

	rateConfig := opts.rateLimit
	if rateConfig == nil {
		rateConfig = &ratelimit.Config{Enabled: false}
	}

	chat := &fakeChat{}
	srv, err := New(Config{
		CORSOrigin: "https://vibetank.example",
		ChatAPIKey: opts.chatAPIKey,
		Store:      store,
		Passphrase: passphrase,
		JWT:        &config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 1},
		RateLimit:  rateConfig,
		NewChatClient: func(_ context.Context, cfg *llm.Config, apiKey string) (llm.ChatClient, error) {
			chat.mu.Lock()
			defer chat.mu.Unlock()
			chat.apiKey = apiKey
			chat.model = cfg.Model
			return chat, chat.createErr
		},
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, remote: remote, local: local, store: store, chat: chat}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/login", `{"password":"`+testAdminPassword+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func maxCatalogProjectID() int {
	highest := 0
	for _, p := range catalog.Projects() {
		highest = max(highest, p.ID)
	}
	return highest
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	w := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestContentEndpoint_ReturnsSnapshot(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	w := env.do(t, http.MethodGet, "/api/content", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[types.StoredDocument](t, w)
	if diff := cmp.Diff(env.store.Snapshot(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusEndpoint(t *testing.T) {
	env := newTestEnv(t, envOptions{remoteConfigured: true})

	w := env.do(t, http.MethodGet, "/api/status", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["isLoading"], "no load has run yet")

	env.store.Load(context.Background())
	w = env.do(t, http.MethodGet, "/api/status", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["isLoading"])
	assert.Equal(t, false, resp["isSaving"])
	assert.Nil(t, resp["lastSavedAt"])
	assert.Equal(t, true, resp["remoteConfigured"])
	assert.EqualValues(t, len(catalog.Projects()), resp["projects"])
	assert.EqualValues(t, len(catalog.Goals()), resp["goals"])
}

func TestSiteEndpoint_RendersProfile(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	w := env.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, catalog.Profile().Name, strings.TrimSpace(doc.Find(".profile-name").First().Text()))
	assert.Equal(t, len(catalog.Projects()), doc.Find("section.project").Length())

	// only the root path renders the site
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/nope", "", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.do(t, http.MethodGet, "/health", "", "")

	w := env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vibetank_http_requests_total")
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	w := env.do(t, http.MethodOptions, "/api/admin/save", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://vibetank.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})

	t.Run("wrong passphrase", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/login", `{"password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid passphrase", decode[map[string]string](t, w)["error"])
	})

	t.Run("missing field", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/login", `{}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/login", `{`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("correct passphrase", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/login", `{"password":"`+testAdminPassword+`"}`, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.LoginResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
	})
}

func TestLogin_DisabledWithoutPassphrase(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	w := env.do(t, http.MethodPost, "/api/admin/login", `{"password":"anything"}`, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})

	routes := []struct{ method, path string }{
		{http.MethodPut, "/api/admin/password"},
		{http.MethodPut, "/api/admin/profile"},
		{http.MethodPut, "/api/admin/projects"},
		{http.MethodPost, "/api/admin/projects"},
		{http.MethodPut, "/api/admin/projects/1"},
		{http.MethodDelete, "/api/admin/projects/1"},
		{http.MethodPut, "/api/admin/goals"},
		{http.MethodPut, "/api/admin/goals/1"},
		{http.MethodPost, "/api/admin/save"},
		{http.MethodPost, "/api/admin/load"},
		{http.MethodGet, "/api/admin/export"},
		{http.MethodPost, "/api/admin/import"},
		{http.MethodPost, "/api/admin/reset"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, env.do(t, rt.method, rt.path, "", "").Code)
			assert.Equal(t, http.StatusUnauthorized, env.do(t, rt.method, rt.path, "", "forged.token.value").Code)
		})
	}

	// nothing was mutated
	assert.Len(t, env.store.Projects(), len(catalog.Projects()))
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/admin/password", `{"current_password":"wrong","new_password":"a-new-passphrase"}`, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/password", `{"current_password":"`+testAdminPassword+`","new_password":"short"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/password", `{"current_password":"`+testAdminPassword+`","new_password":"a-new-passphrase"}`, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusUnauthorized,
		env.do(t, http.MethodPost, "/api/admin/login", `{"password":"`+testAdminPassword+`"}`, "").Code)
	assert.Equal(t, http.StatusOK,
		env.do(t, http.MethodPost, "/api/admin/login", `{"password":"a-new-passphrase"}`, "").Code)

	_, stored := env.local.Value(config.PassphraseSlotKey)
	assert.True(t, stored)
}

func TestUpdatePassword_TooLongForBcrypt(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	long := strings.Repeat("p", config.MaxPassphraseBytes+8)
	w := env.do(t, http.MethodPut, "/api/admin/password", `{"current_password":"`+testAdminPassword+`","new_password":"`+long+`"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "at most 72")

	_, stored := env.local.Value(config.PassphraseSlotKey)
	assert.False(t, stored)

	// the default passphrase still works
	assert.Equal(t, http.StatusOK,
		env.do(t, http.MethodPost, "/api/admin/login", `{"password":"`+testAdminPassword+`"}`, "").Code)
}

func TestSetProfile(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/admin/profile", `{"name":"","role":"x"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/profile",
		`{"name":"TANK II","role":"Lead","year":2031,"tagline":"Roll on","footer":"fin"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	want := types.ProfileInfo{Name: "TANK II", Role: "Lead", Year: 2031, Tagline: "Roll on", Footer: "fin"}
	assert.Equal(t, want, decode[types.ProfileInfo](t, w))
	assert.Equal(t, want, env.store.ProfileInfo())
}

func TestProjects_AddUpdateDelete(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/admin/projects", "", token)
	require.Equal(t, http.StatusCreated, w.Code)
	added := decode[types.Project](t, w)
	assert.Equal(t, maxCatalogProjectID()+1, added.ID)
	assert.Equal(t, "New Project", added.Name)
	assert.Equal(t, content.NewProjectColor, added.Color)

	update := `{"name":"Renamed","tags":["Go"],"color":"#123abc","startMonth":2,"endMonth":5}`
	w = env.do(t, http.MethodPut, "/api/admin/projects/"+strconv.Itoa(added.ID), update, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[types.Project](t, w)
	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)

	t.Run("backwards range", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/admin/projects/"+strconv.Itoa(added.ID),
			`{"name":"X","startMonth":7,"endMonth":3}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[map[string]string](t, w)["error"], "after endMonth")
	})

	t.Run("month out of range", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/admin/projects/"+strconv.Itoa(added.ID),
			`{"name":"X","startMonth":0,"endMonth":12}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/admin/projects/999", `{"name":"X"}`, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/admin/projects/abc", "", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = env.do(t, http.MethodDelete, "/api/admin/projects/"+strconv.Itoa(added.ID), "", token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, env.store.Projects(), len(catalog.Projects()))

	w = env.do(t, http.MethodDelete, "/api/admin/projects/"+strconv.Itoa(added.ID), "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetProjects(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/admin/projects",
		`[{"id":3,"name":"A","tags":[]},{"id":3,"name":"B","tags":[]}]`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "duplicate")

	w = env.do(t, http.MethodPut, "/api/admin/projects",
		`[{"id":7,"name":"Only","tags":["x"],"intermittentMonths":[9,1]}]`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	projects := env.store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, 7, projects[0].ID)
	assert.Equal(t, []int{9, 1}, projects[0].IntermittentMonths)
}

func TestGoals(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/admin/goals/2", `{"title":"Ship it","features":["a"]}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ship it", decode[types.Goal](t, w).Title)

	w = env.do(t, http.MethodPut, "/api/admin/goals/2", `{"title":""}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/goals", `[{"id":1,"title":"One","features":[]}]`, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.store.Goals2026(), 1)

	w = env.do(t, http.MethodPut, "/api/admin/goals/3", `{"title":"Gone"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveLoadReset(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword, remoteConfigured: true})
	token := env.login(t)

	env.do(t, http.MethodPut, "/api/admin/profile", `{"name":"Saved Name"}`, token)

	w := env.do(t, http.MethodPost, "/api/admin/save", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode[content.SaveReport](t, w)
	assert.True(t, report.Local)
	assert.True(t, report.Remote)
	require.NotNil(t, report.SavedAt)
	assert.True(t, report.SavedAt.Equal(fixedNow))

	row, ok := env.remote.Row(storage.RemoteDocumentID)
	require.True(t, ok)
	assert.Contains(t, row, "Saved Name")

	env.store.SetProfileInfo(types.ProfileInfo{Name: "Unsaved"})
	w = env.do(t, http.MethodPost, "/api/admin/load", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content.SourceRemote, decode[content.LoadReport](t, w).Source)
	assert.Equal(t, "Saved Name", env.store.ProfileInfo().Name)

	w = env.do(t, http.MethodPost, "/api/admin/reset", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode[content.ResetReport](t, w)
	assert.True(t, reset.LocalCleared)
	assert.True(t, reset.RemoteCleared)

	_, ok = env.remote.Row(storage.RemoteDocumentID)
	assert.False(t, ok)
}

func TestSave_NoBackendAccepts(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)
	env.local.SetErr = errors.New("disk full")

	w := env.do(t, http.MethodPost, "/api/admin/save", "", token)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp struct {
		Error  string             `json:"error"`
		Report content.SaveReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "save failed")
	assert.False(t, resp.Report.Local)
	assert.Nil(t, env.store.Status().LastSavedAt)
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t, envOptions{adminPassword: testAdminPassword})
	token := env.login(t)

	w := env.do(t, http.MethodGet, "/api/admin/export", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="vibetank-backup-2026-02-14.json"`, w.Header().Get("Content-Disposition"))
	exported := w.Body.String()

	var envelope types.ExportDocument
	require.NoError(t, json.Unmarshal([]byte(exported), &envelope))
	assert.Equal(t, types.DocumentVersion, envelope.Version)
	assert.Equal(t, "2026-02-14T09:30:00Z", envelope.ExportedAt)

	t.Run("invalid file", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/admin/import", `{"projects":"nope"}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid backup file", decode[map[string]string](t, w)["error"])
	})

	env.store.SetProjects(nil)
	w = env.do(t, http.MethodPost, "/api/admin/import", exported, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, env.store.Projects(), len(catalog.Projects()))
}

func TestRateLimit_Chat(t *testing.T) {
	env := newTestEnv(t, envOptions{
		chatAPIKey: "key",
		rateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/api/chat", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		},
	})
	env.chat.chunks = []string{"hi"}

	body := `{"messages":[{"role":"user","content":"yo"}]}`
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/chat", body, "").Code)

	w := env.do(t, http.MethodPost, "/api/chat", body, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])
}
