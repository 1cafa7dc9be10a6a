package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ag-enzo/coursepilot-college-organizer/config"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/api/handler"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/repository"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/service"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/database"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/jwt"
)

// ═══════════════════════════════════════════════════════════
// 端到端：真实 SQLite + 迁移 + 全部中间件
// ═══════════════════════════════════════════════════════════

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	engine http.Handler
	token  string
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{
		App:      config.AppConfig{Timezone: "UTC"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "api_test.db")},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL: 15 * time.Minute,
			BcryptCost:     4,
		},
		Upcoming: config.UpcomingConfig{Limit: 10},
	}

	db, err := database.NewDB(&cfg.Database, "error", logger)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.RunMigrations(sqlDB, "sqlite", logger))

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repository.NewRepository(db), jwtMgr, nil, logger)
	h := handler.NewHandler(svc, time.UTC)

	engine, err := Setup(cfg, h, jwtMgr, nil, logger)
	require.NoError(t, err)
	return &apiClient{t: t, engine: engine}
}

func (a *apiClient) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type idOnly struct {
	ID int64 `json:"id"`
}

type upcomingItem struct {
	Title      string `json:"title"`
	DueAt      string `json:"due_at"`
	DueAtLocal string `json:"due_at_local"`
	Label      string `json:"label"`
}

type listOf[T any] struct {
	List []T `json:"list"`
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestHealth(t *testing.T) {
	api := newTestServer(t)

	code, _ := api.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "s3cret"}

	code, _ := api.do("POST", "/api/v1/auth/register", creds)
	require.Equal(t, http.StatusCreated, code)

	code, _ = api.do("POST", "/api/v1/auth/register", creds)
	assert.Equal(t, http.StatusConflict, code, "重复用户名")

	code, wrongPw := api.do("POST", "/api/v1/auth/login", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, noUser := api.do("POST", "/api/v1/auth/login", map[string]string{"username": "bob", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, wrongPw.Message, noUser.Message, "用户不存在与密码错误对外提示一致")

	code, _ = api.do("GET", "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, code, "未登录")

	code, env := api.do("POST", "/api/v1/auth/login", creds)
	require.Equal(t, http.StatusOK, code)
	api.token = decode[struct {
		AccessToken string `json:"access_token"`
	}](t, env.Data).AccessToken
	require.NotEmpty(t, api.token)

	code, env = api.do("GET", "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"username":"alice"`)

	code, _ = api.do("POST", "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCourseAndUpcomingFlow(t *testing.T) {
	api := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "s3cret"}
	api.do("POST", "/api/v1/auth/register", creds)
	_, env := api.do("POST", "/api/v1/auth/login", creds)
	api.token = decode[struct {
		AccessToken string `json:"access_token"`
	}](t, env.Data).AccessToken

	// 学期：查找或创建，重复调用返回同一 ID
	code, env := api.do("POST", "/api/v1/semesters", map[string]interface{}{"term": "Fall", "year": 2024})
	require.Equal(t, http.StatusOK, code)
	semID := decode[idOnly](t, env.Data).ID
	_, env = api.do("POST", "/api/v1/semesters", map[string]interface{}{"term": "Fall", "year": 2024})
	assert.Equal(t, semID, decode[idOnly](t, env.Data).ID)

	code, _ = api.do("POST", "/api/v1/semesters", map[string]interface{}{"term": "Summer", "year": 2024})
	assert.Equal(t, http.StatusBadRequest, code)

	// 课程：未给颜色使用默认值
	code, env = api.do("POST", fmt.Sprintf("/api/v1/semesters/%d/courses", semID),
		map[string]string{"code": "CS101", "name": "Intro to CS"})
	require.Equal(t, http.StatusCreated, code)
	assert.Contains(t, string(env.Data), `"color_hex":"#4F46E5"`)
	courseID := decode[idOnly](t, env.Data).ID

	code, _ = api.do("POST", "/api/v1/semesters/999/courses", map[string]string{"code": "X", "name": "Y"})
	assert.Equal(t, http.StatusNotFound, code)

	// 作业：截止时间带偏移输入，统一以 UTC 保存
	assignmentsPath := fmt.Sprintf("/api/v1/courses/%d/assignments", courseID)
	for _, a := range []map[string]interface{}{
		{"type": "HW", "title": "T1", "due_at": "2024-10-01T10:00:00Z", "topics": "  "},
		{"type": "Quiz", "title": "T2", "due_at": "2024-09-16T07:00:00+08:00", "topics": "recursion"},
		{"type": "Project", "title": "T3", "due_at": "2024-11-01T00:00:00Z"},
	} {
		code, env = api.do("POST", assignmentsPath, a)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, _ = api.do("POST", assignmentsPath, map[string]interface{}{"type": "Lab", "title": "bad", "due_at": "2024-11-01T00:00:00Z"})
	assert.Equal(t, http.StatusBadRequest, code, "未知作业类型")

	code, _ = api.do("POST", "/api/v1/courses/999/assignments",
		map[string]interface{}{"type": "HW", "title": "orphan", "due_at": "2024-11-01T00:00:00Z"})
	assert.Equal(t, http.StatusNotFound, code, "课程不存在")

	code, env = api.do("GET", assignmentsPath, nil)
	require.Equal(t, http.StatusOK, code)
	listed := decode[listOf[upcomingItem]](t, env.Data).List
	require.Len(t, listed, 3)
	assert.Equal(t, "T2", listed[0].Title)

	// 即将截止
	code, env = api.do("GET", fmt.Sprintf("/api/v1/semesters/%d/upcoming?limit=2", semID), nil)
	require.Equal(t, http.StatusOK, code)
	items := decode[listOf[upcomingItem]](t, env.Data).List
	require.Len(t, items, 2)
	assert.Equal(t, "T2", items[0].Title)
	assert.Equal(t, "2024-09-15T23:00:00Z", items[0].DueAt)
	assert.Equal(t, "2024-09-15 23:00", items[0].DueAtLocal)
	assert.Equal(t, "[Quiz] CS101 — T2 (2024-09-15 23:00)  •  recursion", items[0].Label)
	assert.Equal(t, "T1", items[1].Title)
	assert.Equal(t, "[HW] CS101 — T1 (2024-10-01 10:00)", items[1].Label, "空白 topics 不展示")

	// 删除课程级联删除作业
	code, _ = api.do("DELETE", fmt.Sprintf("/api/v1/courses/%d", courseID), nil)
	require.Equal(t, http.StatusOK, code)

	code, env = api.do("GET", fmt.Sprintf("/api/v1/semesters/%d/upcoming", semID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[listOf[upcomingItem]](t, env.Data).List)

	code, _ = api.do("GET", fmt.Sprintf("/api/v1/courses/%d", courseID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCoursesAreScopedToUser(t *testing.T) {
	api := newTestServer(t)
	login := func(name string) string {
		creds := map[string]string{"username": name, "password": "pw"}
		api.token = ""
		api.do("POST", "/api/v1/auth/register", creds)
		_, env := api.do("POST", "/api/v1/auth/login", creds)
		return decode[struct {
			AccessToken string `json:"access_token"`
		}](t, env.Data).AccessToken
	}

	aliceToken := login("alice")
	bobToken := login("bob")

	api.token = aliceToken
	_, env := api.do("POST", "/api/v1/semesters", map[string]interface{}{"term": "Spring", "year": 2025})
	semID := decode[idOnly](t, env.Data).ID
	_, env = api.do("POST", fmt.Sprintf("/api/v1/semesters/%d/courses", semID), map[string]string{"code": "CS101", "name": "Intro"})
	courseID := decode[idOnly](t, env.Data).ID

	api.token = bobToken
	code, _ := api.do("GET", fmt.Sprintf("/api/v1/courses/%d", courseID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = api.do("DELETE", fmt.Sprintf("/api/v1/courses/%d", courseID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, env = api.do("GET", fmt.Sprintf("/api/v1/semesters/%d/courses", semID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[listOf[idOnly]](t, env.Data).List)

	api.token = aliceToken
	code, _ = api.do("GET", fmt.Sprintf("/api/v1/courses/%d", courseID), nil)
	assert.Equal(t, http.StatusOK, code)
}
