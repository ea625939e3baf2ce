package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/provider"
	"github.com/blogicum/internal/queue"
	"github.com/blogicum/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
	c      *provider.Container
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	uploadDir := t.TempDir()
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		UserJWT: config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		Upload:  config.UploadConfig{Driver: "local", Dir: uploadDir, MaxSize: 1 << 20},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLetter: true},
		},
		Blog: config.BlogConfig{PostsPerPage: 10},
	}
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	require.NoError(t, err)

	c := provider.Build(cfg, db, queueClient, storage.NewLocal(uploadDir, "/uploads"))
	return &testApp{engine: SetupRouter(cfg, c), db: db, c: c}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) register(t *testing.T, username string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret-pass-1",
	})
	resp := decodeEnvelope(t, w)
	require.Equal(t, 0, resp.StatusCode, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `blogicum_http_requests_total{method="GET",route="/healthz",status="200"}`)
}

func TestPostLifecycleRedirects(t *testing.T) {
	app := newTestApp(t)
	alice := app.register(t, "alice")
	bob := app.register(t, "bob")

	w := app.do(t, http.MethodPost, "/api/v1/posts", alice, gin.H{"title": "Hello", "text": "First post"})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/api/v1/profile/alice", w.Header().Get("Location"))

	var post models.Post
	require.NoError(t, app.db.Where("title = ?", "Hello").First(&post).Error)
	detailPath := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	// 非作者编辑被静默重定向，内容不变
	w = app.do(t, http.MethodPut, detailPath, bob, gin.H{"title": "Hijacked", "text": "x"})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))
	require.NoError(t, app.db.First(&post, post.ID).Error)
	assert.Equal(t, "Hello", post.Title)

	w = app.do(t, http.MethodDelete, detailPath, bob, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	w = app.do(t, http.MethodPost, detailPath+"/comments", bob, gin.H{"text": "Nice"})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, detailPath, "", nil)
	resp := decodeEnvelope(t, w)
	require.Equal(t, 0, resp.StatusCode, w.Body.String())
	var detail struct {
		Post     models.Post      `json:"post"`
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.Equal(t, "Hello", detail.Post.Title)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Nice", detail.Comments[0].Text)

	w = app.do(t, http.MethodDelete, detailPath, alice, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/v1/posts", w.Header().Get("Location"))

	var commentCount int64
	require.NoError(t, app.db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Zero(t, commentCount)
}

func TestUnpublishedPostVisibleOnlyToAuthor(t *testing.T) {
	app := newTestApp(t)
	alice := app.register(t, "alice")
	bob := app.register(t, "bob")

	w := app.do(t, http.MethodPost, "/api/v1/posts", alice, gin.H{"title": "Draft", "text": "hidden", "is_published": false})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	var post models.Post
	require.NoError(t, app.db.Where("title = ?", "Draft").First(&post).Error)
	detailPath := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	assert.Equal(t, 404, decodeEnvelope(t, app.do(t, http.MethodGet, detailPath, "", nil)).StatusCode)
	assert.Equal(t, 404, decodeEnvelope(t, app.do(t, http.MethodGet, detailPath, bob, nil)).StatusCode)
	assert.Equal(t, 0, decodeEnvelope(t, app.do(t, http.MethodGet, detailPath, alice, nil)).StatusCode)

	resp := decodeEnvelope(t, app.do(t, http.MethodGet, "/api/v1/posts", "", nil))
	require.Equal(t, 0, resp.StatusCode)
	var page struct {
		Items []models.Post `json:"items"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Zero(t, page.Total)

	resp = decodeEnvelope(t, app.do(t, http.MethodGet, "/api/v1/profile/alice", alice, nil))
	require.Equal(t, 0, resp.StatusCode)
	var profile struct {
		Posts struct {
			Total int64 `json:"total"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.EqualValues(t, 1, profile.Posts.Total)
}

func TestAdminRoutesRequireStaff(t *testing.T) {
	app := newTestApp(t)
	bob := app.register(t, "bob")

	assert.Equal(t, 401, decodeEnvelope(t, app.do(t, http.MethodGet, "/api/v1/admin/posts", "", nil)).StatusCode)
	assert.Equal(t, 403, decodeEnvelope(t, app.do(t, http.MethodGet, "/api/v1/admin/posts", bob, nil)).StatusCode)

	// staff 但无角色：RBAC 拒绝
	require.NoError(t, app.db.Model(&models.User{}).Where("username = ?", "bob").Update("is_staff", true).Error)
	assert.Equal(t, 403, decodeEnvelope(t, app.do(t, http.MethodGet, "/api/v1/admin/posts", bob, nil)).StatusCode)

	var user models.User
	require.NoError(t, app.db.Where("username = ?", "bob").First(&user).Error)
	_, _, err := app.c.AuthzService.AssignRole(user.ID, "editor")
	require.NoError(t, err)
	assert.Equal(t, 0, decodeEnvelope(t, app.do(t, http.MethodGet, "/api/v1/admin/posts", bob, nil)).StatusCode)
	// 编辑角色无用户管理写权限
	w := app.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", user.ID), bob, nil)
	assert.Equal(t, 403, decodeEnvelope(t, w).StatusCode)
}

func TestAdminPermissionCatalogListsAdminRoutes(t *testing.T) {
	app := newTestApp(t)
	items := buildAdminPermissionCatalog(app.engine)
	require.NotEmpty(t, items)

	found := false
	for _, item := range items {
		assert.True(t, strings.HasPrefix(item.Object, "/admin/"))
		if item.Permission == "PATCH:/admin/posts/:id" {
			found = true
			assert.Equal(t, "posts", item.Module)
		}
	}
	assert.True(t, found)
}
