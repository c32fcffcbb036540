package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	config.Conf = &config.Config{
		Web: config.WebConfig{
			Port:              "5050",
			SessionSecret:     "test-secret",
			AdminPasswordHash: string(hash),
		},
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "web.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserSettings{}, &models.TestResultRecord{},
		&models.MoodEntry{}, &models.AnonymousQuestion{}, &models.CommandLog{}, &models.TipLog{},
	))
	database.DB = db

	return Setup(zap.NewNop())
}

func login(t *testing.T, r *gin.Engine, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/admin", "/admin/api/overview", "/admin/api/commands"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := setupRouter(t)
	w := login(t, r, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginGrantsAccessToStats(t *testing.T) {
	r := setupRouter(t)

	w := login(t, r, "secret")
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/overview", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total_users")
}

func TestLoginFailsClosedWithoutConfiguredHash(t *testing.T) {
	r := setupRouter(t)
	config.Conf.Web.AdminPasswordHash = ""

	w := login(t, r, "secret")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
