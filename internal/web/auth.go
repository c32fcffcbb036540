package web

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shiziso/Bot/internal/config"
)

const loginPage = `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><title>Вход</title></head>
<body>
<h1>Панель администратора</h1>
<form method="post" action="/login">
  <input type="password" name="password" placeholder="Пароль" autofocus>
  <button type="submit">Войти</button>
</form>
</body>
</html>`

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}

// Login checks the submitted password against the configured bcrypt hash.
// There is a single admin account, so no user lookup is involved.
func (h *AuthHandler) Login(c *gin.Context) {
	password := c.PostForm("password")

	hash := config.Conf.Web.AdminPasswordHash
	if hash == "" {
		h.log.Warn("Admin login attempted with no password hash configured")
		c.String(http.StatusForbidden, "Admin access is not configured.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		h.log.Warn("Failed admin login", zap.String("client_ip", c.ClientIP()))
		c.String(http.StatusUnauthorized, "Invalid password.")
		return
	}

	session := sessions.Default(c)
	session.Set("admin", true)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to login")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to logout")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// AuthRequired guards the admin routes.
func AuthRequired(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if admin, ok := session.Get("admin").(bool); !ok || !admin {
			log.Debug("Unauthenticated admin request", zap.String("path", c.Request.URL.Path))
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
