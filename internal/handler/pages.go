package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the server-side HTML shell; live data arrives through
// the HTMX fragment endpoints.
type PageHandler interface {
	Index(c *gin.Context)
	Login(c *gin.Context)
	Register(c *gin.Context)
	Dashboard(c *gin.Context)
	Servers(c *gin.Context)
	Vps(c *gin.Context)
	Users(c *gin.Context)
	Monitoring(c *gin.Context)
	Settings(c *gin.Context)
}

type pageHandler struct{}

func NewPageHandler() PageHandler {
	return &pageHandler{}
}

func (h *pageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"title": "Hosting Panel"})
}

func (h *pageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Sign In"})
}

func (h *pageHandler) Register(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Create Account"})
}

func (h *pageHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"title": "Dashboard"})
}

func (h *pageHandler) Servers(c *gin.Context) {
	c.HTML(http.StatusOK, "servers.html", gin.H{"title": "Servers"})
}

func (h *pageHandler) Vps(c *gin.Context) {
	c.HTML(http.StatusOK, "vps.html", gin.H{"title": "VPS"})
}

func (h *pageHandler) Users(c *gin.Context) {
	c.HTML(http.StatusOK, "users.html", gin.H{"title": "Users"})
}

func (h *pageHandler) Monitoring(c *gin.Context) {
	c.HTML(http.StatusOK, "monitoring.html", gin.H{"title": "Monitoring"})
}

func (h *pageHandler) Settings(c *gin.Context) {
	c.HTML(http.StatusOK, "settings.html", gin.H{"title": "Settings"})
}
