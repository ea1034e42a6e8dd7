package handler

import (
	"fmt"
	"net/http"

	"hostpanel/internal/models"
	"hostpanel/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the HTMX fragments the dashboard polls. Fragments
// are small HTML snippets, not JSON.
type DashboardHandler interface {
	Stats(c *gin.Context)
	Activity(c *gin.Context)
	Health(c *gin.Context)
	Servers(c *gin.Context)
}

type dashboardHandler struct {
	userRepo   repository.UserRepository
	serverRepo repository.ServerRepository
	vpsRepo    repository.VpsRepository
	logger     *zap.Logger
}

func NewDashboardHandler(userRepo repository.UserRepository, serverRepo repository.ServerRepository,
	vpsRepo repository.VpsRepository, logger *zap.Logger) DashboardHandler {
	return &dashboardHandler{
		userRepo:   userRepo,
		serverRepo: serverRepo,
		vpsRepo:    vpsRepo,
		logger:     logger,
	}
}

// Stats handles GET /api/dashboard/stats
func (h *dashboardHandler) Stats(c *gin.Context) {
	serverCount, err := h.serverRepo.Count()
	if err != nil {
		h.logger.Error("Failed to count servers", zap.Error(err))
		c.String(http.StatusInternalServerError, `<div class="stat-card error">stats unavailable</div>`)
		return
	}
	vpsCount, err := h.vpsRepo.Count()
	if err != nil {
		h.logger.Error("Failed to count vps", zap.Error(err))
		c.String(http.StatusInternalServerError, `<div class="stat-card error">stats unavailable</div>`)
		return
	}
	userCount, err := h.userRepo.Count()
	if err != nil {
		h.logger.Error("Failed to count users", zap.Error(err))
		c.String(http.StatusInternalServerError, `<div class="stat-card error">stats unavailable</div>`)
		return
	}

	html := fmt.Sprintf(`
		<div class="stat-card">
			<h3>%d</h3>
			<p>Servers</p>
		</div>
		<div class="stat-card">
			<h3>%d</h3>
			<p>VPS Instances</p>
		</div>
		<div class="stat-card">
			<h3>%d</h3>
			<p>Users</p>
		</div>`, serverCount, vpsCount, userCount)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// Activity handles GET /api/dashboard/activity
func (h *dashboardHandler) Activity(c *gin.Context) {
	vps, err := h.vpsRepo.List()
	if err != nil {
		h.logger.Error("Failed to list vps for activity feed", zap.Error(err))
		c.String(http.StatusInternalServerError, `<p class="error">activity unavailable</p>`)
		return
	}

	html := ""
	for i, v := range vps {
		if i >= 5 {
			break
		}
		html += fmt.Sprintf(`
		<div class="activity-row">
			<span class="dot status-%s"></span>
			<div>
				<p>%s</p>
				<p class="muted">%s &middot; %s</p>
			</div>
		</div>`, v.Status, v.Name, v.ServerType, v.UpdatedAt.Format("15:04 Jan 2"))
	}
	if html == "" {
		html = `<p class="muted">No recent activity</p>`
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// Health handles GET /api/dashboard/health
func (h *dashboardHandler) Health(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `<span class="badge online">Operational</span>`)
}

// Servers handles GET /api/dashboard/servers
func (h *dashboardHandler) Servers(c *gin.Context) {
	servers, err := h.serverRepo.List()
	if err != nil {
		h.logger.Error("Failed to list servers for dashboard", zap.Error(err))
		c.String(http.StatusInternalServerError, `<p class="error">servers unavailable</p>`)
		return
	}

	html := ""
	for _, s := range servers {
		html += fmt.Sprintf(`
		<tr>
			<td>%s</td>
			<td>%s</td>
			<td>%s</td>
			<td><span class="badge %s">%s</span></td>
		</tr>`, s.Name, s.Hostname, s.IPAddress, badgeClass(s.GetStatus()), s.Status)
	}
	if html == "" {
		html = `<tr><td colspan="4" class="muted">No servers yet</td></tr>`
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

func badgeClass(status models.ServerStatus) string {
	switch status {
	case models.ServerOnline:
		return "online"
	case models.ServerMaintenance, models.ServerProvisioning:
		return "pending"
	default:
		return "offline"
	}
}
