package handler

import (
	"context"
	"net/http"

	"hostpanel/internal/models"
	"hostpanel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VpsHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	PowerOn(c *gin.Context)
	PowerOff(c *gin.Context)
	Reboot(c *gin.Context)
	Sync(c *gin.Context)
}

type vpsHandler struct {
	vpsService service.VpsService
	logger     *zap.Logger
}

func NewVpsHandler(vpsService service.VpsService, logger *zap.Logger) VpsHandler {
	return &vpsHandler{vpsService: vpsService, logger: logger}
}

func (h *vpsHandler) List(c *gin.Context) {
	vps, err := h.vpsService.List()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vps)
}

func (h *vpsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vps id"})
		return
	}

	vps, err := h.vpsService.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vps)
}

func (h *vpsHandler) Create(c *gin.Context) {
	var payload models.CreateVps
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Owner identity comes from the request once auth middleware exists.
	userID := uuid.New()

	vps, err := h.vpsService.Create(c.Request.Context(), userID, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, vps)
}

func (h *vpsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vps id"})
		return
	}

	var payload models.UpdateVps
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vps, err := h.vpsService.Update(id, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vps)
}

func (h *vpsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vps id"})
		return
	}

	if err := h.vpsService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vps deleted"})
}

func (h *vpsHandler) PowerOn(c *gin.Context) {
	h.powerAction(c, h.vpsService.PowerOn)
}

func (h *vpsHandler) PowerOff(c *gin.Context) {
	h.powerAction(c, h.vpsService.PowerOff)
}

func (h *vpsHandler) Reboot(c *gin.Context) {
	h.powerAction(c, h.vpsService.Reboot)
}

func (h *vpsHandler) Sync(c *gin.Context) {
	h.powerAction(c, h.vpsService.SyncStatus)
}

func (h *vpsHandler) powerAction(c *gin.Context, action func(ctx context.Context, id uuid.UUID) (*models.Vps, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vps id"})
		return
	}

	vps, err := action(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vps)
}
