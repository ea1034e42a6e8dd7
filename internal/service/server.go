package service

import (
	"time"

	"hostpanel/internal/apperr"
	"hostpanel/internal/models"
	"hostpanel/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServerService interface {
	List() ([]models.Server, error)
	Get(id uuid.UUID) (*models.Server, error)
	Create(userID uuid.UUID, payload models.CreateServer) (*models.Server, error)
	Update(id uuid.UUID, payload models.UpdateServer) (*models.Server, error)
	Delete(id uuid.UUID) error
	Metrics(serverID uuid.UUID) ([]models.ServerMetrics, error)
}

type serverService struct {
	servers repository.ServerRepository
	logger  *zap.Logger
}

func NewServerService(servers repository.ServerRepository, logger *zap.Logger) ServerService {
	return &serverService{servers: servers, logger: logger}
}

func (s *serverService) List() ([]models.Server, error) {
	servers, err := s.servers.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return servers, nil
}

func (s *serverService) Get(id uuid.UUID) (*models.Server, error) {
	server, err := s.servers.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if server == nil {
		return nil, apperr.New(apperr.NotFound, "server not found")
	}
	return server, nil
}

// Create only records the metadata row. Nothing is provisioned; the row
// starts in the provisioning status.
func (s *serverService) Create(userID uuid.UUID, payload models.CreateServer) (*models.Server, error) {
	now := time.Now().UTC()
	server := &models.Server{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       payload.Name,
		Hostname:   payload.Hostname,
		IPAddress:  payload.IPAddress,
		Status:     string(models.ServerProvisioning),
		ServerType: payload.ServerType,
		Location:   payload.Location,
		CPUCores:   payload.CPUCores,
		RAMGB:      payload.RAMGB,
		DiskGB:     payload.DiskGB,
		OS:         payload.OS,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.servers.Create(server); err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return server, nil
}

func (s *serverService) Update(id uuid.UUID, payload models.UpdateServer) (*models.Server, error) {
	server, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		server.Name = *payload.Name
	}
	if payload.Hostname != nil {
		server.Hostname = *payload.Hostname
	}
	if payload.IPAddress != nil {
		server.IPAddress = *payload.IPAddress
	}
	if payload.Status != nil {
		server.Status = string(models.ParseServerStatus(*payload.Status))
	}
	if payload.Location != nil {
		server.Location = payload.Location
	}
	if payload.CPUCores != nil {
		server.CPUCores = payload.CPUCores
	}
	if payload.RAMGB != nil {
		server.RAMGB = payload.RAMGB
	}
	if payload.DiskGB != nil {
		server.DiskGB = payload.DiskGB
	}
	if payload.OS != nil {
		server.OS = payload.OS
	}
	server.UpdatedAt = time.Now().UTC()

	if err := s.servers.Update(server); err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return server, nil
}

func (s *serverService) Delete(id uuid.UUID) error {
	rows, err := s.servers.Delete(id)
	if err != nil {
		return apperr.Wrap(apperr.Database, "database error", err)
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "server not found")
	}
	return nil
}

func (s *serverService) Metrics(serverID uuid.UUID) ([]models.ServerMetrics, error) {
	metrics, err := s.servers.ListMetrics(serverID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return metrics, nil
}
