package service

import (
	"context"
	"strconv"
	"time"

	"hostpanel/internal/apperr"
	"hostpanel/internal/hetzner"
	"hostpanel/internal/models"
	"hostpanel/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultActionDelay gives the provider a moment to start a power transition
// before the follow-up status sync. It is a heuristic, not an acknowledgment:
// provider actions are asynchronous and may still be in flight afterwards.
const defaultActionDelay = 2 * time.Second

type VpsService interface {
	List() ([]models.Vps, error)
	Get(id uuid.UUID) (*models.Vps, error)
	Create(ctx context.Context, userID uuid.UUID, payload models.CreateVps) (*models.Vps, error)
	Update(id uuid.UUID, payload models.UpdateVps) (*models.Vps, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PowerOn(ctx context.Context, id uuid.UUID) (*models.Vps, error)
	PowerOff(ctx context.Context, id uuid.UUID) (*models.Vps, error)
	Reboot(ctx context.Context, id uuid.UUID) (*models.Vps, error)
	SyncStatus(ctx context.Context, id uuid.UUID) (*models.Vps, error)
	SyncAll(ctx context.Context)
}

type vpsService struct {
	repo        repository.VpsRepository
	client      *hetzner.Client
	cleanup     *CleanupQueue
	logger      *zap.Logger
	actionDelay time.Duration
}

func NewVpsService(repo repository.VpsRepository, client *hetzner.Client, cleanup *CleanupQueue, logger *zap.Logger) VpsService {
	return &vpsService{
		repo:        repo,
		client:      client,
		cleanup:     cleanup,
		logger:      logger,
		actionDelay: defaultActionDelay,
	}
}

func (s *vpsService) List() ([]models.Vps, error) {
	vps, err := s.repo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return vps, nil
}

func (s *vpsService) Get(id uuid.UUID) (*models.Vps, error) {
	vps, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if vps == nil {
		return nil, apperr.New(apperr.NotFound, "vps not found")
	}
	return vps, nil
}

// Create provisions a remote instance first, then mirrors it locally. When
// the local insert fails the remote instance is already running and billable,
// so a best-effort compensating delete is handed to the cleanup queue; its
// outcome is not awaited and the original insert error is what the caller
// sees.
func (s *vpsService) Create(ctx context.Context, userID uuid.UUID, payload models.CreateVps) (*models.Vps, error) {
	req := hetzner.CreateServerRequest{
		Name:             payload.Name,
		ServerType:       payload.ServerType,
		Location:         payload.Location,
		Image:            payload.Image,
		SSHKeys:          payload.SSHKeys,
		UserData:         payload.UserData,
		StartAfterCreate: true,
	}

	remote, err := s.client.CreateServer(ctx, req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "provider create failed", err)
	}

	var monthlyCost *float64
	if len(remote.Type.Prices) > 0 {
		if gross, err := strconv.ParseFloat(remote.Type.Prices[0].PriceMonthly.Gross, 64); err == nil {
			monthlyCost = &gross
		}
	}

	now := time.Now().UTC()
	hetznerID := remote.ID
	vps := &models.Vps{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        remote.Name,
		HetznerID:   &hetznerID,
		Status:      remote.Status,
		ServerType:  remote.Type.Name,
		Location:    remote.Datacenter.Location.Name,
		Image:       remote.Image.Name,
		IPv4:        ipOf(remote.PublicNet.IPv4),
		IPv6:        ipOf(remote.PublicNet.IPv6),
		CPUCores:    remote.Type.Cores,
		RAMGB:       int(remote.Type.Memory / 1024),
		DiskGB:      remote.Type.Disk,
		MonthlyCost: monthlyCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(vps); err != nil {
		s.logger.Error("VPS insert failed after provider create, scheduling cleanup",
			zap.Int64("hetzner_id", remote.ID), zap.Error(err))
		s.cleanup.Enqueue(remote.ID)
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}

	return vps, nil
}

func (s *vpsService) Update(id uuid.UUID, payload models.UpdateVps) (*models.Vps, error) {
	vps, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		vps.Name = *payload.Name
	}
	if payload.Status != nil {
		vps.Status = string(models.ParseVpsStatus(*payload.Status))
	}
	vps.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(vps); err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return vps, nil
}

// Delete removes the remote instance first when one is linked; the local row
// is only removed after the provider delete succeeded.
func (s *vpsService) Delete(ctx context.Context, id uuid.UUID) error {
	vps, err := s.Get(id)
	if err != nil {
		return err
	}

	if vps.HetznerID != nil {
		if err := s.client.DeleteServer(ctx, *vps.HetznerID); err != nil {
			return apperr.Wrap(apperr.Internal, "provider delete failed", err)
		}
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return apperr.Wrap(apperr.Database, "database error", err)
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "vps not found")
	}
	return nil
}

func (s *vpsService) PowerOn(ctx context.Context, id uuid.UUID) (*models.Vps, error) {
	return s.powerAction(ctx, id, s.client.PowerOn)
}

func (s *vpsService) PowerOff(ctx context.Context, id uuid.UUID) (*models.Vps, error) {
	return s.powerAction(ctx, id, s.client.PowerOff)
}

func (s *vpsService) Reboot(ctx context.Context, id uuid.UUID) (*models.Vps, error) {
	return s.powerAction(ctx, id, s.client.Reboot)
}

func (s *vpsService) powerAction(ctx context.Context, id uuid.UUID, action func(context.Context, int64) error) (*models.Vps, error) {
	vps, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if vps.HetznerID == nil {
		return nil, apperr.New(apperr.BadRequest, "vps not linked to a provider instance")
	}

	if err := action(ctx, *vps.HetznerID); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "provider action failed", err)
	}

	time.Sleep(s.actionDelay)
	return s.SyncStatus(ctx, id)
}

// SyncStatus overwrites the locally cached status and IP fields with the
// authoritative remote values. Locally-owned fields (name, monthly cost) are
// untouched. A row without a linked remote instance is returned unchanged.
func (s *vpsService) SyncStatus(ctx context.Context, id uuid.UUID) (*models.Vps, error) {
	vps, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if vps.HetznerID == nil {
		return vps, nil
	}

	remote, err := s.client.GetServer(ctx, *vps.HetznerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "provider fetch failed", err)
	}

	merged, err := s.repo.UpdateObserved(id, remote.Status, ipOf(remote.PublicNet.IPv4), ipOf(remote.PublicNet.IPv6))
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if merged == nil {
		return nil, apperr.New(apperr.NotFound, "vps not found")
	}
	return merged, nil
}

// SyncAll refreshes every provider-linked row. Failures are logged per row
// and do not stop the sweep.
func (s *vpsService) SyncAll(ctx context.Context) {
	linked, err := s.repo.ListLinked()
	if err != nil {
		s.logger.Error("Failed to list linked VPS rows for sync", zap.Error(err))
		return
	}
	for _, vps := range linked {
		if _, err := s.SyncStatus(ctx, vps.ID); err != nil {
			s.logger.Error("VPS status sync failed",
				zap.String("id", vps.ID.String()), zap.Error(err))
		}
	}
}

func ipOf(addr *hetzner.IPAddress) *string {
	if addr == nil {
		return nil
	}
	ip := addr.IP
	return &ip
}
