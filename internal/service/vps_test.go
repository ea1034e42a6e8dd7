package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hostpanel/internal/apperr"
	"hostpanel/internal/hetzner"
	"hostpanel/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVpsRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*models.Vps
	createErr error
	created   []*models.Vps
	observed  []string
}

func newFakeVpsRepo() *fakeVpsRepo {
	return &fakeVpsRepo{rows: make(map[uuid.UUID]*models.Vps)}
}

func (r *fakeVpsRepo) Create(vps *models.Vps) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *vps
	r.rows[vps.ID] = &copied
	r.created = append(r.created, &copied)
	return nil
}

func (r *fakeVpsRepo) GetByID(id uuid.UUID) (*models.Vps, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vps, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *vps
	return &copied, nil
}

func (r *fakeVpsRepo) List() ([]models.Vps, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Vps
	for _, vps := range r.rows {
		out = append(out, *vps)
	}
	return out, nil
}

func (r *fakeVpsRepo) ListByUser(userID uuid.UUID) ([]models.Vps, error) {
	all, _ := r.List()
	var out []models.Vps
	for _, vps := range all {
		if vps.UserID == userID {
			out = append(out, vps)
		}
	}
	return out, nil
}

func (r *fakeVpsRepo) ListLinked() ([]models.Vps, error) {
	all, _ := r.List()
	var out []models.Vps
	for _, vps := range all {
		if vps.HetznerID != nil {
			out = append(out, vps)
		}
	}
	return out, nil
}

func (r *fakeVpsRepo) Update(vps *models.Vps) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[vps.ID]
	if !ok {
		return errors.New("row not found")
	}
	stored.Name = vps.Name
	stored.Status = vps.Status
	stored.UpdatedAt = vps.UpdatedAt
	return nil
}

func (r *fakeVpsRepo) UpdateObserved(id uuid.UUID, status string, ipv4, ipv6 *string) (*models.Vps, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	stored.Status = status
	stored.IPv4 = ipv4
	stored.IPv6 = ipv6
	stored.UpdatedAt = time.Now().UTC()
	r.observed = append(r.observed, status)
	copied := *stored
	return &copied, nil
}

func (r *fakeVpsRepo) Delete(id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *fakeVpsRepo) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

// fakeProvider records every request the service sends to the control plane.
type fakeProvider struct {
	mu       sync.Mutex
	requests []string
	server   *httptest.Server
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.requests = append(p.requests, r.Method+" "+r.URL.Path)
		p.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/servers":
			w.Write([]byte(`{"server": {
				"id": 500,
				"name": "vps-1",
				"status": "running",
				"public_net": {"ipv4": {"ip": "203.0.113.10"}, "ipv6": {"ip": "2001:db8::1"}},
				"server_type": {"name": "cx22", "cores": 2, "memory": 4096, "disk": 40,
					"prices": [{"location": "fsn1", "price_monthly": {"gross": "5.83", "net": "4.90"}}]},
				"datacenter": {"name": "fsn1-dc14", "location": {"name": "fsn1", "city": "Falkenstein", "country": "DE"}},
				"image": {"name": "ubuntu-24.04", "description": "Ubuntu 24.04"}
			}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/servers/500":
			w.Write([]byte(`{"server": {
				"id": 500,
				"name": "vps-1",
				"status": "off",
				"public_net": {"ipv4": {"ip": "203.0.113.10"}, "ipv6": null},
				"server_type": {"name": "cx22", "cores": 2, "memory": 4096, "disk": 40, "prices": []},
				"datacenter": {"name": "fsn1-dc14", "location": {"name": "fsn1", "city": "Falkenstein", "country": "DE"}},
				"image": {"name": "ubuntu-24.04", "description": "Ubuntu 24.04"}
			}}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{}`))
		case r.Method == http.MethodPost:
			// Power actions.
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProvider) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.requests...)
}

func newTestVpsService(t *testing.T, repo *fakeVpsRepo, provider *fakeProvider) (*vpsService, *CleanupQueue) {
	t.Helper()
	client := hetzner.NewClient(provider.server.URL, "token", zap.NewNop())
	cleanup := NewCleanupQueue(client, nil, zap.NewNop())
	svc := &vpsService{
		repo:        repo,
		client:      client,
		cleanup:     cleanup,
		logger:      zap.NewNop(),
		actionDelay: 0,
	}
	return svc, cleanup
}

func seedVps(repo *fakeVpsRepo, hetznerID *int64) *models.Vps {
	vps := &models.Vps{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Name:       "vps-1",
		HetznerID:  hetznerID,
		Status:     string(models.VpsRunning),
		ServerType: "cx22",
		Location:   "fsn1",
		Image:      "ubuntu-24.04",
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	repo.rows[vps.ID] = vps
	return vps
}

func TestVpsCreateMirrorsRemoteInstance(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)

	userID := uuid.New()
	vps, err := svc.Create(context.Background(), userID, models.CreateVps{
		Name:       "vps-1",
		ServerType: "cx22",
		Location:   "fsn1",
		Image:      "ubuntu-24.04",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, vps.UserID)
	require.NotNil(t, vps.HetznerID)
	assert.Equal(t, int64(500), *vps.HetznerID)
	assert.Equal(t, "running", vps.Status)
	assert.Equal(t, 2, vps.CPUCores)
	assert.Equal(t, 4, vps.RAMGB)
	assert.Equal(t, 40, vps.DiskGB)
	require.NotNil(t, vps.IPv4)
	assert.Equal(t, "203.0.113.10", *vps.IPv4)
	require.NotNil(t, vps.MonthlyCost)
	assert.InDelta(t, 5.83, *vps.MonthlyCost, 0.001)

	require.Len(t, repo.created, 1)
	assert.Equal(t, []string{"POST /servers"}, provider.calls())
}

func TestVpsCreateCompensatesOnInsertFailure(t *testing.T) {
	repo := newFakeVpsRepo()
	repo.createErr = errors.New("insert failed")
	provider := newFakeProvider(t)
	svc, cleanup := newTestVpsService(t, repo, provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleanup.Start(ctx)

	_, err := svc.Create(context.Background(), uuid.New(), models.CreateVps{
		Name:       "vps-1",
		ServerType: "cx22",
		Location:   "fsn1",
		Image:      "ubuntu-24.04",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Database))

	assert.Eventually(t, func() bool {
		for _, call := range provider.calls() {
			if call == "DELETE /servers/500" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "compensating delete must reach the provider")
}

func TestVpsPowerActionRequiresLinkedInstance(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	vps := seedVps(repo, nil)

	_, err := svc.PowerOn(context.Background(), vps.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.BadRequest))
	assert.Empty(t, provider.calls())
}

func TestVpsPowerOffSyncsObservedState(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	hetznerID := int64(500)
	vps := seedVps(repo, &hetznerID)

	updated, err := svc.PowerOff(context.Background(), vps.ID)
	require.NoError(t, err)

	assert.Equal(t, "off", updated.Status)
	require.NotNil(t, updated.IPv4)
	assert.Equal(t, "203.0.113.10", *updated.IPv4)
	assert.Nil(t, updated.IPv6)
	assert.Equal(t, []string{
		fmt.Sprintf("POST /servers/%d/actions/poweroff", hetznerID),
		fmt.Sprintf("GET /servers/%d", hetznerID),
	}, provider.calls())
}

func TestVpsSyncStatusUnlinkedReturnsRowUnchanged(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	vps := seedVps(repo, nil)

	synced, err := svc.SyncStatus(context.Background(), vps.ID)
	require.NoError(t, err)
	assert.Equal(t, vps.ID, synced.ID)
	assert.Equal(t, vps.Status, synced.Status)
	assert.Empty(t, provider.calls())
	assert.Empty(t, repo.observed)
}

func TestVpsSyncAllSkipsUnlinked(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	hetznerID := int64(500)
	seedVps(repo, &hetznerID)
	seedVps(repo, nil)

	svc.SyncAll(context.Background())

	assert.Equal(t, []string{"GET /servers/500"}, provider.calls())
	assert.Equal(t, []string{"off"}, repo.observed)
}

func TestVpsDeleteRemovesRemoteFirst(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	hetznerID := int64(500)
	vps := seedVps(repo, &hetznerID)

	require.NoError(t, svc.Delete(context.Background(), vps.ID))

	assert.Equal(t, []string{"DELETE /servers/500"}, provider.calls())
	count, _ := repo.Count()
	assert.Equal(t, 0, count)
}

func TestVpsDeleteUnlinkedSkipsProvider(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	vps := seedVps(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), vps.ID))
	assert.Empty(t, provider.calls())
}

func TestVpsGetNotFound(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)

	_, err := svc.Get(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestVpsUpdateNormalizesStatus(t *testing.T) {
	repo := newFakeVpsRepo()
	provider := newFakeProvider(t)
	svc, _ := newTestVpsService(t, repo, provider)
	vps := seedVps(repo, nil)

	name := "renamed"
	status := "bogus"
	updated, err := svc.Update(vps.ID, models.UpdateVps{Name: &name, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, string(models.VpsError), updated.Status)
}
