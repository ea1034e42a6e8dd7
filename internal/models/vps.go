package models

import (
	"time"

	"github.com/google/uuid"
)

// VpsStatus is stored as its lowercase string form.
type VpsStatus string

const (
	VpsRunning  VpsStatus = "running"
	VpsStarting VpsStatus = "starting"
	VpsStopping VpsStatus = "stopping"
	VpsStopped  VpsStatus = "stopped"
	VpsDeleting VpsStatus = "deleting"
	VpsError    VpsStatus = "error"
)

// ParseVpsStatus maps a stored status string to a VpsStatus. Unknown values
// fall back to VpsError instead of failing.
func ParseVpsStatus(s string) VpsStatus {
	switch s {
	case "running":
		return VpsRunning
	case "starting":
		return VpsStarting
	case "stopping":
		return VpsStopping
	case "stopped":
		return VpsStopped
	case "deleting":
		return VpsDeleting
	case "error":
		return VpsError
	default:
		return VpsError
	}
}

// Vps mirrors a remote Hetzner instance. HetznerID links the local row to the
// provider's namespace; status and IPs are a pull-based cache of the remote
// state, refreshed only on explicit sync or after a lifecycle action.
type Vps struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	HetznerID   *int64    `db:"hetzner_id" json:"hetzner_id,omitempty"`
	Status      string    `db:"status" json:"status"`
	ServerType  string    `db:"server_type" json:"server_type"`
	Location    string    `db:"location" json:"location"`
	Image       string    `db:"image" json:"image"`
	IPv4        *string   `db:"ipv4" json:"ipv4,omitempty"`
	IPv6        *string   `db:"ipv6" json:"ipv6,omitempty"`
	CPUCores    int       `db:"cpu_cores" json:"cpu_cores"`
	RAMGB       int       `db:"ram_gb" json:"ram_gb"`
	DiskGB      int       `db:"disk_gb" json:"disk_gb"`
	MonthlyCost *float64  `db:"monthly_cost" json:"monthly_cost,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func (v *Vps) GetStatus() VpsStatus {
	return ParseVpsStatus(v.Status)
}

type CreateVps struct {
	Name       string   `json:"name" binding:"required"`
	ServerType string   `json:"server_type" binding:"required"`
	Location   string   `json:"location" binding:"required"`
	Image      string   `json:"image" binding:"required"`
	SSHKeys    []string `json:"ssh_keys"`
	UserData   *string  `json:"user_data"`
}

type UpdateVps struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}
