package models

import (
	"time"

	"github.com/google/uuid"
)

// ServerStatus is stored as its lowercase string form.
type ServerStatus string

const (
	ServerOnline       ServerStatus = "online"
	ServerOffline      ServerStatus = "offline"
	ServerMaintenance  ServerStatus = "maintenance"
	ServerProvisioning ServerStatus = "provisioning"
	ServerError        ServerStatus = "error"
)

// ParseServerStatus maps a stored status string to a ServerStatus. Unknown
// values fall back to ServerOffline instead of failing.
func ParseServerStatus(s string) ServerStatus {
	switch s {
	case "online":
		return ServerOnline
	case "offline":
		return ServerOffline
	case "maintenance":
		return ServerMaintenance
	case "provisioning":
		return ServerProvisioning
	case "error":
		return ServerError
	default:
		return ServerOffline
	}
}

// Server is a user-described host record. The panel only stores the metadata;
// nothing is provisioned on creation beyond the row itself.
type Server struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	Hostname   string    `db:"hostname" json:"hostname"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	Status     string    `db:"status" json:"status"`
	ServerType string    `db:"server_type" json:"server_type"`
	Location   *string   `db:"location" json:"location,omitempty"`
	CPUCores   *int      `db:"cpu_cores" json:"cpu_cores,omitempty"`
	RAMGB      *int      `db:"ram_gb" json:"ram_gb,omitempty"`
	DiskGB     *int      `db:"disk_gb" json:"disk_gb,omitempty"`
	OS         *string   `db:"os" json:"os,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

func (s *Server) GetStatus() ServerStatus {
	return ParseServerStatus(s.Status)
}

type CreateServer struct {
	Name       string  `json:"name" binding:"required"`
	Hostname   string  `json:"hostname" binding:"required"`
	IPAddress  string  `json:"ip_address" binding:"required"`
	ServerType string  `json:"server_type" binding:"required"`
	Location   *string `json:"location"`
	CPUCores   *int    `json:"cpu_cores"`
	RAMGB      *int    `json:"ram_gb"`
	DiskGB     *int    `json:"disk_gb"`
	OS         *string `json:"os"`
}

type UpdateServer struct {
	Name      *string `json:"name"`
	Hostname  *string `json:"hostname"`
	IPAddress *string `json:"ip_address"`
	Status    *string `json:"status"`
	Location  *string `json:"location"`
	CPUCores  *int    `json:"cpu_cores"`
	RAMGB     *int    `json:"ram_gb"`
	DiskGB    *int    `json:"disk_gb"`
	OS        *string `json:"os"`
}

// ServerMetrics is an append-only time-series sample for a server.
type ServerMetrics struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ServerID    uuid.UUID `db:"server_id" json:"server_id"`
	CPUUsage    float32   `db:"cpu_usage" json:"cpu_usage"`
	MemoryUsage float32   `db:"memory_usage" json:"memory_usage"`
	DiskUsage   float32   `db:"disk_usage" json:"disk_usage"`
	NetworkIn   int64     `db:"network_in" json:"network_in"`
	NetworkOut  int64     `db:"network_out" json:"network_out"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}
