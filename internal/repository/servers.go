package repository

import (
	"database/sql"
	"errors"

	"hostpanel/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ServerRepository interface {
	Create(server *models.Server) error
	GetByID(id uuid.UUID) (*models.Server, error)
	List() ([]models.Server, error)
	Update(server *models.Server) error
	Delete(id uuid.UUID) (int64, error)
	Count() (int, error)
	// ListMetrics returns the latest 100 samples for a server, newest first.
	ListMetrics(serverID uuid.UUID) ([]models.ServerMetrics, error)
}

type serverRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServerRepository(db *sqlx.DB, logger *zap.Logger) ServerRepository {
	return &serverRepository{db: db, logger: logger}
}

func (r *serverRepository) Create(server *models.Server) error {
	query := `INSERT INTO servers (id, user_id, name, hostname, ip_address, status, server_type, location, cpu_cores, ram_gb, disk_gb, os, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(query, server.ID, server.UserID, server.Name, server.Hostname, server.IPAddress,
		server.Status, server.ServerType, server.Location, server.CPUCores, server.RAMGB, server.DiskGB,
		server.OS, server.CreatedAt, server.UpdatedAt)
	return err
}

func (r *serverRepository) GetByID(id uuid.UUID) (*models.Server, error) {
	var server models.Server
	err := r.db.Get(&server, `SELECT * FROM servers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &server, nil
}

func (r *serverRepository) List() ([]models.Server, error) {
	var servers []models.Server
	if err := r.db.Select(&servers, `SELECT * FROM servers ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return servers, nil
}

func (r *serverRepository) Update(server *models.Server) error {
	query := `UPDATE servers SET name = $1, hostname = $2, ip_address = $3, status = $4, location = $5,
	          cpu_cores = $6, ram_gb = $7, disk_gb = $8, os = $9, updated_at = $10 WHERE id = $11`
	_, err := r.db.Exec(query, server.Name, server.Hostname, server.IPAddress, server.Status,
		server.Location, server.CPUCores, server.RAMGB, server.DiskGB, server.OS, server.UpdatedAt, server.ID)
	return err
}

func (r *serverRepository) Delete(id uuid.UUID) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM servers WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *serverRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM servers`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *serverRepository) ListMetrics(serverID uuid.UUID) ([]models.ServerMetrics, error) {
	var metrics []models.ServerMetrics
	query := `SELECT * FROM server_metrics WHERE server_id = $1 ORDER BY timestamp DESC LIMIT 100`
	if err := r.db.Select(&metrics, query, serverID); err != nil {
		return nil, err
	}
	return metrics, nil
}
