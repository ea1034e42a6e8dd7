package repository

import (
	"database/sql"
	"errors"
	"time"

	"hostpanel/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type VpsRepository interface {
	Create(vps *models.Vps) error
	GetByID(id uuid.UUID) (*models.Vps, error)
	List() ([]models.Vps, error)
	ListByUser(userID uuid.UUID) ([]models.Vps, error)
	// ListLinked returns rows that carry a remote provider id.
	ListLinked() ([]models.Vps, error)
	Update(vps *models.Vps) error
	// UpdateObserved overwrites only the provider-owned fields (status, IPs)
	// and returns the merged row.
	UpdateObserved(id uuid.UUID, status string, ipv4, ipv6 *string) (*models.Vps, error)
	Delete(id uuid.UUID) (int64, error)
	Count() (int, error)
}

type vpsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVpsRepository(db *sqlx.DB, logger *zap.Logger) VpsRepository {
	return &vpsRepository{db: db, logger: logger}
}

func (r *vpsRepository) Create(vps *models.Vps) error {
	query := `INSERT INTO vps (id, user_id, name, hetzner_id, status, server_type, location, image,
	          ipv4, ipv6, cpu_cores, ram_gb, disk_gb, monthly_cost, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(query, vps.ID, vps.UserID, vps.Name, vps.HetznerID, vps.Status, vps.ServerType,
		vps.Location, vps.Image, vps.IPv4, vps.IPv6, vps.CPUCores, vps.RAMGB, vps.DiskGB,
		vps.MonthlyCost, vps.CreatedAt, vps.UpdatedAt)
	return err
}

func (r *vpsRepository) GetByID(id uuid.UUID) (*models.Vps, error) {
	var vps models.Vps
	err := r.db.Get(&vps, `SELECT * FROM vps WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &vps, nil
}

func (r *vpsRepository) List() ([]models.Vps, error) {
	var vps []models.Vps
	if err := r.db.Select(&vps, `SELECT * FROM vps ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return vps, nil
}

func (r *vpsRepository) ListByUser(userID uuid.UUID) ([]models.Vps, error) {
	var vps []models.Vps
	query := `SELECT * FROM vps WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.Select(&vps, query, userID); err != nil {
		return nil, err
	}
	return vps, nil
}

func (r *vpsRepository) ListLinked() ([]models.Vps, error) {
	var vps []models.Vps
	query := `SELECT * FROM vps WHERE hetzner_id IS NOT NULL ORDER BY created_at DESC`
	if err := r.db.Select(&vps, query); err != nil {
		return nil, err
	}
	return vps, nil
}

func (r *vpsRepository) Update(vps *models.Vps) error {
	query := `UPDATE vps SET name = $1, status = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.Exec(query, vps.Name, vps.Status, vps.UpdatedAt, vps.ID)
	return err
}

func (r *vpsRepository) UpdateObserved(id uuid.UUID, status string, ipv4, ipv6 *string) (*models.Vps, error) {
	var vps models.Vps
	query := `UPDATE vps SET status = $1, ipv4 = $2, ipv6 = $3, updated_at = $4 WHERE id = $5 RETURNING *`
	err := r.db.QueryRowx(query, status, ipv4, ipv6, time.Now().UTC(), id).StructScan(&vps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &vps, nil
}

func (r *vpsRepository) Delete(id uuid.UUID) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM vps WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *vpsRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM vps`); err != nil {
		return 0, err
	}
	return count, nil
}
