package repository

import (
	"database/sql"
	"errors"

	"hostpanel/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateEmail is returned when an insert hits the unique constraint on
// users.email. The pre-insert existence check in the service is racy; the
// constraint is what actually guarantees uniqueness.
var ErrDuplicateEmail = errors.New("email already exists")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) (int64, error)
	Count() (int, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewUserRepository(db *sqlx.DB, log *logrus.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

func (r *userRepository) Create(user *models.User) error {
	query := `INSERT INTO users (id, email, password_hash, role, company, timezone, avatar_url, mfa_enabled, mfa_secret, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(query, user.ID, user.Email, user.PasswordHash, user.Role, user.Company,
		user.Timezone, user.AvatarURL, user.MFAEnabled, user.MFASecret, user.CreatedAt, user.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	query := `SELECT * FROM users ORDER BY created_at DESC`
	if err := r.db.Select(&users, query); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(user *models.User) error {
	query := `UPDATE users SET email = $1, company = $2, timezone = $3, avatar_url = $4, updated_at = $5 WHERE id = $6`
	_, err := r.db.Exec(query, user.Email, user.Company, user.Timezone, user.AvatarURL, user.UpdatedAt, user.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) Delete(id uuid.UUID) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *userRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, err
	}
	return count, nil
}
