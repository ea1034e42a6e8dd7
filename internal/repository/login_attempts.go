package repository

import (
	"hostpanel/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type LoginAttemptRepository interface {
	Record(attempt *models.LoginAttempt) error
}

type loginAttemptRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewLoginAttemptRepository(db *sqlx.DB, log *logrus.Logger) LoginAttemptRepository {
	return &loginAttemptRepository{db: db, log: log}
}

func (r *loginAttemptRepository) Record(attempt *models.LoginAttempt) error {
	query := `INSERT INTO login_attempts (id, email, ip_address, success, attempted_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, attempt.ID, attempt.Email, attempt.IPAddress, attempt.Success, attempt.AttemptedAt)
	return err
}
