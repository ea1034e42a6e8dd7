package service

import (
	"time"

	"hostpanel/internal/apperr"
	"hostpanel/internal/crypto"
	"hostpanel/internal/models"
	"hostpanel/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	List() ([]models.User, error)
	Get(id uuid.UUID) (*models.User, error)
	Create(payload models.CreateUser) (*models.User, error)
	Update(id uuid.UUID, payload models.UpdateUser) (*models.User, error)
	Delete(id uuid.UUID) error
}

type userService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) List() ([]models.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return users, nil
}

func (s *userService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return user, nil
}

func (s *userService) Create(payload models.CreateUser) (*models.User, error) {
	existing, err := s.users.GetByEmail(payload.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.BadRequest, "email already exists")
	}

	passwordHash, err := crypto.HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	role := models.RoleUser
	if payload.Role != nil {
		role = models.ParseUserRole(*payload.Role)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        payload.Email,
		PasswordHash: passwordHash,
		Role:         string(role),
		Company:      payload.Company,
		MFAEnabled:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, apperr.New(apperr.BadRequest, "email already exists")
		}
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return user, nil
}

// Update is a read-modify-write in two round trips; concurrent updates to the
// same row are last-writer-wins.
func (s *userService) Update(id uuid.UUID, payload models.UpdateUser) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Company != nil {
		user.Company = payload.Company
	}
	if payload.Timezone != nil {
		user.Timezone = payload.Timezone
	}
	if payload.AvatarURL != nil {
		user.AvatarURL = payload.AvatarURL
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, apperr.New(apperr.BadRequest, "email already exists")
		}
		return nil, apperr.Wrap(apperr.Database, "database error", err)
	}
	return user, nil
}

func (s *userService) Delete(id uuid.UUID) error {
	rows, err := s.users.Delete(id)
	if err != nil {
		return apperr.Wrap(apperr.Database, "database error", err)
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}
