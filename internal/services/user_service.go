package services

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

// UserService manages collaborator accounts within an establishment.
// Account creation goes through AuthService.Register.
type UserService struct {
	db       *sql.DB
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, userRepo repositories.UserRepository) *UserService {
	return &UserService{db: db, userRepo: userRepo}
}

// GetUsers lists the establishment's accounts.
func (s *UserService) GetUsers(establishmentID int64) ([]models.User, error) {
	return s.userRepo.GetUsersByEstablishment(establishmentID)
}

// UpdateUserRequest edits profile fields; a non-empty password rotates the
// hash.
type UpdateUserRequest struct {
	Name     *string `json:"nome"`
	Phone    *string `json:"telefone"`
	Role     *string `json:"role"`
	Password string  `json:"password"`
}

// UpdateUser applies profile edits to an account of the given establishment.
func (s *UserService) UpdateUser(establishmentID, id int64, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.EstablishmentID == nil || *user.EstablishmentID != establishmentID {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) || *req.Role == models.RoleSuperAdmin {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err = s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account of the given establishment.
func (s *UserService) DeleteUser(establishmentID, id int64) error {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.EstablishmentID == nil || *user.EstablishmentID != establishmentID {
		return ErrUserNotFound
	}
	err = s.userRepo.DeleteUser(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
