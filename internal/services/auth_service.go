package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
	"facilicar_backend/pkg/utils"
)

var (
	ErrEmailTaken            = errors.New("email is already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrUserNotFound          = errors.New("user not found")
	ErrCollaboratorLimit     = errors.New("collaborator limit reached for establishment")
	ErrInvalidRole           = errors.New("invalid role")
	ErrEstablishmentRequired = errors.New("establishment is required for non super admin users")
)

// AuthService handles registration, login, token refresh and profile reads.
type AuthService struct {
	db       *sql.DB
	userRepo repositories.UserRepository
	estRepo  repositories.EstablishmentRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, userRepo repositories.UserRepository, estRepo repositories.EstablishmentRepository) *AuthService {
	return &AuthService{db: db, userRepo: userRepo, estRepo: estRepo}
}

// RegisterRequest is the payload for creating a user account.
type RegisterRequest struct {
	Name            string `json:"nome" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"telefone"`
	Password        string `json:"password" binding:"required"`
	Role            string `json:"role"`
	EstablishmentID *int64 `json:"establishment_id"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// Register creates a user account. Collaborator accounts are capped by the
// establishment's max_collaborators setting.
func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidCredentials)
	}
	if !utils.IsValidPasswordLength(req.Password, 6) {
		return nil, fmt.Errorf("%w: password too short", ErrInvalidCredentials)
	}

	role := req.Role
	if role == "" {
		role = models.RoleColaborador
	}
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if role != models.RoleSuperAdmin && req.EstablishmentID == nil {
		return nil, ErrEstablishmentRequired
	}

	if _, err := s.userRepo.GetUserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if role == models.RoleColaborador && req.EstablishmentID != nil {
		establishment, err := s.estRepo.GetEstablishmentByID(*req.EstablishmentID)
		if err != nil {
			return nil, err
		}
		count, err := s.userRepo.CountCollaborators(*req.EstablishmentID)
		if err != nil {
			return nil, err
		}
		if establishment.MaxCollaborators > 0 && count >= establishment.MaxCollaborators {
			return nil, ErrCollaboratorLimit
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:           email,
		PasswordHash:    string(hash),
		Role:            role,
		IsSuperAdmin:    role == models.RoleSuperAdmin,
		EstablishmentID: req.EstablishmentID,
	}
	if req.Name != "" {
		user.Name = &req.Name
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if _, err = s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(req LoginRequest) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return s.issueTokens(user)
}

// GetProfile returns the authenticated user's profile.
func (s *AuthService) GetProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}
