package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrSelfDelete is returned when an admin tries to delete their own account.
var ErrSelfDelete = errors.New("cannot delete own account")

// --- User DTOs ---

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	UserLevel string `json:"user_level" binding:"required"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	UserLevel *string `json:"user_level"`
}

// --- UserService Interface ---
type UserService interface {
	CreateUser(req CreateUserRequest) (*models.User, error)
	GetUserByID(userID int64) (*models.User, error)
	GetUsers(opts repositories.ListOptions) ([]models.User, int, error)
	UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID, actorID int64) error
}

// --- userService Implementation ---
type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository, db *sql.DB) UserService {
	return &userService{userRepo: userRepo, db: db}
}

// CreateUser creates an account at any level. Admin only.
func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	if !models.IsValidUserLevel(req.UserLevel) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidUserLevel, req.UserLevel)
	}
	if !utils.IsValidPasswordLength(req.Password, MinPasswordLength) {
		return nil, ErrPasswordTooShort
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashedPasswordBytes),
		UserLevel:    req.UserLevel,
	}

	if _, err := s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			if strings.Contains(err.Error(), "users_email_key") {
				return nil, ErrEmailExists
			}
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// GetUsers lists users with pagination and search.
func (s *userService) GetUsers(opts repositories.ListOptions) ([]models.User, int, error) {
	users, total, err := s.userRepo.GetUsers(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

// UpdateUser applies the provided fields to an existing user.
func (s *userService) UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if req.Username != nil && !utils.IsEmpty(*req.Username) {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil && !utils.IsEmpty(*req.Email) {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.UserLevel != nil {
		if !models.IsValidUserLevel(*req.UserLevel) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidUserLevel, *req.UserLevel)
		}
		user.UserLevel = *req.UserLevel
	}

	if err := s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			if strings.Contains(err.Error(), "users_email_key") {
				return nil, ErrEmailExists
			}
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if req.Password != nil && *req.Password != "" {
		if !utils.IsValidPasswordLength(*req.Password, MinPasswordLength) {
			return nil, ErrPasswordTooShort
		}
		hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.userRepo.UpdatePassword(s.db, userID, string(hashedPasswordBytes)); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *userService) DeleteUser(userID, actorID int64) error {
	if userID == actorID {
		return ErrSelfDelete
	}
	if err := s.userRepo.DeleteUser(s.db, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
