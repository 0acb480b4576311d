package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
)

// ErrRevenueTypeExists is returned when a revenue type name is already taken.
var ErrRevenueTypeExists = errors.New("revenue type name already exists")

// --- RevenueType DTOs ---

type CreateRevenueTypeRequest struct {
	Name     string `json:"revenue_type_name" binding:"required"`
	Category string `json:"revenue_type_category" binding:"required"`
}

type UpdateRevenueTypeRequest struct {
	Name     *string `json:"revenue_type_name"`
	Category *string `json:"revenue_type_category"`
}

// --- RevenueTypeService Interface ---
type RevenueTypeService interface {
	CreateRevenueType(req CreateRevenueTypeRequest, actorID int64) (*models.RevenueType, error)
	GetRevenueTypeByID(typeID int64) (*models.RevenueType, error)
	GetRevenueTypes(opts repositories.ListOptions) ([]models.RevenueType, int, error)
	GetAllRevenueTypes() ([]models.RevenueType, error)
	SearchRevenueTypes(query string) ([]models.RevenueType, error)
	UpdateRevenueType(typeID int64, req UpdateRevenueTypeRequest, actorID int64) (*models.RevenueType, error)
	DeleteRevenueType(typeID int64) error
}

// --- revenueTypeService Implementation ---
type revenueTypeService struct {
	revenueTypeRepo repositories.RevenueTypeRepository
	db              *sql.DB
}

// NewRevenueTypeService creates a new instance of RevenueTypeService.
func NewRevenueTypeService(revenueTypeRepo repositories.RevenueTypeRepository, db *sql.DB) RevenueTypeService {
	return &revenueTypeService{revenueTypeRepo: revenueTypeRepo, db: db}
}

// CreateRevenueType creates a revenue type. The category must be Addition or
// Deduction.
func (s *revenueTypeService) CreateRevenueType(req CreateRevenueTypeRequest, actorID int64) (*models.RevenueType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: revenue type name cannot be empty", ErrRevenueValidation)
	}
	if !models.IsValidRevenueCategory(req.Category) {
		return nil, fmt.Errorf("%w: category must be '%s' or '%s'", ErrRevenueValidation, models.CategoryAddition, models.CategoryDeduction)
	}

	revenueType := &models.RevenueType{
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		CreatedBy: &actorID,
		UpdatedBy: &actorID,
	}

	if _, err := s.revenueTypeRepo.CreateRevenueType(s.db, revenueType); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrRevenueTypeExists
		}
		return nil, fmt.Errorf("failed to create revenue type: %w", err)
	}
	return revenueType, nil
}

// GetRevenueTypeByID retrieves a revenue type by ID.
func (s *revenueTypeService) GetRevenueTypeByID(typeID int64) (*models.RevenueType, error) {
	revenueType, err := s.revenueTypeRepo.GetRevenueTypeByID(typeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueTypeNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue type: %w", err)
	}
	return revenueType, nil
}

// GetRevenueTypes lists revenue types with pagination and search.
func (s *revenueTypeService) GetRevenueTypes(opts repositories.ListOptions) ([]models.RevenueType, int, error) {
	revenueTypes, total, err := s.revenueTypeRepo.GetRevenueTypes(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve revenue types: %w", err)
	}
	return revenueTypes, total, nil
}

// GetAllRevenueTypes lists every revenue type, for selection lists.
func (s *revenueTypeService) GetAllRevenueTypes() ([]models.RevenueType, error) {
	revenueTypes, err := s.revenueTypeRepo.GetAllRevenueTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve revenue types: %w", err)
	}
	return revenueTypes, nil
}

// SearchRevenueTypes performs the autocomplete lookup over name and category.
func (s *revenueTypeService) SearchRevenueTypes(query string) ([]models.RevenueType, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.RevenueType{}, nil
	}
	revenueTypes, err := s.revenueTypeRepo.SearchRevenueTypes(query, SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search revenue types: %w", err)
	}
	return revenueTypes, nil
}

// UpdateRevenueType applies the provided fields to an existing revenue type.
func (s *revenueTypeService) UpdateRevenueType(typeID int64, req UpdateRevenueTypeRequest, actorID int64) (*models.RevenueType, error) {
	revenueType, err := s.revenueTypeRepo.GetRevenueTypeByID(typeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueTypeNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue type: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: revenue type name cannot be empty", ErrRevenueValidation)
		}
		revenueType.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !models.IsValidRevenueCategory(*req.Category) {
			return nil, fmt.Errorf("%w: category must be '%s' or '%s'", ErrRevenueValidation, models.CategoryAddition, models.CategoryDeduction)
		}
		revenueType.Category = *req.Category
	}
	revenueType.UpdatedBy = &actorID

	if err := s.revenueTypeRepo.UpdateRevenueType(s.db, revenueType); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrRevenueTypeExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueTypeNotFound
		}
		return nil, fmt.Errorf("failed to update revenue type: %w", err)
	}
	return revenueType, nil
}

// DeleteRevenueType removes a revenue type unless revenue items reference it.
func (s *revenueTypeService) DeleteRevenueType(typeID int64) error {
	if err := s.revenueTypeRepo.DeleteRevenueType(s.db, typeID); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return ErrRevenueTypeInUse
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRevenueTypeNotFound
		}
		return fmt.Errorf("failed to delete revenue type: %w", err)
	}
	return nil
}
