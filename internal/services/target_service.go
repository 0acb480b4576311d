package services

import (
	"database/sql"
	"errors"
	"fmt"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Target ---
var (
	ErrTargetNotFound   = errors.New("revenue target not found")
	ErrTargetValidation = errors.New("target data validation error")
)

// --- Target DTOs ---

type SetTargetRequest struct {
	Month  int             `json:"target_month" binding:"required"`
	Year   int             `json:"target_year" binding:"required"`
	Amount decimal.Decimal `json:"target_amount" binding:"required"`
}

// --- TargetService Interface ---
type TargetService interface {
	SetTarget(storeID int64, req SetTargetRequest, actorID int64) (*models.StoreRevenueTarget, error)
	GetTargetsForStore(storeID int64, year int) ([]models.StoreRevenueTarget, error)
	GetTargetAchievement(storeID int64, year, month int) (*models.TargetAchievement, error)
	DeleteTarget(storeID, targetID int64) error
}

// --- targetService Implementation ---
type targetService struct {
	targetRepo  repositories.TargetRepository
	storeRepo   repositories.StoreRepository
	revenueRepo repositories.RevenueRepository
	db          *sql.DB
}

// NewTargetService creates a new instance of TargetService.
func NewTargetService(
	targetRepo repositories.TargetRepository,
	storeRepo repositories.StoreRepository,
	revenueRepo repositories.RevenueRepository,
	db *sql.DB,
) TargetService {
	return &targetService{
		targetRepo:  targetRepo,
		storeRepo:   storeRepo,
		revenueRepo: revenueRepo,
		db:          db,
	}
}

func validateTargetPeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrTargetValidation)
	}
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%w: year is out of range", ErrTargetValidation)
	}
	return nil
}

// SetTarget creates or replaces a store's target for a month.
func (s *targetService) SetTarget(storeID int64, req SetTargetRequest, actorID int64) (*models.StoreRevenueTarget, error) {
	if err := validateTargetPeriod(req.Year, req.Month); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: target amount cannot be negative", ErrTargetValidation)
	}

	if _, err := s.storeRepo.GetStoreByID(storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}

	target := &models.StoreRevenueTarget{
		StoreID:   storeID,
		Month:     req.Month,
		Year:      req.Year,
		Amount:    req.Amount,
		CreatedBy: &actorID,
		UpdatedBy: &actorID,
	}

	if _, err := s.targetRepo.UpsertTarget(s.db, target); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to set target: %w", err)
	}
	return target, nil
}

// GetTargetsForStore lists a store's targets for a year.
func (s *targetService) GetTargetsForStore(storeID int64, year int) ([]models.StoreRevenueTarget, error) {
	if _, err := s.storeRepo.GetStoreByID(storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	targets, err := s.targetRepo.GetTargetsForStoreByYear(storeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve targets: %w", err)
	}
	return targets, nil
}

// GetTargetAchievement computes how a store's month tracks against its target.
// A store without a target for the month gets a zero percentage.
func (s *targetService) GetTargetAchievement(storeID int64, year, month int) (*models.TargetAchievement, error) {
	if err := validateTargetPeriod(year, month); err != nil {
		return nil, err
	}
	if _, err := s.storeRepo.GetStoreByID(storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}

	accumulated, err := s.revenueRepo.GetMonthlyNetRevenue(storeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly net revenue: %w", err)
	}
	target, err := s.targetRepo.GetTargetByStoreAndDate(storeID, year, month)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to retrieve target: %w", err)
	}

	achievement := ComputeAchievement(target, accumulated)
	return &achievement, nil
}

// DeleteTarget removes a target. The target must belong to the given store.
func (s *targetService) DeleteTarget(storeID, targetID int64) error {
	target, err := s.targetRepo.GetTargetByID(targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to retrieve target: %w", err)
	}
	if target.StoreID != storeID {
		return ErrTargetNotFound
	}

	if err := s.targetRepo.DeleteTarget(s.db, targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to delete target: %w", err)
	}
	return nil
}
