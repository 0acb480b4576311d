package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Revenue ---
var (
	ErrRevenueNotFound       = errors.New("revenue record not found")
	ErrRevenueExists         = errors.New("a revenue record already exists for this store and date")
	ErrRevenueValidation     = errors.New("revenue data validation error")
	ErrRevenueItemNotFound   = errors.New("revenue item not found")
	ErrComplimentNotFound    = errors.New("revenue compliment not found")
	ErrRevenueTypeNotFound   = errors.New("revenue type not found")
	ErrRevenueTypeInUse      = errors.New("revenue type is referenced by revenue items")
	ErrItemRevenueMismatch   = errors.New("item does not belong to the given revenue record")
	ErrRevenueDateFormat     = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrNegativeItemAmount    = errors.New("item amount cannot be negative")
)

// RevenueDateLayout is the wire format for revenue dates.
const RevenueDateLayout = "2006-01-02"

// --- Revenue DTOs ---

type CreateRevenueRequest struct {
	StoreID int64   `json:"store_id" binding:"required"`
	Date    string  `json:"revenue_date" binding:"required"` // Format YYYY-MM-DD
	Guests  *int    `json:"revenue_guests"`
	Notes   *string `json:"revenue_notes"`
}

type UpdateRevenueRequest struct {
	StoreID *int64  `json:"store_id"`
	Date    *string `json:"revenue_date"` // Format YYYY-MM-DD
	Guests  *int    `json:"revenue_guests"`
	Notes   *string `json:"revenue_notes"`
}

type CreateRevenueItemRequest struct {
	RevenueTypeID int64           `json:"revenue_type_id" binding:"required"`
	Amount        decimal.Decimal `json:"revenue_item_amount" binding:"required"`
}

type UpdateRevenueItemRequest struct {
	RevenueTypeID *int64           `json:"revenue_type_id"`
	Amount        *decimal.Decimal `json:"revenue_item_amount"`
}

type CreateComplimentRequest struct {
	Description string  `json:"revenue_compliment_description" binding:"required"`
	For         *string `json:"revenue_compliment_for"`
}

type UpdateComplimentRequest struct {
	Description *string `json:"revenue_compliment_description"`
	For         *string `json:"revenue_compliment_for"`
}

// RevenueDetail is the full read model of a revenue record: the record, its
// line items and compliments, its totals, and how the month tracks against
// the store's target.
type RevenueDetail struct {
	Revenue     *models.Revenue            `json:"revenue"`
	Items       []models.RevenueItem       `json:"items"`
	Compliments []models.RevenueCompliment `json:"compliments"`
	Totals      *models.RevenueTotals      `json:"totals"`
	Achievement models.TargetAchievement   `json:"achievement"`
}

// --- RevenueService Interface ---
type RevenueService interface {
	CreateRevenue(req CreateRevenueRequest, actorID int64) (*models.Revenue, error)
	GetRevenueDetail(revenueID int64) (*RevenueDetail, error)
	GetRevenues(opts repositories.ListOptions) ([]models.Revenue, int, error)
	UpdateRevenue(revenueID int64, req UpdateRevenueRequest, actorID int64) (*models.Revenue, error)
	DeleteRevenue(revenueID int64) error

	AddItem(revenueID int64, req CreateRevenueItemRequest, actorID int64) (*models.RevenueItem, error)
	UpdateItem(revenueID, itemID int64, req UpdateRevenueItemRequest, actorID int64) (*models.RevenueItem, error)
	DeleteItem(revenueID, itemID int64) error

	AddCompliment(revenueID int64, req CreateComplimentRequest, actorID int64) (*models.RevenueCompliment, error)
	UpdateCompliment(revenueID, complimentID int64, req UpdateComplimentRequest, actorID int64) (*models.RevenueCompliment, error)
	DeleteCompliment(revenueID, complimentID int64) error

	SendWhatsAppReport(revenueID int64) (*WhatsAppStatus, error)
}

// --- revenueService Implementation ---
type revenueService struct {
	revenueRepo     repositories.RevenueRepository
	revenueTypeRepo repositories.RevenueTypeRepository
	storeRepo       repositories.StoreRepository
	targetRepo      repositories.TargetRepository
	whatsappService WhatsAppService
	db              *sql.DB
}

// NewRevenueService creates a new instance of RevenueService.
func NewRevenueService(
	revenueRepo repositories.RevenueRepository,
	revenueTypeRepo repositories.RevenueTypeRepository,
	storeRepo repositories.StoreRepository,
	targetRepo repositories.TargetRepository,
	whatsappService WhatsAppService,
	db *sql.DB,
) RevenueService {
	return &revenueService{
		revenueRepo:     revenueRepo,
		revenueTypeRepo: revenueTypeRepo,
		storeRepo:       storeRepo,
		targetRepo:      targetRepo,
		whatsappService: whatsappService,
		db:              db,
	}
}

func parseRevenueDate(value string) (time.Time, error) {
	date, err := time.Parse(RevenueDateLayout, value)
	if err != nil {
		return time.Time{}, ErrRevenueDateFormat
	}
	return date, nil
}

// CreateRevenue creates a daily revenue record for a store. One per store per date.
func (s *revenueService) CreateRevenue(req CreateRevenueRequest, actorID int64) (*models.Revenue, error) {
	date, err := parseRevenueDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Guests != nil && *req.Guests < 0 {
		return nil, fmt.Errorf("%w: guest count cannot be negative", ErrRevenueValidation)
	}

	if _, err := s.storeRepo.GetStoreByID(req.StoreID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}

	revenue := &models.Revenue{
		StoreID:   req.StoreID,
		Date:      date,
		Guests:    req.Guests,
		Notes:     req.Notes,
		CreatedBy: &actorID,
		UpdatedBy: &actorID,
	}

	if _, err := s.revenueRepo.CreateRevenue(s.db, revenue); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrRevenueExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to create revenue: %w", err)
	}

	stored, err := s.revenueRepo.GetRevenueByID(revenue.ID)
	if err != nil {
		return revenue, nil
	}
	return stored, nil
}

// GetRevenueDetail assembles the full read model for a revenue record.
func (s *revenueService) GetRevenueDetail(revenueID int64) (*RevenueDetail, error) {
	revenue, err := s.revenueRepo.GetRevenueByID(revenueID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue: %w", err)
	}

	items, err := s.revenueRepo.GetRevenueItems(revenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve revenue items: %w", err)
	}
	compliments, err := s.revenueRepo.GetRevenueCompliments(revenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve revenue compliments: %w", err)
	}
	totals, err := s.revenueRepo.GetRevenueTotals(revenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to total revenue: %w", err)
	}

	year, month := revenue.Date.Year(), int(revenue.Date.Month())
	accumulated, err := s.revenueRepo.GetMonthlyNetRevenue(revenue.StoreID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly net revenue: %w", err)
	}
	target, err := s.targetRepo.GetTargetByStoreAndDate(revenue.StoreID, year, month)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to retrieve target: %w", err)
	}

	return &RevenueDetail{
		Revenue:     revenue,
		Items:       items,
		Compliments: compliments,
		Totals:      totals,
		Achievement: ComputeAchievement(target, accumulated),
	}, nil
}

// GetRevenues lists revenue records with pagination and search.
func (s *revenueService) GetRevenues(opts repositories.ListOptions) ([]models.Revenue, int, error) {
	revenues, total, err := s.revenueRepo.GetRevenues(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve revenues: %w", err)
	}
	return revenues, total, nil
}

// UpdateRevenue applies the provided fields to an existing revenue record.
func (s *revenueService) UpdateRevenue(revenueID int64, req UpdateRevenueRequest, actorID int64) (*models.Revenue, error) {
	revenue, err := s.revenueRepo.GetRevenueByID(revenueID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue: %w", err)
	}

	if req.Date != nil {
		date, err := parseRevenueDate(*req.Date)
		if err != nil {
			return nil, err
		}
		revenue.Date = date
	}
	if req.StoreID != nil {
		if _, err := s.storeRepo.GetStoreByID(*req.StoreID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrStoreNotFound
			}
			return nil, fmt.Errorf("failed to retrieve store: %w", err)
		}
		revenue.StoreID = *req.StoreID
	}
	if req.Guests != nil {
		if *req.Guests < 0 {
			return nil, fmt.Errorf("%w: guest count cannot be negative", ErrRevenueValidation)
		}
		revenue.Guests = req.Guests
	}
	if req.Notes != nil {
		revenue.Notes = req.Notes
	}
	revenue.UpdatedBy = &actorID

	if err := s.revenueRepo.UpdateRevenue(s.db, revenue); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrRevenueExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, fmt.Errorf("failed to update revenue: %w", err)
	}

	stored, err := s.revenueRepo.GetRevenueByID(revenueID)
	if err != nil {
		return revenue, nil
	}
	return stored, nil
}

// DeleteRevenue removes a revenue record with its items and compliments.
func (s *revenueService) DeleteRevenue(revenueID int64) error {
	if err := s.revenueRepo.DeleteRevenue(s.db, revenueID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRevenueNotFound
		}
		return fmt.Errorf("failed to delete revenue: %w", err)
	}
	return nil
}

func (s *revenueService) checkRevenueExists(revenueID int64) error {
	if _, err := s.revenueRepo.GetRevenueByID(revenueID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRevenueNotFound
		}
		return fmt.Errorf("failed to retrieve revenue: %w", err)
	}
	return nil
}

// AddItem attaches a typed line item to a revenue record.
func (s *revenueService) AddItem(revenueID int64, req CreateRevenueItemRequest, actorID int64) (*models.RevenueItem, error) {
	if req.Amount.IsNegative() {
		return nil, ErrNegativeItemAmount
	}
	if err := s.checkRevenueExists(revenueID); err != nil {
		return nil, err
	}
	if _, err := s.revenueTypeRepo.GetRevenueTypeByID(req.RevenueTypeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueTypeNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue type: %w", err)
	}

	item := &models.RevenueItem{
		RevenueID:     revenueID,
		RevenueTypeID: req.RevenueTypeID,
		Amount:        req.Amount,
		CreatedBy:     &actorID,
		UpdatedBy:     &actorID,
	}

	if _, err := s.revenueRepo.CreateRevenueItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueTypeNotFound
		}
		return nil, fmt.Errorf("failed to create revenue item: %w", err)
	}

	stored, err := s.revenueRepo.GetRevenueItemByID(item.ID)
	if err != nil {
		return item, nil
	}
	return stored, nil
}

func (s *revenueService) getOwnedItem(revenueID, itemID int64) (*models.RevenueItem, error) {
	item, err := s.revenueRepo.GetRevenueItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueItemNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue item: %w", err)
	}
	if item.RevenueID != revenueID {
		return nil, ErrItemRevenueMismatch
	}
	return item, nil
}

// UpdateItem modifies a line item, verifying it belongs to the revenue record.
func (s *revenueService) UpdateItem(revenueID, itemID int64, req UpdateRevenueItemRequest, actorID int64) (*models.RevenueItem, error) {
	item, err := s.getOwnedItem(revenueID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrNegativeItemAmount
		}
		item.Amount = *req.Amount
	}
	if req.RevenueTypeID != nil {
		if _, err := s.revenueTypeRepo.GetRevenueTypeByID(*req.RevenueTypeID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrRevenueTypeNotFound
			}
			return nil, fmt.Errorf("failed to retrieve revenue type: %w", err)
		}
		item.RevenueTypeID = *req.RevenueTypeID
	}
	item.UpdatedBy = &actorID

	if err := s.revenueRepo.UpdateRevenueItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueItemNotFound
		}
		return nil, fmt.Errorf("failed to update revenue item: %w", err)
	}

	stored, err := s.revenueRepo.GetRevenueItemByID(itemID)
	if err != nil {
		return item, nil
	}
	return stored, nil
}

// DeleteItem removes a line item, verifying it belongs to the revenue record.
func (s *revenueService) DeleteItem(revenueID, itemID int64) error {
	if _, err := s.getOwnedItem(revenueID, itemID); err != nil {
		return err
	}
	if err := s.revenueRepo.DeleteRevenueItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRevenueItemNotFound
		}
		return fmt.Errorf("failed to delete revenue item: %w", err)
	}
	return nil
}

// AddCompliment attaches a compliment to a revenue record.
func (s *revenueService) AddCompliment(revenueID int64, req CreateComplimentRequest, actorID int64) (*models.RevenueCompliment, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: compliment description cannot be empty", ErrRevenueValidation)
	}
	if err := s.checkRevenueExists(revenueID); err != nil {
		return nil, err
	}

	compliment := &models.RevenueCompliment{
		RevenueID:   revenueID,
		Description: strings.TrimSpace(req.Description),
		For:         req.For,
		CreatedBy:   &actorID,
		UpdatedBy:   &actorID,
	}

	if _, err := s.revenueRepo.CreateRevenueCompliment(s.db, compliment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, fmt.Errorf("failed to create revenue compliment: %w", err)
	}
	return compliment, nil
}

func (s *revenueService) getOwnedCompliment(revenueID, complimentID int64) (*models.RevenueCompliment, error) {
	compliment, err := s.revenueRepo.GetRevenueComplimentByID(complimentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrComplimentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue compliment: %w", err)
	}
	if compliment.RevenueID != revenueID {
		return nil, ErrItemRevenueMismatch
	}
	return compliment, nil
}

// UpdateCompliment modifies a compliment, verifying it belongs to the revenue record.
func (s *revenueService) UpdateCompliment(revenueID, complimentID int64, req UpdateComplimentRequest, actorID int64) (*models.RevenueCompliment, error) {
	compliment, err := s.getOwnedCompliment(revenueID, complimentID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: compliment description cannot be empty", ErrRevenueValidation)
		}
		compliment.Description = strings.TrimSpace(*req.Description)
	}
	if req.For != nil {
		compliment.For = req.For
	}
	compliment.UpdatedBy = &actorID

	if err := s.revenueRepo.UpdateRevenueCompliment(s.db, compliment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrComplimentNotFound
		}
		return nil, fmt.Errorf("failed to update revenue compliment: %w", err)
	}
	return compliment, nil
}

// DeleteCompliment removes a compliment, verifying it belongs to the revenue record.
func (s *revenueService) DeleteCompliment(revenueID, complimentID int64) error {
	if _, err := s.getOwnedCompliment(revenueID, complimentID); err != nil {
		return err
	}
	if err := s.revenueRepo.DeleteRevenueCompliment(s.db, complimentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrComplimentNotFound
		}
		return fmt.Errorf("failed to delete revenue compliment: %w", err)
	}
	return nil
}

// SendWhatsAppReport sends the daily report for a revenue record to its store.
func (s *revenueService) SendWhatsAppReport(revenueID int64) (*WhatsAppStatus, error) {
	return s.whatsappService.SendDailyRevenueReport(revenueID)
}
