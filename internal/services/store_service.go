package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
)

// --- Custom Service Errors for Store ---
var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrStoreValidation = errors.New("store data validation error")
)

// --- Store DTOs ---

type CreateStoreRequest struct {
	Name      string  `json:"store_name" binding:"required"`
	Telephone *string `json:"store_telephone"`
	Email     *string `json:"store_email"`
	Address   *string `json:"store_address"`
	WhatsApp  *string `json:"store_whatsapp"`
}

type UpdateStoreRequest struct {
	Name      *string `json:"store_name"`
	Telephone *string `json:"store_telephone"`
	Email     *string `json:"store_email"`
	Address   *string `json:"store_address"`
	WhatsApp  *string `json:"store_whatsapp"`
}

// --- StoreService Interface ---
type StoreService interface {
	CreateStore(req CreateStoreRequest, actorID int64) (*models.Store, error)
	GetStoreByID(storeID int64) (*models.Store, error)
	GetStores(opts repositories.ListOptions) ([]models.Store, int, error)
	GetAllStores() ([]models.Store, error)
	UpdateStore(storeID int64, req UpdateStoreRequest, actorID int64) (*models.Store, error)
	DeleteStore(storeID int64) error

	AttachCustomer(storeID, customerID int64) error
	DetachCustomer(storeID, customerID int64) error
	GetStoreCustomers(storeID int64, page, pageSize int) ([]models.Customer, int, error)
}

// --- storeService Implementation ---
type storeService struct {
	storeRepo         repositories.StoreRepository
	storeCustomerRepo repositories.StoreCustomerRepository
	db                *sql.DB
}

// NewStoreService creates a new instance of StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, storeCustomerRepo repositories.StoreCustomerRepository, db *sql.DB) StoreService {
	return &storeService{
		storeRepo:         storeRepo,
		storeCustomerRepo: storeCustomerRepo,
		db:                db,
	}
}

// CreateStore creates a store record.
func (s *storeService) CreateStore(req CreateStoreRequest, actorID int64) (*models.Store, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: store name cannot be empty", ErrStoreValidation)
	}

	store := &models.Store{
		Name:      strings.TrimSpace(req.Name),
		Telephone: req.Telephone,
		Email:     req.Email,
		Address:   req.Address,
		WhatsApp:  req.WhatsApp,
		CreatedBy: &actorID,
		UpdatedBy: &actorID,
	}

	if _, err := s.storeRepo.CreateStore(s.db, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}

// GetStoreByID retrieves a store by ID.
func (s *storeService) GetStoreByID(storeID int64) (*models.Store, error) {
	store, err := s.storeRepo.GetStoreByID(storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	return store, nil
}

// GetStores lists stores with pagination and search.
func (s *storeService) GetStores(opts repositories.ListOptions) ([]models.Store, int, error) {
	stores, total, err := s.storeRepo.GetStores(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve stores: %w", err)
	}
	return stores, total, nil
}

// GetAllStores lists every store without pagination, for selection lists.
func (s *storeService) GetAllStores() ([]models.Store, error) {
	stores, err := s.storeRepo.GetAllStores()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stores: %w", err)
	}
	return stores, nil
}

// UpdateStore applies the provided fields to an existing store.
func (s *storeService) UpdateStore(storeID int64, req UpdateStoreRequest, actorID int64) (*models.Store, error) {
	store, err := s.storeRepo.GetStoreByID(storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: store name cannot be empty", ErrStoreValidation)
		}
		store.Name = strings.TrimSpace(*req.Name)
	}
	if req.Telephone != nil {
		store.Telephone = req.Telephone
	}
	if req.Email != nil {
		store.Email = req.Email
	}
	if req.Address != nil {
		store.Address = req.Address
	}
	if req.WhatsApp != nil {
		store.WhatsApp = req.WhatsApp
	}
	store.UpdatedBy = &actorID

	if err := s.storeRepo.UpdateStore(s.db, store); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return store, nil
}

// DeleteStore removes a store and its customer associations.
func (s *storeService) DeleteStore(storeID int64) error {
	if err := s.storeRepo.DeleteStore(s.db, storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStoreNotFound
		}
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}

// AttachCustomer links a customer to a store. Linking twice is a no-op.
func (s *storeService) AttachCustomer(storeID, customerID int64) error {
	if err := s.storeCustomerRepo.Attach(s.db, storeID, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: store or customer does not exist", ErrStoreNotFound)
		}
		return fmt.Errorf("failed to attach customer to store: %w", err)
	}
	return nil
}

// DetachCustomer removes a customer's link to a store.
func (s *storeService) DetachCustomer(storeID, customerID int64) error {
	if err := s.storeCustomerRepo.Detach(s.db, storeID, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("failed to detach customer from store: %w", err)
	}
	return nil
}

// GetStoreCustomers lists a store's linked customers.
func (s *storeService) GetStoreCustomers(storeID int64, page, pageSize int) ([]models.Customer, int, error) {
	if _, err := s.storeRepo.GetStoreByID(storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, 0, ErrStoreNotFound
		}
		return nil, 0, fmt.Errorf("failed to retrieve store: %w", err)
	}
	customers, total, err := s.storeCustomerRepo.GetCustomersForStore(storeID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve store customers: %w", err)
	}
	return customers, total, nil
}
