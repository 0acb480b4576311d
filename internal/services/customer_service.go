package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/pkg/utils"
)

// --- Custom Service Errors for Customer ---
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerCodeExists = errors.New("customer code already exists")
	ErrCustomerValidation = errors.New("customer data validation error")
)

// SearchResultLimit caps the autocomplete search result size.
const SearchResultLimit = 10

// --- Customer DTOs ---

type CreateCustomerRequest struct {
	Name         string  `json:"customer_name" binding:"required"`
	Code         *string `json:"customer_code"`
	IsMember     bool    `json:"customer_is_member"`
	Organization *string `json:"customer_organization"`
	Telephone    *string `json:"customer_telephone"`
	Email        *string `json:"customer_email"`
	Address      *string `json:"customer_address"`
	WhatsApp     *string `json:"customer_whatsapp"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"customer_name"`
	Code         *string `json:"customer_code"`
	IsMember     *bool   `json:"customer_is_member"`
	Organization *string `json:"customer_organization"`
	Telephone    *string `json:"customer_telephone"`
	Email        *string `json:"customer_email"`
	Address      *string `json:"customer_address"`
	WhatsApp     *string `json:"customer_whatsapp"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	CreateCustomer(req CreateCustomerRequest, actorID int64) (*models.Customer, error)
	GetCustomerByID(customerID int64) (*models.Customer, error)
	GetCustomers(opts repositories.ListOptions) ([]models.Customer, int, error)
	SearchCustomers(query string) ([]models.CustomerSummary, error)
	UpdateCustomer(customerID int64, req UpdateCustomerRequest, actorID int64) (*models.Customer, error)
	DeleteCustomer(customerID int64) error
	GetCustomerStores(customerID int64, page, pageSize int) ([]models.Store, int, error)
	AttachStore(customerID, storeID int64) error
	DetachStore(customerID, storeID int64) error
}

// --- customerService Implementation ---
type customerService struct {
	customerRepo      repositories.CustomerRepository
	storeCustomerRepo repositories.StoreCustomerRepository
	db                *sql.DB
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(customerRepo repositories.CustomerRepository, storeCustomerRepo repositories.StoreCustomerRepository, db *sql.DB) CustomerService {
	return &customerService{
		customerRepo:      customerRepo,
		storeCustomerRepo: storeCustomerRepo,
		db:                db,
	}
}

func validateCustomerEmail(email *string) error {
	if email != nil && *email != "" && !utils.IsValidEmail(*email) {
		return fmt.Errorf("%w: email format is invalid", ErrCustomerValidation)
	}
	return nil
}

// CreateCustomer creates a customer record.
func (s *customerService) CreateCustomer(req CreateCustomerRequest, actorID int64) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: customer name cannot be empty", ErrCustomerValidation)
	}
	if err := validateCustomerEmail(req.Email); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:         strings.TrimSpace(req.Name),
		Code:         req.Code,
		IsMember:     req.IsMember,
		Organization: req.Organization,
		Telephone:    req.Telephone,
		Email:        req.Email,
		Address:      req.Address,
		WhatsApp:     req.WhatsApp,
		CreatedBy:    &actorID,
		UpdatedBy:    &actorID,
	}

	if _, err := s.customerRepo.CreateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCustomerCodeExists
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// GetCustomerByID retrieves a customer by ID.
func (s *customerService) GetCustomerByID(customerID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	return customer, nil
}

// GetCustomers lists customers with pagination and search.
func (s *customerService) GetCustomers(opts repositories.ListOptions) ([]models.Customer, int, error) {
	customers, total, err := s.customerRepo.GetCustomers(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return customers, total, nil
}

// SearchCustomers performs the autocomplete lookup over name, code and telephone.
// An empty query returns an empty result rather than the full table.
func (s *customerService) SearchCustomers(query string) ([]models.CustomerSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.CustomerSummary{}, nil
	}
	results, err := s.customerRepo.SearchCustomers(query, SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return results, nil
}

// UpdateCustomer applies the provided fields to an existing customer.
func (s *customerService) UpdateCustomer(customerID int64, req UpdateCustomerRequest, actorID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: customer name cannot be empty", ErrCustomerValidation)
		}
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if err := validateCustomerEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Code != nil {
		customer.Code = req.Code
	}
	if req.IsMember != nil {
		customer.IsMember = *req.IsMember
	}
	if req.Organization != nil {
		customer.Organization = req.Organization
	}
	if req.Telephone != nil {
		customer.Telephone = req.Telephone
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.WhatsApp != nil {
		customer.WhatsApp = req.WhatsApp
	}
	customer.UpdatedBy = &actorID

	if err := s.customerRepo.UpdateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCustomerCodeExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer and their store associations.
func (s *customerService) DeleteCustomer(customerID int64) error {
	if err := s.customerRepo.DeleteCustomer(s.db, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// GetCustomerStores lists the stores a customer is linked to.
func (s *customerService) GetCustomerStores(customerID int64, page, pageSize int) ([]models.Store, int, error) {
	if _, err := s.customerRepo.GetCustomerByID(customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, 0, ErrCustomerNotFound
		}
		return nil, 0, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	stores, total, err := s.storeCustomerRepo.GetStoresForCustomer(customerID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve customer stores: %w", err)
	}
	return stores, total, nil
}

// AttachStore links a customer to a store. Linking twice is a no-op.
func (s *customerService) AttachStore(customerID, storeID int64) error {
	if err := s.storeCustomerRepo.Attach(s.db, storeID, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: store or customer does not exist", ErrCustomerNotFound)
		}
		return fmt.Errorf("failed to attach store to customer: %w", err)
	}
	return nil
}

// DetachStore removes a customer's link to a store.
func (s *customerService) DetachStore(customerID, storeID int64) error {
	if err := s.storeCustomerRepo.Detach(s.db, storeID, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("failed to detach store from customer: %w", err)
	}
	return nil
}
