package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storecrm_backend/internal/models"

	"github.com/lib/pq"
)

// CustomerRepository defines the interface for customer database operations.
type CustomerRepository interface {
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	GetCustomerByCode(code string) (*models.Customer, error)
	GetCustomers(opts ListOptions) ([]models.Customer, int, error)
	SearchCustomers(query string, limit int) ([]models.CustomerSummary, error)
	GetRecentCustomers(limit int) ([]models.Customer, error)
	CountCustomers() (int, error)
	UpdateCustomer(executor SQLExecutor, customer *models.Customer) error
	DeleteCustomer(executor SQLExecutor, id int64) error
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

var customerSortable = map[string]string{
	"customer_name":         "customer_name",
	"customer_code":         "customer_code",
	"customer_is_member":    "customer_is_member",
	"customer_organization": "customer_organization",
	"customer_telephone":    "customer_telephone",
	"created_at":            "created_at",
	"updated_at":            "updated_at",
}

const customerColumns = "customer_id, customer_name, customer_code, customer_is_member, customer_organization, customer_telephone, customer_email, customer_address, customer_whatsapp, created_by, updated_by, created_at, updated_at"

func scanCustomer(row scanner, customer *models.Customer, extra ...interface{}) error {
	dest := []interface{}{&customer.ID, &customer.Name, &customer.Code, &customer.IsMember,
		&customer.Organization, &customer.Telephone, &customer.Email, &customer.Address,
		&customer.WhatsApp, &customer.CreatedBy, &customer.UpdatedBy,
		&customer.CreatedAt, &customer.UpdatedAt}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateCustomer inserts a new customer.
func (r *customerRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error) {
	query := `INSERT INTO customers (customer_name, customer_code, customer_is_member, customer_organization, customer_telephone, customer_email, customer_address, customer_whatsapp, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING customer_id`

	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	err := executor.QueryRow(query,
		customer.Name, customer.Code, customer.IsMember, customer.Organization,
		customer.Telephone, customer.Email, customer.Address, customer.WhatsApp,
		customer.CreatedBy, customer.UpdatedBy, customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

// GetCustomerByID retrieves a customer by their ID.
func (r *customerRepository) GetCustomerByID(id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	if err := scanCustomer(r.db.QueryRow(query, id), customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by ID %d: %v", ErrDatabaseError, id, err)
	}
	return customer, nil
}

// GetCustomerByCode retrieves a customer by their unique code.
func (r *customerRepository) GetCustomerByCode(code string) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_code = $1`
	if err := scanCustomer(r.db.QueryRow(query, code), customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by code %s: %v", ErrDatabaseError, code, err)
	}
	return customer, nil
}

// GetCustomers retrieves customers with pagination, search and sorting.
func (r *customerRepository) GetCustomers(opts ListOptions) ([]models.Customer, int, error) {
	opts.Normalize()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + customerColumns + `, COUNT(*) OVER() AS total_count FROM customers`)

	var args []interface{}
	cond, args, argCount := opts.SearchClause(
		[]string{"customer_name", "customer_code", "customer_organization", "customer_telephone", "customer_email"}, args, 1)
	if cond != "" {
		queryBuilder.WriteString(" WHERE " + cond)
	}

	queryBuilder.WriteString(opts.OrderClause(customerSortable, "customer_id"))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, opts.PageSize, opts.Offset())

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	totalCount := 0
	for rows.Next() {
		var customer models.Customer
		if err := scanCustomer(rows, &customer, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, customer)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	return customers, totalCount, nil
}

// SearchCustomers returns compact matches for autocomplete, by name, code or telephone.
func (r *customerRepository) SearchCustomers(query string, limit int) ([]models.CustomerSummary, error) {
	sqlQuery := `SELECT customer_id, customer_name, COALESCE(customer_code, ''), COALESCE(customer_telephone, '')
	             FROM customers
	             WHERE customer_name ILIKE $1 OR customer_code ILIKE $1 OR customer_telephone ILIKE $1
	             ORDER BY customer_name ASC
	             LIMIT $2`

	rows, err := r.db.Query(sqlQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("%w: searching customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	results := []models.CustomerSummary{}
	for rows.Next() {
		var s models.CustomerSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Telephone); err != nil {
			return nil, fmt.Errorf("%w: scanning customer summary: %v", ErrDatabaseError, err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// GetRecentCustomers retrieves the most recently created customers.
func (r *customerRepository) GetRecentCustomers(limit int) ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY customer_id DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var customer models.Customer
		if err := scanCustomer(rows, &customer); err != nil {
			return nil, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// CountCustomers returns the total number of customers.
func (r *customerRepository) CountCustomers() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting customers: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// UpdateCustomer updates an existing customer.
func (r *customerRepository) UpdateCustomer(executor SQLExecutor, customer *models.Customer) error {
	query := `UPDATE customers SET
	            customer_name = $1, customer_code = $2, customer_is_member = $3,
	            customer_organization = $4, customer_telephone = $5, customer_email = $6,
	            customer_address = $7, customer_whatsapp = $8, updated_by = $9, updated_at = $10
	          WHERE customer_id = $11`

	customer.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		customer.Name, customer.Code, customer.IsMember, customer.Organization,
		customer.Telephone, customer.Email, customer.Address, customer.WhatsApp,
		customer.UpdatedBy, customer.UpdatedAt, customer.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer.
func (r *customerRepository) DeleteCustomer(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: customer ID %d (constraint: %s)", ErrForeignKey, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
