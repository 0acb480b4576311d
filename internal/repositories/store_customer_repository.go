package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"storecrm_backend/internal/models"

	"github.com/lib/pq"
)

// StoreCustomerRepository manages the store/customer many-to-many association.
type StoreCustomerRepository interface {
	Attach(executor SQLExecutor, storeID, customerID int64) error
	Detach(executor SQLExecutor, storeID, customerID int64) error
	GetCustomersForStore(storeID int64, page, pageSize int) ([]models.Customer, int, error)
	GetStoresForCustomer(customerID int64, page, pageSize int) ([]models.Store, int, error)
}

type storeCustomerRepository struct {
	db *sql.DB
}

// NewStoreCustomerRepository creates a new instance of StoreCustomerRepository.
func NewStoreCustomerRepository(db *sql.DB) StoreCustomerRepository {
	return &storeCustomerRepository{db: db}
}

// Attach links a customer to a store. Attaching twice is a no-op.
func (r *storeCustomerRepository) Attach(executor SQLExecutor, storeID, customerID int64) error {
	query := `INSERT INTO store_customers (store_id, customer_id)
	          VALUES ($1, $2)
	          ON CONFLICT (store_id, customer_id) DO NOTHING`
	_, err := executor.Exec(query, storeID, customerID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return ErrNotFound
		}
		return fmt.Errorf("%w: attaching customer %d to store %d: %v", ErrDatabaseError, customerID, storeID, err)
	}
	return nil
}

// Detach removes the link between a customer and a store.
func (r *storeCustomerRepository) Detach(executor SQLExecutor, storeID, customerID int64) error {
	result, err := executor.Exec(
		`DELETE FROM store_customers WHERE store_id = $1 AND customer_id = $2`, storeID, customerID)
	if err != nil {
		return fmt.Errorf("%w: detaching customer %d from store %d: %v", ErrDatabaseError, customerID, storeID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for detach: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCustomersForStore lists the customers linked to a store, paginated, with the total count.
func (r *storeCustomerRepository) GetCustomersForStore(storeID int64, page, pageSize int) ([]models.Customer, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	query := `SELECT c.customer_id, c.customer_name, c.customer_code, c.customer_is_member,
	                c.customer_organization, c.customer_telephone, c.customer_email,
	                c.customer_address, c.customer_whatsapp, c.created_by, c.updated_by,
	                c.created_at, c.updated_at, COUNT(*) OVER() AS total_count
	          FROM customers c
	          JOIN store_customers sc ON c.customer_id = sc.customer_id
	          WHERE sc.store_id = $1
	          ORDER BY c.customer_name ASC
	          LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, storeID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying customers for store %d: %v", ErrDatabaseError, storeID, err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	totalCount := 0
	for rows.Next() {
		var customer models.Customer
		if err := scanCustomer(rows, &customer, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning customer for store: %v", ErrDatabaseError, err)
		}
		customers = append(customers, customer)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customers for store: %v", ErrDatabaseError, err)
	}
	return customers, totalCount, nil
}

// GetStoresForCustomer lists the stores linked to a customer, paginated, with the total count.
func (r *storeCustomerRepository) GetStoresForCustomer(customerID int64, page, pageSize int) ([]models.Store, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	query := `SELECT s.store_id, s.store_name, s.store_telephone, s.store_email,
	                 s.store_address, s.store_whatsapp, s.created_by, s.updated_by,
	                 s.created_at, s.updated_at, COUNT(*) OVER() AS total_count
	          FROM stores s
	          JOIN store_customers sc ON s.store_id = sc.store_id
	          WHERE sc.customer_id = $1
	          ORDER BY s.store_name ASC
	          LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, customerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying stores for customer %d: %v", ErrDatabaseError, customerID, err)
	}
	defer rows.Close()

	stores := []models.Store{}
	totalCount := 0
	for rows.Next() {
		var store models.Store
		if err := scanStore(rows, &store, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning store for customer: %v", ErrDatabaseError, err)
		}
		stores = append(stores, store)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating stores for customer: %v", ErrDatabaseError, err)
	}
	return stores, totalCount, nil
}
