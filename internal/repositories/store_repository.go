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

// StoreRepository defines the interface for store database operations.
type StoreRepository interface {
	CreateStore(executor SQLExecutor, store *models.Store) (int64, error)
	GetStoreByID(id int64) (*models.Store, error)
	GetStores(opts ListOptions) ([]models.Store, int, error)
	GetAllStores() ([]models.Store, error)
	GetRecentStores(limit int) ([]models.Store, error)
	CountStores() (int, error)
	UpdateStore(executor SQLExecutor, store *models.Store) error
	DeleteStore(executor SQLExecutor, id int64) error
}

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new instance of StoreRepository.
func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

var storeSortable = map[string]string{
	"store_name":      "store_name",
	"store_telephone": "store_telephone",
	"store_email":     "store_email",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
}

const storeColumns = "store_id, store_name, store_telephone, store_email, store_address, store_whatsapp, created_by, updated_by, created_at, updated_at"

func scanStore(row scanner, store *models.Store, extra ...interface{}) error {
	dest := []interface{}{&store.ID, &store.Name, &store.Telephone, &store.Email,
		&store.Address, &store.WhatsApp, &store.CreatedBy, &store.UpdatedBy,
		&store.CreatedAt, &store.UpdatedAt}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateStore inserts a new store.
func (r *storeRepository) CreateStore(executor SQLExecutor, store *models.Store) (int64, error) {
	query := `INSERT INTO stores (store_name, store_telephone, store_email, store_address, store_whatsapp, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING store_id`

	now := time.Now()
	store.CreatedAt = now
	store.UpdatedAt = now

	err := executor.QueryRow(query,
		store.Name, store.Telephone, store.Email, store.Address, store.WhatsApp,
		store.CreatedBy, store.UpdatedBy, store.CreatedAt, store.UpdatedAt,
	).Scan(&store.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating store: %v", ErrDatabaseError, err)
	}
	return store.ID, nil
}

// GetStoreByID retrieves a store by its ID.
func (r *storeRepository) GetStoreByID(id int64) (*models.Store, error) {
	store := &models.Store{}
	query := `SELECT ` + storeColumns + ` FROM stores WHERE store_id = $1`
	if err := scanStore(r.db.QueryRow(query, id), store); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting store by ID %d: %v", ErrDatabaseError, id, err)
	}
	return store, nil
}

// GetStores retrieves stores with pagination, search and sorting.
func (r *storeRepository) GetStores(opts ListOptions) ([]models.Store, int, error) {
	opts.Normalize()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + storeColumns + `, COUNT(*) OVER() AS total_count FROM stores`)

	var args []interface{}
	cond, args, argCount := opts.SearchClause(
		[]string{"store_name", "store_telephone", "store_email", "store_address"}, args, 1)
	if cond != "" {
		queryBuilder.WriteString(" WHERE " + cond)
	}

	queryBuilder.WriteString(opts.OrderClause(storeSortable, "store_id"))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, opts.PageSize, opts.Offset())

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying stores: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stores := []models.Store{}
	totalCount := 0
	for rows.Next() {
		var store models.Store
		if err := scanStore(rows, &store, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning store: %v", ErrDatabaseError, err)
		}
		stores = append(stores, store)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating store rows: %v", ErrDatabaseError, err)
	}
	return stores, totalCount, nil
}

// GetAllStores retrieves every store, name ascending. Used by dropdown data sources.
func (r *storeRepository) GetAllStores() ([]models.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY store_name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all stores: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		var store models.Store
		if err := scanStore(rows, &store); err != nil {
			return nil, fmt.Errorf("%w: scanning store: %v", ErrDatabaseError, err)
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// GetRecentStores retrieves the most recently created stores.
func (r *storeRepository) GetRecentStores(limit int) ([]models.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY store_id DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent stores: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		var store models.Store
		if err := scanStore(rows, &store); err != nil {
			return nil, fmt.Errorf("%w: scanning store: %v", ErrDatabaseError, err)
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// CountStores returns the total number of stores.
func (r *storeRepository) CountStores() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting stores: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// UpdateStore updates an existing store.
func (r *storeRepository) UpdateStore(executor SQLExecutor, store *models.Store) error {
	query := `UPDATE stores SET
	            store_name = $1, store_telephone = $2, store_email = $3,
	            store_address = $4, store_whatsapp = $5, updated_by = $6, updated_at = $7
	          WHERE store_id = $8`

	store.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		store.Name, store.Telephone, store.Email, store.Address, store.WhatsApp,
		store.UpdatedBy, store.UpdatedAt, store.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating store ID %d: %v", ErrDatabaseError, store.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating store ID %d: %v", ErrDatabaseError, store.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStore removes a store.
func (r *storeRepository) DeleteStore(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM stores WHERE store_id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: store ID %d (constraint: %s)", ErrForeignKey, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting store ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting store ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
