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

// RevenueTypeRepository defines the interface for revenue type database operations.
type RevenueTypeRepository interface {
	CreateRevenueType(executor SQLExecutor, revenueType *models.RevenueType) (int64, error)
	GetRevenueTypeByID(id int64) (*models.RevenueType, error)
	GetRevenueTypes(opts ListOptions) ([]models.RevenueType, int, error)
	GetAllRevenueTypes() ([]models.RevenueType, error)
	SearchRevenueTypes(query string, limit int) ([]models.RevenueType, error)
	UpdateRevenueType(executor SQLExecutor, revenueType *models.RevenueType) error
	DeleteRevenueType(executor SQLExecutor, id int64) error
}

type revenueTypeRepository struct {
	db *sql.DB
}

// NewRevenueTypeRepository creates a new instance of RevenueTypeRepository.
func NewRevenueTypeRepository(db *sql.DB) RevenueTypeRepository {
	return &revenueTypeRepository{db: db}
}

var revenueTypeSortable = map[string]string{
	"revenue_type_name":     "revenue_type_name",
	"revenue_type_category": "revenue_type_category",
	"created_at":            "created_at",
	"updated_at":            "updated_at",
}

const revenueTypeColumns = `revenue_type_id, revenue_type_name, revenue_type_category, created_by, updated_by, created_at, updated_at`

func scanRevenueType(row scanner, rt *models.RevenueType, extra ...interface{}) error {
	dest := []interface{}{&rt.ID, &rt.Name, &rt.Category,
		&rt.CreatedBy, &rt.UpdatedBy, &rt.CreatedAt, &rt.UpdatedAt}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateRevenueType inserts a new revenue type.
func (r *revenueTypeRepository) CreateRevenueType(executor SQLExecutor, revenueType *models.RevenueType) (int64, error) {
	query := `INSERT INTO revenue_types (revenue_type_name, revenue_type_category, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING revenue_type_id`

	now := time.Now()
	revenueType.CreatedAt = now
	revenueType.UpdatedAt = now

	err := executor.QueryRow(query,
		revenueType.Name, revenueType.Category,
		revenueType.CreatedBy, revenueType.UpdatedBy, revenueType.CreatedAt, revenueType.UpdatedAt,
	).Scan(&revenueType.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: revenue type name '%s' already exists", ErrDuplicateKey, revenueType.Name)
		}
		return 0, fmt.Errorf("%w: creating revenue type: %v", ErrDatabaseError, err)
	}
	return revenueType.ID, nil
}

// GetRevenueTypeByID retrieves a revenue type by its ID.
func (r *revenueTypeRepository) GetRevenueTypeByID(id int64) (*models.RevenueType, error) {
	revenueType := &models.RevenueType{}
	query := `SELECT ` + revenueTypeColumns + ` FROM revenue_types WHERE revenue_type_id = $1`
	if err := scanRevenueType(r.db.QueryRow(query, id), revenueType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting revenue type by ID %d: %v", ErrDatabaseError, id, err)
	}
	return revenueType, nil
}

// GetRevenueTypes retrieves revenue types with pagination, search and sorting.
func (r *revenueTypeRepository) GetRevenueTypes(opts ListOptions) ([]models.RevenueType, int, error) {
	opts.Normalize()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + revenueTypeColumns + `, COUNT(*) OVER() AS total_count FROM revenue_types`)

	var args []interface{}
	cond, args, argCount := opts.SearchClause([]string{"revenue_type_name", "revenue_type_category"}, args, 1)
	if cond != "" {
		queryBuilder.WriteString(" WHERE " + cond)
	}

	queryBuilder.WriteString(opts.OrderClause(revenueTypeSortable, "revenue_type_id"))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, opts.PageSize, opts.Offset())

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying revenue types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenueTypes := []models.RevenueType{}
	totalCount := 0
	for rows.Next() {
		var revenueType models.RevenueType
		if err := scanRevenueType(rows, &revenueType, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning revenue type: %v", ErrDatabaseError, err)
		}
		revenueTypes = append(revenueTypes, revenueType)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating revenue type rows: %v", ErrDatabaseError, err)
	}
	return revenueTypes, totalCount, nil
}

// GetAllRevenueTypes retrieves every revenue type ordered by name. Used to
// populate selection lists without pagination.
func (r *revenueTypeRepository) GetAllRevenueTypes() ([]models.RevenueType, error) {
	query := `SELECT ` + revenueTypeColumns + ` FROM revenue_types ORDER BY revenue_type_name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all revenue types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenueTypes := []models.RevenueType{}
	for rows.Next() {
		var revenueType models.RevenueType
		if err := scanRevenueType(rows, &revenueType); err != nil {
			return nil, fmt.Errorf("%w: scanning revenue type: %v", ErrDatabaseError, err)
		}
		revenueTypes = append(revenueTypes, revenueType)
	}
	return revenueTypes, rows.Err()
}

// SearchRevenueTypes performs a lightweight lookup over name and category.
func (r *revenueTypeRepository) SearchRevenueTypes(query string, limit int) ([]models.RevenueType, error) {
	sqlQuery := `SELECT ` + revenueTypeColumns + ` FROM revenue_types
	             WHERE revenue_type_name ILIKE $1 OR revenue_type_category ILIKE $1
	             ORDER BY revenue_type_name ASC
	             LIMIT $2`

	rows, err := r.db.Query(sqlQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("%w: searching revenue types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenueTypes := []models.RevenueType{}
	for rows.Next() {
		var revenueType models.RevenueType
		if err := scanRevenueType(rows, &revenueType); err != nil {
			return nil, fmt.Errorf("%w: scanning revenue type: %v", ErrDatabaseError, err)
		}
		revenueTypes = append(revenueTypes, revenueType)
	}
	return revenueTypes, rows.Err()
}

// UpdateRevenueType updates an existing revenue type.
func (r *revenueTypeRepository) UpdateRevenueType(executor SQLExecutor, revenueType *models.RevenueType) error {
	query := `UPDATE revenue_types SET
	            revenue_type_name = $1, revenue_type_category = $2,
	            updated_by = $3, updated_at = $4
	          WHERE revenue_type_id = $5`

	revenueType.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		revenueType.Name, revenueType.Category,
		revenueType.UpdatedBy, revenueType.UpdatedAt, revenueType.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: revenue type name '%s' already exists", ErrDuplicateKey, revenueType.Name)
		}
		return fmt.Errorf("%w: updating revenue type ID %d: %v", ErrDatabaseError, revenueType.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating revenue type ID %d: %v", ErrDatabaseError, revenueType.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRevenueType removes a revenue type. Deleting a type still referenced
// by revenue items is rejected with ErrForeignKey.
func (r *revenueTypeRepository) DeleteRevenueType(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM revenue_types WHERE revenue_type_id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: revenue type ID %d is referenced by revenue items", ErrForeignKey, id)
		}
		return fmt.Errorf("%w: deleting revenue type ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting revenue type ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
