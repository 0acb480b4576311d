package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storecrm_backend/internal/models"

	"github.com/lib/pq"
)

// TargetRepository defines the interface for store revenue target operations.
type TargetRepository interface {
	UpsertTarget(executor SQLExecutor, target *models.StoreRevenueTarget) (int64, error)
	GetTargetByID(id int64) (*models.StoreRevenueTarget, error)
	GetTargetByStoreAndDate(storeID int64, year, month int) (*models.StoreRevenueTarget, error)
	GetTargetsForStoreByYear(storeID int64, year int) ([]models.StoreRevenueTarget, error)
	DeleteTarget(executor SQLExecutor, id int64) error
}

type targetRepository struct {
	db *sql.DB
}

// NewTargetRepository creates a new instance of TargetRepository.
func NewTargetRepository(db *sql.DB) TargetRepository {
	return &targetRepository{db: db}
}

const targetColumns = `target_id, store_id, target_month, target_year, target_amount, created_by, updated_by, created_at, updated_at`

func scanTarget(row scanner, target *models.StoreRevenueTarget) error {
	return row.Scan(&target.ID, &target.StoreID, &target.Month, &target.Year, &target.Amount,
		&target.CreatedBy, &target.UpdatedBy, &target.CreatedAt, &target.UpdatedAt)
}

// UpsertTarget inserts a target for (store, year, month), or updates the
// amount if one already exists.
func (r *targetRepository) UpsertTarget(executor SQLExecutor, target *models.StoreRevenueTarget) (int64, error) {
	query := `INSERT INTO store_revenue_targets (store_id, target_month, target_year, target_amount, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (store_id, target_year, target_month)
	          DO UPDATE SET target_amount = EXCLUDED.target_amount,
	                        updated_by = EXCLUDED.updated_by,
	                        updated_at = EXCLUDED.updated_at
	          RETURNING target_id`

	now := time.Now()
	target.CreatedAt = now
	target.UpdatedAt = now

	err := executor.QueryRow(query,
		target.StoreID, target.Month, target.Year, target.Amount,
		target.CreatedBy, target.UpdatedBy, target.CreatedAt, target.UpdatedAt,
	).Scan(&target.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: target references missing store (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: upserting target: %v", ErrDatabaseError, err)
	}
	return target.ID, nil
}

// GetTargetByID retrieves a target by its ID.
func (r *targetRepository) GetTargetByID(id int64) (*models.StoreRevenueTarget, error) {
	target := &models.StoreRevenueTarget{}
	query := `SELECT ` + targetColumns + ` FROM store_revenue_targets WHERE target_id = $1`
	if err := scanTarget(r.db.QueryRow(query, id), target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting target by ID %d: %v", ErrDatabaseError, id, err)
	}
	return target, nil
}

// GetTargetByStoreAndDate retrieves a store's target for a specific month.
func (r *targetRepository) GetTargetByStoreAndDate(storeID int64, year, month int) (*models.StoreRevenueTarget, error) {
	target := &models.StoreRevenueTarget{}
	query := `SELECT ` + targetColumns + ` FROM store_revenue_targets
	          WHERE store_id = $1 AND target_year = $2 AND target_month = $3`
	if err := scanTarget(r.db.QueryRow(query, storeID, year, month), target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting target for store %d in %d-%02d: %v", ErrDatabaseError, storeID, year, month, err)
	}
	return target, nil
}

// GetTargetsForStoreByYear lists a store's targets for a year, January first.
func (r *targetRepository) GetTargetsForStoreByYear(storeID int64, year int) ([]models.StoreRevenueTarget, error) {
	query := `SELECT ` + targetColumns + ` FROM store_revenue_targets
	          WHERE store_id = $1 AND target_year = $2
	          ORDER BY target_month ASC`

	rows, err := r.db.Query(query, storeID, year)
	if err != nil {
		return nil, fmt.Errorf("%w: querying targets for store %d in %d: %v", ErrDatabaseError, storeID, year, err)
	}
	defer rows.Close()

	targets := []models.StoreRevenueTarget{}
	for rows.Next() {
		var target models.StoreRevenueTarget
		if err := scanTarget(rows, &target); err != nil {
			return nil, fmt.Errorf("%w: scanning target: %v", ErrDatabaseError, err)
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

// DeleteTarget removes a target.
func (r *targetRepository) DeleteTarget(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM store_revenue_targets WHERE target_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting target ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting target ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
