package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storecrm_backend/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// RevenueRepository defines the interface for revenue database operations,
// covering the revenue record itself plus its items and compliments.
type RevenueRepository interface {
	CreateRevenue(executor SQLExecutor, revenue *models.Revenue) (int64, error)
	GetRevenueByID(id int64) (*models.Revenue, error)
	GetRevenues(opts ListOptions) ([]models.Revenue, int, error)
	GetRevenuesForMonth(storeID int64, year, month int) ([]models.Revenue, error)
	GetRecentRevenues(limit int) ([]models.Revenue, error)
	CountRevenues() (int, error)
	UpdateRevenue(executor SQLExecutor, revenue *models.Revenue) error
	DeleteRevenue(executor SQLExecutor, id int64) error

	CreateRevenueItem(executor SQLExecutor, item *models.RevenueItem) (int64, error)
	GetRevenueItemByID(id int64) (*models.RevenueItem, error)
	GetRevenueItems(revenueID int64) ([]models.RevenueItem, error)
	UpdateRevenueItem(executor SQLExecutor, item *models.RevenueItem) error
	DeleteRevenueItem(executor SQLExecutor, id int64) error

	CreateRevenueCompliment(executor SQLExecutor, compliment *models.RevenueCompliment) (int64, error)
	GetRevenueComplimentByID(id int64) (*models.RevenueCompliment, error)
	GetRevenueCompliments(revenueID int64) ([]models.RevenueCompliment, error)
	UpdateRevenueCompliment(executor SQLExecutor, compliment *models.RevenueCompliment) error
	DeleteRevenueCompliment(executor SQLExecutor, id int64) error

	GetRevenueTotals(revenueID int64) (*models.RevenueTotals, error)
	GetMonthlyNetRevenue(storeID int64, year, month int) (decimal.Decimal, error)
}

type revenueRepository struct {
	db *sql.DB
}

// NewRevenueRepository creates a new instance of RevenueRepository.
func NewRevenueRepository(db *sql.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

var revenueSortable = map[string]string{
	"revenue_date":   "rv.revenue_date",
	"revenue_guests": "rv.revenue_guests",
	"store_name":     "s.store_name",
	"created_at":     "rv.created_at",
	"updated_at":     "rv.updated_at",
}

const revenueJoinedColumns = `rv.revenue_id, rv.store_id, rv.revenue_date, rv.revenue_guests,
	rv.revenue_notes, s.store_name, rv.created_by, rv.updated_by, rv.created_at, rv.updated_at`

const revenueJoins = ` FROM revenues rv JOIN stores s ON rv.store_id = s.store_id`

func scanRevenue(row scanner, rv *models.Revenue, extra ...interface{}) error {
	dest := []interface{}{&rv.ID, &rv.StoreID, &rv.Date, &rv.Guests, &rv.Notes,
		&rv.StoreName, &rv.CreatedBy, &rv.UpdatedBy, &rv.CreatedAt, &rv.UpdatedAt}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateRevenue inserts a new daily revenue record. A store can have at most
// one record per date; a second insert returns ErrDuplicateKey.
func (r *revenueRepository) CreateRevenue(executor SQLExecutor, revenue *models.Revenue) (int64, error) {
	query := `INSERT INTO revenues (store_id, revenue_date, revenue_guests, revenue_notes, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING revenue_id`

	now := time.Now()
	revenue.CreatedAt = now
	revenue.UpdatedAt = now

	err := executor.QueryRow(query,
		revenue.StoreID, revenue.Date, revenue.Guests, revenue.Notes,
		revenue.CreatedBy, revenue.UpdatedBy, revenue.CreatedAt, revenue.UpdatedAt,
	).Scan(&revenue.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return 0, fmt.Errorf("%w: a revenue record already exists for store %d on %s", ErrDuplicateKey, revenue.StoreID, revenue.Date.Format("2006-01-02"))
			case "foreign_key_violation":
				return 0, fmt.Errorf("%w: revenue references missing store (constraint: %s)", ErrNotFound, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating revenue: %v", ErrDatabaseError, err)
	}
	return revenue.ID, nil
}

// GetRevenueByID retrieves a revenue record with its store name.
func (r *revenueRepository) GetRevenueByID(id int64) (*models.Revenue, error) {
	revenue := &models.Revenue{}
	query := `SELECT ` + revenueJoinedColumns + revenueJoins + ` WHERE rv.revenue_id = $1`
	if err := scanRevenue(r.db.QueryRow(query, id), revenue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting revenue by ID %d: %v", ErrDatabaseError, id, err)
	}
	return revenue, nil
}

// GetRevenues retrieves revenue records with pagination, search and sorting.
func (r *revenueRepository) GetRevenues(opts ListOptions) ([]models.Revenue, int, error) {
	opts.Normalize()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + revenueJoinedColumns + `, COUNT(*) OVER() AS total_count` + revenueJoins)

	var args []interface{}
	cond, args, argCount := opts.SearchClause([]string{"s.store_name", "rv.revenue_notes"}, args, 1)
	if cond != "" {
		queryBuilder.WriteString(" WHERE " + cond)
	}

	queryBuilder.WriteString(opts.OrderClause(revenueSortable, "rv.revenue_id"))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, opts.PageSize, opts.Offset())

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying revenues: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenues := []models.Revenue{}
	totalCount := 0
	for rows.Next() {
		var revenue models.Revenue
		if err := scanRevenue(rows, &revenue, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning revenue: %v", ErrDatabaseError, err)
		}
		revenues = append(revenues, revenue)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating revenue rows: %v", ErrDatabaseError, err)
	}
	return revenues, totalCount, nil
}

// GetRevenuesForMonth lists a store's revenue records for a calendar month,
// oldest first. Used for the monthly export.
func (r *revenueRepository) GetRevenuesForMonth(storeID int64, year, month int) ([]models.Revenue, error) {
	query := `SELECT ` + revenueJoinedColumns + revenueJoins + `
	          WHERE rv.store_id = $1
	            AND EXTRACT(YEAR FROM rv.revenue_date) = $2
	            AND EXTRACT(MONTH FROM rv.revenue_date) = $3
	          ORDER BY rv.revenue_date ASC`

	rows, err := r.db.Query(query, storeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: querying revenues for store %d in %d-%02d: %v", ErrDatabaseError, storeID, year, month, err)
	}
	defer rows.Close()

	revenues := []models.Revenue{}
	for rows.Next() {
		var revenue models.Revenue
		if err := scanRevenue(rows, &revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning revenue: %v", ErrDatabaseError, err)
		}
		revenues = append(revenues, revenue)
	}
	return revenues, rows.Err()
}

// GetRecentRevenues retrieves the most recently created revenue records.
func (r *revenueRepository) GetRecentRevenues(limit int) ([]models.Revenue, error) {
	query := `SELECT ` + revenueJoinedColumns + revenueJoins + ` ORDER BY rv.revenue_id DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent revenues: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenues := []models.Revenue{}
	for rows.Next() {
		var revenue models.Revenue
		if err := scanRevenue(rows, &revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning revenue: %v", ErrDatabaseError, err)
		}
		revenues = append(revenues, revenue)
	}
	return revenues, rows.Err()
}

// CountRevenues returns the total number of revenue records.
func (r *revenueRepository) CountRevenues() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM revenues`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting revenues: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// UpdateRevenue updates an existing revenue record.
func (r *revenueRepository) UpdateRevenue(executor SQLExecutor, revenue *models.Revenue) error {
	query := `UPDATE revenues SET
	            store_id = $1, revenue_date = $2, revenue_guests = $3,
	            revenue_notes = $4, updated_by = $5, updated_at = $6
	          WHERE revenue_id = $7`

	revenue.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		revenue.StoreID, revenue.Date, revenue.Guests,
		revenue.Notes, revenue.UpdatedBy, revenue.UpdatedAt, revenue.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return fmt.Errorf("%w: a revenue record already exists for store %d on %s", ErrDuplicateKey, revenue.StoreID, revenue.Date.Format("2006-01-02"))
			case "foreign_key_violation":
				return fmt.Errorf("%w: revenue references missing store (constraint: %s)", ErrNotFound, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating revenue ID %d: %v", ErrDatabaseError, revenue.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating revenue ID %d: %v", ErrDatabaseError, revenue.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRevenue removes a revenue record. Items and compliments cascade.
func (r *revenueRepository) DeleteRevenue(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM revenues WHERE revenue_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting revenue ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting revenue ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const revenueItemJoinedColumns = `ri.revenue_item_id, ri.revenue_id, ri.revenue_type_id, ri.revenue_item_amount,
	rt.revenue_type_name, rt.revenue_type_category, ri.created_by, ri.updated_by, ri.created_at, ri.updated_at`

const revenueItemJoins = ` FROM revenue_items ri JOIN revenue_types rt ON ri.revenue_type_id = rt.revenue_type_id`

func scanRevenueItem(row scanner, item *models.RevenueItem) error {
	return row.Scan(&item.ID, &item.RevenueID, &item.RevenueTypeID, &item.Amount,
		&item.TypeName, &item.TypeCategory, &item.CreatedBy, &item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt)
}

// CreateRevenueItem inserts a typed line item on a revenue record.
func (r *revenueRepository) CreateRevenueItem(executor SQLExecutor, item *models.RevenueItem) (int64, error) {
	query := `INSERT INTO revenue_items (revenue_id, revenue_type_id, revenue_item_amount, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING revenue_item_id`

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := executor.QueryRow(query,
		item.RevenueID, item.RevenueTypeID, item.Amount,
		item.CreatedBy, item.UpdatedBy, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: revenue item references missing revenue or type (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating revenue item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// GetRevenueItemByID retrieves a revenue item with its type name and category.
func (r *revenueRepository) GetRevenueItemByID(id int64) (*models.RevenueItem, error) {
	item := &models.RevenueItem{}
	query := `SELECT ` + revenueItemJoinedColumns + revenueItemJoins + ` WHERE ri.revenue_item_id = $1`
	if err := scanRevenueItem(r.db.QueryRow(query, id), item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting revenue item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetRevenueItems lists the line items of a revenue record.
func (r *revenueRepository) GetRevenueItems(revenueID int64) ([]models.RevenueItem, error) {
	query := `SELECT ` + revenueItemJoinedColumns + revenueItemJoins + `
	          WHERE ri.revenue_id = $1 ORDER BY ri.revenue_item_id ASC`

	rows, err := r.db.Query(query, revenueID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying items for revenue %d: %v", ErrDatabaseError, revenueID, err)
	}
	defer rows.Close()

	items := []models.RevenueItem{}
	for rows.Next() {
		var item models.RevenueItem
		if err := scanRevenueItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning revenue item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateRevenueItem updates an existing revenue item.
func (r *revenueRepository) UpdateRevenueItem(executor SQLExecutor, item *models.RevenueItem) error {
	query := `UPDATE revenue_items SET
	            revenue_type_id = $1, revenue_item_amount = $2, updated_by = $3, updated_at = $4
	          WHERE revenue_item_id = $5`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.RevenueTypeID, item.Amount, item.UpdatedBy, item.UpdatedAt, item.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: revenue item references missing type (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating revenue item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating revenue item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRevenueItem removes a revenue item.
func (r *revenueRepository) DeleteRevenueItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM revenue_items WHERE revenue_item_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting revenue item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting revenue item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const revenueComplimentColumns = `revenue_compliment_id, revenue_id, revenue_compliment_description, revenue_compliment_for, created_by, updated_by, created_at, updated_at`

func scanRevenueCompliment(row scanner, compliment *models.RevenueCompliment) error {
	return row.Scan(&compliment.ID, &compliment.RevenueID, &compliment.Description, &compliment.For,
		&compliment.CreatedBy, &compliment.UpdatedBy, &compliment.CreatedAt, &compliment.UpdatedAt)
}

// CreateRevenueCompliment inserts a compliment on a revenue record.
func (r *revenueRepository) CreateRevenueCompliment(executor SQLExecutor, compliment *models.RevenueCompliment) (int64, error) {
	query := `INSERT INTO revenue_compliments (revenue_id, revenue_compliment_description, revenue_compliment_for, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING revenue_compliment_id`

	now := time.Now()
	compliment.CreatedAt = now
	compliment.UpdatedAt = now

	err := executor.QueryRow(query,
		compliment.RevenueID, compliment.Description, compliment.For,
		compliment.CreatedBy, compliment.UpdatedBy, compliment.CreatedAt, compliment.UpdatedAt,
	).Scan(&compliment.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: compliment references missing revenue (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating revenue compliment: %v", ErrDatabaseError, err)
	}
	return compliment.ID, nil
}

// GetRevenueComplimentByID retrieves a compliment by its ID.
func (r *revenueRepository) GetRevenueComplimentByID(id int64) (*models.RevenueCompliment, error) {
	compliment := &models.RevenueCompliment{}
	query := `SELECT ` + revenueComplimentColumns + ` FROM revenue_compliments WHERE revenue_compliment_id = $1`
	if err := scanRevenueCompliment(r.db.QueryRow(query, id), compliment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting revenue compliment by ID %d: %v", ErrDatabaseError, id, err)
	}
	return compliment, nil
}

// GetRevenueCompliments lists the compliments of a revenue record.
func (r *revenueRepository) GetRevenueCompliments(revenueID int64) ([]models.RevenueCompliment, error) {
	query := `SELECT ` + revenueComplimentColumns + ` FROM revenue_compliments
	          WHERE revenue_id = $1 ORDER BY revenue_compliment_id ASC`

	rows, err := r.db.Query(query, revenueID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying compliments for revenue %d: %v", ErrDatabaseError, revenueID, err)
	}
	defer rows.Close()

	compliments := []models.RevenueCompliment{}
	for rows.Next() {
		var compliment models.RevenueCompliment
		if err := scanRevenueCompliment(rows, &compliment); err != nil {
			return nil, fmt.Errorf("%w: scanning revenue compliment: %v", ErrDatabaseError, err)
		}
		compliments = append(compliments, compliment)
	}
	return compliments, rows.Err()
}

// UpdateRevenueCompliment updates an existing compliment.
func (r *revenueRepository) UpdateRevenueCompliment(executor SQLExecutor, compliment *models.RevenueCompliment) error {
	query := `UPDATE revenue_compliments SET
	            revenue_compliment_description = $1, revenue_compliment_for = $2, updated_by = $3, updated_at = $4
	          WHERE revenue_compliment_id = $5`

	compliment.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		compliment.Description, compliment.For, compliment.UpdatedBy, compliment.UpdatedAt, compliment.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating revenue compliment ID %d: %v", ErrDatabaseError, compliment.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating revenue compliment ID %d: %v", ErrDatabaseError, compliment.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRevenueCompliment removes a compliment.
func (r *revenueRepository) DeleteRevenueCompliment(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM revenue_compliments WHERE revenue_compliment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting revenue compliment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting revenue compliment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRevenueTotals sums the additions and deductions of a single revenue record.
func (r *revenueRepository) GetRevenueTotals(revenueID int64) (*models.RevenueTotals, error) {
	query := `SELECT
	            COALESCE(SUM(CASE WHEN rt.revenue_type_category = 'Addition' THEN ri.revenue_item_amount ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN rt.revenue_type_category = 'Deduction' THEN ri.revenue_item_amount ELSE 0 END), 0)
	          FROM revenue_items ri
	          JOIN revenue_types rt ON ri.revenue_type_id = rt.revenue_type_id
	          WHERE ri.revenue_id = $1`

	totals := &models.RevenueTotals{}
	if err := r.db.QueryRow(query, revenueID).Scan(&totals.TotalAdditions, &totals.TotalDeductions); err != nil {
		return nil, fmt.Errorf("%w: totalling revenue %d: %v", ErrDatabaseError, revenueID, err)
	}
	totals.NetRevenue = totals.TotalAdditions.Sub(totals.TotalDeductions)
	return totals, nil
}

// GetMonthlyNetRevenue computes a store's accumulated net revenue for a
// calendar month: additions minus deductions over every record in the month.
// The result can be negative.
func (r *revenueRepository) GetMonthlyNetRevenue(storeID int64, year, month int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(
	            CASE WHEN rt.revenue_type_category = 'Addition' THEN ri.revenue_item_amount
	                 ELSE -ri.revenue_item_amount END), 0)
	          FROM revenue_items ri
	          JOIN revenue_types rt ON ri.revenue_type_id = rt.revenue_type_id
	          JOIN revenues rv ON ri.revenue_id = rv.revenue_id
	          WHERE rv.store_id = $1
	            AND EXTRACT(YEAR FROM rv.revenue_date) = $2
	            AND EXTRACT(MONTH FROM rv.revenue_date) = $3`

	var net decimal.Decimal
	if err := r.db.QueryRow(query, storeID, year, month).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("%w: computing net revenue for store %d in %d-%02d: %v", ErrDatabaseError, storeID, year, month, err)
	}
	return net, nil
}
