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

// ReservationRepository defines the interface for reservation database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error)
	GetReservationByID(id int64) (*models.Reservation, error)
	GetReservations(opts ListOptions) ([]models.Reservation, int, error)
	GetReservationsByStoreAndDateRange(storeID int64, start, end time.Time, limit int) ([]models.Reservation, error)
	GetRecentReservations(limit int) ([]models.Reservation, error)
	CountReservations() (int, error)
	UpdateReservation(executor SQLExecutor, reservation *models.Reservation) error
	DeleteReservation(executor SQLExecutor, id int64) error
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

var reservationSortable = map[string]string{
	"reservation_datetime": "r.reservation_datetime",
	"reservation_status":   "r.reservation_status",
	"reservation_code":     "r.reservation_code",
	"reservation_guests":   "r.reservation_guests",
	"customer_name":        "c.customer_name",
	"store_name":           "s.store_name",
	"created_at":           "r.created_at",
	"updated_at":           "r.updated_at",
}

const reservationJoinedColumns = `r.reservation_id, r.customer_id, r.store_id, r.reservation_datetime,
	r.reservation_status, r.reservation_notes, r.reservation_event, r.reservation_room,
	r.reservation_guests, r.reservation_code, c.customer_name, s.store_name,
	r.created_by, r.updated_by, r.created_at, r.updated_at`

const reservationJoins = ` FROM reservations r
	JOIN customers c ON r.customer_id = c.customer_id
	JOIN stores s ON r.store_id = s.store_id`

func scanReservation(row scanner, res *models.Reservation, extra ...interface{}) error {
	dest := []interface{}{&res.ID, &res.CustomerID, &res.StoreID, &res.Datetime,
		&res.Status, &res.Notes, &res.Event, &res.Room, &res.Guests, &res.Code,
		&res.CustomerName, &res.StoreName,
		&res.CreatedBy, &res.UpdatedBy, &res.CreatedAt, &res.UpdatedAt}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateReservation inserts a new reservation.
func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := `INSERT INTO reservations (customer_id, store_id, reservation_datetime, reservation_status, reservation_notes, reservation_event, reservation_room, reservation_guests, reservation_code, created_by, updated_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING reservation_id`

	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	err := executor.QueryRow(query,
		reservation.CustomerID, reservation.StoreID, reservation.Datetime, reservation.Status,
		reservation.Notes, reservation.Event, reservation.Room, reservation.Guests, reservation.Code,
		reservation.CreatedBy, reservation.UpdatedBy, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			case "foreign_key_violation":
				return 0, fmt.Errorf("%w: reservation references missing customer or store (constraint: %s)", ErrNotFound, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation.ID, nil
}

// GetReservationByID retrieves a reservation with its customer and store names.
func (r *reservationRepository) GetReservationByID(id int64) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	query := `SELECT ` + reservationJoinedColumns + reservationJoins + ` WHERE r.reservation_id = $1`
	if err := scanReservation(r.db.QueryRow(query, id), reservation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reservation by ID %d: %v", ErrDatabaseError, id, err)
	}
	return reservation, nil
}

// GetReservations retrieves reservations with pagination, search and sorting.
// The search also covers the joined customer and store names.
func (r *reservationRepository) GetReservations(opts ListOptions) ([]models.Reservation, int, error) {
	opts.Normalize()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + reservationJoinedColumns + `, COUNT(*) OVER() AS total_count` + reservationJoins)

	var args []interface{}
	cond, args, argCount := opts.SearchClause(
		[]string{"r.reservation_code", "r.reservation_status", "r.reservation_event", "r.reservation_room", "c.customer_name", "s.store_name"}, args, 1)
	if cond != "" {
		queryBuilder.WriteString(" WHERE " + cond)
	}

	queryBuilder.WriteString(opts.OrderClause(reservationSortable, "r.reservation_id"))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, opts.PageSize, opts.Offset())

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	totalCount := 0
	for rows.Next() {
		var reservation models.Reservation
		if err := scanReservation(rows, &reservation, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, totalCount, nil
}

// GetReservationsByStoreAndDateRange lists a store's reservations whose date
// falls inside [start, end], soonest first. Used for the WhatsApp upcoming list.
func (r *reservationRepository) GetReservationsByStoreAndDateRange(storeID int64, start, end time.Time, limit int) ([]models.Reservation, error) {
	query := `SELECT ` + reservationJoinedColumns + reservationJoins + `
	          WHERE r.store_id = $1 AND r.reservation_datetime::date BETWEEN $2 AND $3
	          ORDER BY r.reservation_datetime ASC
	          LIMIT $4`

	rows, err := r.db.Query(query, storeID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations for store %d: %v", ErrDatabaseError, storeID, err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var reservation models.Reservation
		if err := scanReservation(rows, &reservation); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}

// GetRecentReservations retrieves the most recently created reservations.
func (r *reservationRepository) GetRecentReservations(limit int) ([]models.Reservation, error) {
	query := `SELECT ` + reservationJoinedColumns + reservationJoins + `
	          ORDER BY r.reservation_id DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var reservation models.Reservation
		if err := scanReservation(rows, &reservation); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}

// CountReservations returns the total number of reservations.
func (r *reservationRepository) CountReservations() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM reservations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting reservations: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// UpdateReservation updates an existing reservation. The code is immutable.
func (r *reservationRepository) UpdateReservation(executor SQLExecutor, reservation *models.Reservation) error {
	query := `UPDATE reservations SET
	            customer_id = $1, store_id = $2, reservation_datetime = $3,
	            reservation_status = $4, reservation_notes = $5, reservation_event = $6,
	            reservation_room = $7, reservation_guests = $8, updated_by = $9, updated_at = $10
	          WHERE reservation_id = $11`

	reservation.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		reservation.CustomerID, reservation.StoreID, reservation.Datetime,
		reservation.Status, reservation.Notes, reservation.Event,
		reservation.Room, reservation.Guests, reservation.UpdatedBy, reservation.UpdatedAt,
		reservation.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: reservation references missing customer or store (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReservation removes a reservation.
func (r *reservationRepository) DeleteReservation(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM reservations WHERE reservation_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
