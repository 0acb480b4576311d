package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
)

// --- Custom Service Errors for Reservation ---
var (
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationValidation = errors.New("reservation data validation error")
	ErrInvalidStatus         = errors.New("invalid reservation status")
	ErrDateFormat            = errors.New("invalid datetime format, please use YYYY-MM-DD HH:MM")
)

// ReservationDatetimeLayout is the wire format for reservation datetimes.
const ReservationDatetimeLayout = "2006-01-02 15:04"

const reservationCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateReservationCode builds a booking code from four random uppercase
// letters followed by the reservation date as DDMMYY, e.g. "KQZM280826".
func GenerateReservationCode(datetime time.Time) string {
	letters := make([]byte, 4)
	for i := range letters {
		letters[i] = reservationCodeLetters[rand.Intn(len(reservationCodeLetters))]
	}
	return string(letters) + datetime.Format("020106")
}

// --- Reservation DTOs ---

type CreateReservationRequest struct {
	CustomerID   int64   `json:"customer_id" binding:"required"`
	StoreID      int64   `json:"store_id" binding:"required"`
	Datetime     string  `json:"reservation_datetime" binding:"required"` // Format YYYY-MM-DD HH:MM
	Status       string  `json:"reservation_status"`
	Notes        *string `json:"reservation_notes"`
	Event        *string `json:"reservation_event"`
	Room         *string `json:"reservation_room"`
	Guests       *int    `json:"reservation_guests"`
	SendWhatsApp bool    `json:"send_whatsapp"`
}

type UpdateReservationRequest struct {
	CustomerID   *int64  `json:"customer_id"`
	StoreID      *int64  `json:"store_id"`
	Datetime     *string `json:"reservation_datetime"` // Format YYYY-MM-DD HH:MM
	Status       *string `json:"reservation_status"`
	Notes        *string `json:"reservation_notes"`
	Event        *string `json:"reservation_event"`
	Room         *string `json:"reservation_room"`
	Guests       *int    `json:"reservation_guests"`
	SendWhatsApp bool    `json:"send_whatsapp"`
}

// ReservationResult pairs a stored reservation with the outcome of any
// WhatsApp notification attempted alongside it. A failed or skipped send
// never rolls the reservation back.
type ReservationResult struct {
	Reservation *models.Reservation `json:"reservation"`
	WhatsApp    *WhatsAppStatus     `json:"whatsapp,omitempty"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(req CreateReservationRequest, actorID int64) (*ReservationResult, error)
	GetReservationByID(reservationID int64) (*models.Reservation, error)
	GetReservations(opts repositories.ListOptions) ([]models.Reservation, int, error)
	UpdateReservation(reservationID int64, req UpdateReservationRequest, actorID int64) (*ReservationResult, error)
	DeleteReservation(reservationID int64) error
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	customerRepo    repositories.CustomerRepository
	storeRepo       repositories.StoreRepository
	whatsappService WhatsAppService
	db              *sql.DB
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	customerRepo repositories.CustomerRepository,
	storeRepo repositories.StoreRepository,
	whatsappService WhatsAppService,
	db *sql.DB,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		storeRepo:       storeRepo,
		whatsappService: whatsappService,
		db:              db,
	}
}

func parseReservationDatetime(value string) (time.Time, error) {
	datetime, err := time.Parse(ReservationDatetimeLayout, value)
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	return datetime, nil
}

func (s *reservationService) checkReferences(customerID, storeID int64) error {
	if _, err := s.customerRepo.GetCustomerByID(customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to retrieve customer: %w", err)
	}
	if _, err := s.storeRepo.GetStoreByID(storeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStoreNotFound
		}
		return fmt.Errorf("failed to retrieve store: %w", err)
	}
	return nil
}

// CreateReservation stores a new reservation with a generated code, then
// optionally sends the customer a WhatsApp confirmation.
func (s *reservationService) CreateReservation(req CreateReservationRequest, actorID int64) (*ReservationResult, error) {
	datetime, err := parseReservationDatetime(req.Datetime)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ReservationPending
	}
	if !models.IsValidReservationStatus(status) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, status)
	}
	if req.Guests != nil && *req.Guests < 0 {
		return nil, fmt.Errorf("%w: guest count cannot be negative", ErrReservationValidation)
	}

	if err := s.checkReferences(req.CustomerID, req.StoreID); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		CustomerID: req.CustomerID,
		StoreID:    req.StoreID,
		Datetime:   datetime,
		Status:     status,
		Notes:      req.Notes,
		Event:      req.Event,
		Room:       req.Room,
		Guests:     req.Guests,
		Code:       GenerateReservationCode(datetime),
		CreatedBy:  &actorID,
		UpdatedBy:  &actorID,
	}

	if _, err := s.reservationRepo.CreateReservation(s.db, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer or store does not exist", ErrReservationValidation)
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	stored, err := s.reservationRepo.GetReservationByID(reservation.ID)
	if err != nil {
		stored = reservation
	}

	result := &ReservationResult{Reservation: stored}
	if req.SendWhatsApp {
		result.WhatsApp = s.whatsappService.SendReservationConfirmation(stored)
	}
	return result, nil
}

// GetReservationByID retrieves a reservation by ID.
func (s *reservationService) GetReservationByID(reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return reservation, nil
}

// GetReservations lists reservations with pagination and search.
func (s *reservationService) GetReservations(opts repositories.ListOptions) ([]models.Reservation, int, error) {
	reservations, total, err := s.reservationRepo.GetReservations(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return reservations, total, nil
}

// UpdateReservation applies the provided fields to an existing reservation.
// The reservation code never changes, even when the datetime does.
func (s *reservationService) UpdateReservation(reservationID int64, req UpdateReservationRequest, actorID int64) (*ReservationResult, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}

	if req.Datetime != nil {
		datetime, err := parseReservationDatetime(*req.Datetime)
		if err != nil {
			return nil, err
		}
		reservation.Datetime = datetime
	}
	if req.Status != nil {
		if !models.IsValidReservationStatus(*req.Status) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, *req.Status)
		}
		reservation.Status = *req.Status
	}
	if req.Guests != nil {
		if *req.Guests < 0 {
			return nil, fmt.Errorf("%w: guest count cannot be negative", ErrReservationValidation)
		}
		reservation.Guests = req.Guests
	}
	if req.CustomerID != nil {
		reservation.CustomerID = *req.CustomerID
	}
	if req.StoreID != nil {
		reservation.StoreID = *req.StoreID
	}
	if req.CustomerID != nil || req.StoreID != nil {
		if err := s.checkReferences(reservation.CustomerID, reservation.StoreID); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		reservation.Notes = req.Notes
	}
	if req.Event != nil {
		reservation.Event = req.Event
	}
	if req.Room != nil {
		reservation.Room = req.Room
	}
	reservation.UpdatedBy = &actorID

	if err := s.reservationRepo.UpdateReservation(s.db, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	stored, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		stored = reservation
	}

	result := &ReservationResult{Reservation: stored}
	if req.SendWhatsApp {
		result.WhatsApp = s.whatsappService.SendReservationConfirmation(stored)
	}
	return result, nil
}

// DeleteReservation removes a reservation.
func (s *reservationService) DeleteReservation(reservationID int64) error {
	if err := s.reservationRepo.DeleteReservation(s.db, reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
