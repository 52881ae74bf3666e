package service

import (
	"fmt"
	"strings"
	"sync"

	"municipal-booking/config"
	"municipal-booking/database"
	"municipal-booking/model"
)

// BookingService runs the admission checks on new bookings and the
// status state machine on existing ones. The capacity and conflict
// rules are check-then-act over the whole booking population, so the
// mutex serializes every admission and transition end to end: read,
// decide, persist.
type BookingService struct {
	mu        sync.Mutex
	repo      database.BookingRepository
	directory MunicipalityDirectory
}

func NewBookingService(repo database.BookingRepository, directory MunicipalityDirectory) *BookingService {
	return &BookingService{repo: repo, directory: directory}
}

var allowedTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.StatusReceived:   {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress: {model.StatusCompleted, model.StatusCancelled},
	model.StatusCompleted:  {},
	model.StatusCancelled:  {},
}

// CreateBooking admits a new booking or rejects it with the first
// failing rule: description length, self-validation, municipality,
// daily capacity, slot conflict, active-booking ceiling. Nothing is
// persisted unless every rule passes.
func (s *BookingService) CreateBooking(booking *model.Booking) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(strings.TrimSpace(booking.Description)) < config.MIN_DESCRIPTION_LENGTH {
		return nil, model.ValidationError("description too short")
	}

	if err := booking.ValidateSelf(); err != nil {
		return nil, err
	}

	municipalities, err := s.directory.ListMunicipalities()
	if err != nil {
		return nil, err
	}
	knownMunicipality := false
	for _, municipality := range municipalities {
		if municipality == booking.Municipality {
			knownMunicipality = true
			break
		}
	}
	if !knownMunicipality {
		return nil, model.ValidationError(fmt.Sprintf("invalid municipality: %v", booking.Municipality))
	}

	// Cancelled and completed bookings still occupy a daily slot here.
	sameMunicipality, err := s.repo.FindByMunicipality(booking.Municipality)
	if err != nil {
		return nil, err
	}
	dailyCount := 0
	for _, existing := range sameMunicipality {
		if existing.RequestedDate == booking.RequestedDate {
			dailyCount++
		}
	}
	if dailyCount >= config.DAILY_BOOKING_LIMIT {
		return nil, model.ValidationError("daily limit reached for the requested date")
	}

	allBookings, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	for _, existing := range allBookings {
		if existing.RequestedDate == booking.RequestedDate &&
			existing.TimeSlot == booking.TimeSlot &&
			existing.Status != model.StatusCancelled {
			return nil, model.ValidationError("time-slot conflict: the requested slot is already taken")
		}
	}

	activeCount := 0
	for _, existing := range allBookings {
		if existing.Status != model.StatusCancelled && existing.Status != model.StatusCompleted {
			activeCount++
		}
	}
	if activeCount >= config.MAX_ACTIVE_BOOKINGS {
		return nil, model.ValidationError("active booking limit reached")
	}

	return s.repo.Save(booking)
}

func (s *BookingService) GetBookingByToken(token string) (*model.Booking, error) {
	return s.repo.FindByToken(token)
}

func (s *BookingService) GetBookingsByMunicipality(municipality string) ([]model.Booking, error) {
	return s.repo.FindByMunicipality(municipality)
}

func (s *BookingService) GetAllBookings() ([]model.Booking, error) {
	return s.repo.FindAll()
}

// UpdateBookingStatus moves the booking found by token to newStatus if
// the state machine allows it. Terminal statuses allow nothing, so a
// completed or cancelled booking never changes again.
func (s *BookingService) UpdateBookingStatus(token string, newStatus model.BookingStatus) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.repo.FindByToken(token)
	if err != nil {
		return nil, err
	}

	validTransition := false
	for _, allowed := range allowedTransitions[booking.Status] {
		if allowed == newStatus {
			validTransition = true
			break
		}
	}
	if !validTransition {
		return nil, model.ValidationError(fmt.Sprintf(
			"invalid transition from %v to %v", booking.Status, newStatus))
	}

	booking.AddStatus(newStatus)

	return s.repo.Save(booking)
}

func (s *BookingService) CancelBooking(token string) (*model.Booking, error) {
	return s.UpdateBookingStatus(token, model.StatusCancelled)
}
