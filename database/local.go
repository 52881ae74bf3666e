package database

import (
	"encoding/json"
	"os"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"municipal-booking/model"
)

// LocalRepository keeps bookings in a JSON file. It stands in for Mongo
// during local runs and in tests; the mutex gives the service the
// serialization point it needs around check-then-act sequences.
type LocalRepository struct {
	mu   sync.RWMutex
	path string
}

func NewLocalRepository(path string) *LocalRepository {
	return &LocalRepository{path: path}
}

func (r *LocalRepository) readAll() ([]model.Booking, error) {
	bookings := []model.Booking{}

	fileBytes, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		os.WriteFile(r.path, []byte("[]"), 0644)
		fileBytes, _ = os.ReadFile(r.path)
	} else if err != nil {
		return nil, err
	}

	err = json.Unmarshal(fileBytes, &bookings)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *LocalRepository) commit(bookings []model.Booking) error {
	bookingsBytes, err := json.MarshalIndent(bookings, "", "	")
	if err != nil {
		return err
	}

	err = os.WriteFile(r.path, bookingsBytes, 0644)
	if err != nil {
		return err
	}

	return nil
}

func (r *LocalRepository) FindByToken(token string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings, err := r.readAll()
	if err != nil {
		return nil, err
	}

	for _, booking := range bookings {
		if booking.Token == token {
			found := booking
			return &found, nil
		}
	}

	return nil, ErrBookingNotFound
}

func (r *LocalRepository) FindByMunicipality(municipality string) ([]model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings, err := r.readAll()
	if err != nil {
		return nil, err
	}

	filtered := []model.Booking{}
	for _, booking := range bookings {
		if booking.Municipality == municipality {
			filtered = append(filtered, booking)
		}
	}

	return filtered, nil
}

func (r *LocalRepository) FindAll() ([]model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readAll()
}

func (r *LocalRepository) Save(booking *model.Booking) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.readAll()
	if err != nil {
		return nil, err
	}

	if booking.Id.IsZero() {
		booking.Id = primitive.NewObjectID()
	}

	updated := false
	for bookingIndex, existing := range bookings {
		if existing.Id == booking.Id {
			bookings[bookingIndex] = *booking
			updated = true
			break
		}
	}
	if !updated {
		bookings = append(bookings, *booking)
	}

	if err := r.commit(bookings); err != nil {
		return nil, err
	}

	return booking, nil
}
