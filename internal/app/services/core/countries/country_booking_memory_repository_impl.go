package countries

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/exceptions"
	"context"
	"strings"
	"sync"
)

// CountryBookingMemoryRepository is an isolated in-process store for one
// country. Uniqueness is enforced only after EnsureIndexes(ctx, true).
type CountryBookingMemoryRepository struct {
	mu          sync.RWMutex
	countryCode string
	unique      bool
	bookings    []models.CountryBooking
}

func NewCountryBookingMemoryRepository(countryCode string) contracts.CountryBookingRepository {
	return &CountryBookingMemoryRepository{countryCode: strings.ToUpper(countryCode)}
}

func (r *CountryBookingMemoryRepository) EnsureIndexes(ctx context.Context, unique bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unique = unique
	return nil
}

func (r *CountryBookingMemoryRepository) Create(ctx context.Context, booking *models.CountryBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unique {
		for _, existing := range r.bookings {
			if existing.ExternalID == booking.ExternalID {
				return exceptions.ErrBookingAlreadyExists(ErrExternalIDTaken, booking.ExternalID, r.countryCode)
			}
		}
		for _, existing := range r.bookings {
			if existing.ScheduleID == booking.ScheduleID {
				return exceptions.ErrScheduleAlreadyBooked(ErrScheduleTaken, booking.ScheduleID, r.countryCode)
			}
		}
	}
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *CountryBookingMemoryRepository) IsScheduleFree(ctx context.Context, scheduleID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.bookings {
		if existing.ScheduleID == scheduleID {
			return false, nil
		}
	}
	return true, nil
}

func (r *CountryBookingMemoryRepository) FindByExternalID(ctx context.Context, externalID string) (*models.CountryBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.bookings {
		if existing.ExternalID == externalID {
			booking := existing
			return &booking, nil
		}
	}
	return nil, nil
}

// Bookings returns a snapshot of the store contents.
func (r *CountryBookingMemoryRepository) Bookings() []models.CountryBooking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CountryBooking(nil), r.bookings...)
}
