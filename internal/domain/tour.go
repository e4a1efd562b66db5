package domain

import "time"

// Tour is a bookable offering with a fixed seat capacity. Capacity is the
// total number of seats that may ever be booked simultaneously; the catalog
// metadata fields are display-only and carry no invariants.
type Tour struct {
	ID          int64      `json:"id"`
	Category    string     `json:"category"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Capacity    int        `json:"capacity"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Availability is the derived seat picture for one tour: booked is the sum
// of seats across its bookings, available is capacity minus booked floored
// at zero.
type Availability struct {
	TourID    int64 `json:"tourId"`
	Capacity  int   `json:"capacity"`
	Booked    int   `json:"booked"`
	Available int   `json:"available"`
}

// ComputeAvailability derives the availability for a tour. The clamp to zero
// tolerates a capacity that was administratively lowered below the already
// booked total.
func ComputeAvailability(tourID int64, capacity, booked int) Availability {
	available := capacity - booked
	if available < 0 {
		available = 0
	}
	return Availability{
		TourID:    tourID,
		Capacity:  capacity,
		Booked:    booked,
		Available: available,
	}
}
