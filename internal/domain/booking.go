package domain

import "time"

// Booking is a confirmed reservation of seats against one tour. Bookings are
// created exactly once and never mutated or deleted; the booked total for a
// tour is always derived by summing this ledger.
type Booking struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	TourID          int64     `json:"tourId"`
	Seats           int       `json:"seats"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
	CreatedAt       time.Time `json:"createdAt"`
}
