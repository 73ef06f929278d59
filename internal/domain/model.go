package domain

import "time"

// Caller is the opaque identity of the principal invoking an operation.
// Two callers are the same principal iff the values compare equal.
type Caller string

// Hotel is the single registry row. At most one exists for the lifetime
// of the data set; Owner never changes after creation.
type Hotel struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Owner       Caller     `json:"owner"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type Room struct {
	ID          string     `json:"id"`
	RoomNumber  string     `json:"room_number"` // display label, not unique
	IsBooked    bool       `json:"is_booked"`
	Price       string     `json:"price"` // decimal text, stored verbatim
	CreatedDate time.Time  `json:"created_date"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Reservation is immutable after creation and never deleted.
type Reservation struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"room_id"`
	Guest        Caller    `json:"guest"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	CreatedDate  time.Time `json:"created_date"`
}

type Payment struct {
	ID            string     `json:"id"`
	ReservationID string     `json:"reservation_id"`
	Amount        string     `json:"amount"` // decimal text, stored verbatim
	CreatedDate   time.Time  `json:"created_date"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
