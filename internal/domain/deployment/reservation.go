package deployment

import "addrlease/internal/domain/lease"

// ReservationType is the resolved kind of an address reservation.
type ReservationType string

const (
	ReservationUnresolved ReservationType = "unresolved"
	ReservationStatic     ReservationType = "static"
	ReservationDynamic    ReservationType = "dynamic"
)

// Reservation carries one instance's claim on an address. The allocator
// consumes reservations: it fills in the resolved type and marks them
// reserved after a successful lease, but never constructs or destroys them.
type Reservation struct {
	IP          lease.Address   `json:"ip"`
	NetworkName string          `json:"network_name"`
	Instance    Instance        `json:"instance"`
	Type        ReservationType `json:"type"`
	Reserved    bool            `json:"reserved"`
}

// Resolve records the reservation's resolved type.
func (r *Reservation) Resolve(t ReservationType) {
	r.Type = t
}

// MarkReserved flags the reservation as backed by a stored lease.
func (r *Reservation) MarkReserved() {
	r.Reserved = true
}
