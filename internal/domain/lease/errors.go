package lease

import "errors"

var (
	// ErrAddressTaken reports that a record already exists for the
	// (address, network) pair. It is the repository-level conflict signal
	// and must never be conflated with other storage faults.
	ErrAddressTaken = errors.New("address already taken on network")

	// ErrRecordNotFound reports that no record exists for the pair.
	ErrRecordNotFound = errors.New("address record not found")
)
