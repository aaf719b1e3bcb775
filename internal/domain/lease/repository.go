package lease

import "context"

// Repository defines persistence operations for address records.
//
// Insert is the correctness anchor of the whole subsystem: it must create the
// record atomically and fail with ErrAddressTaken if a record already exists
// for the same (Address, NetworkName) pair. Any other failure (connectivity,
// validation, corruption) must propagate unchanged so callers never mistake an
// infrastructure fault for a lost race.
type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	Find(ctx context.Context, addr Address, networkName string) (*Record, error)
	SetStatic(ctx context.Context, addr Address, networkName string, static bool) error
	Delete(ctx context.Context, addr Address, networkName string) error

	// ListAddresses returns the occupancy snapshot for a network. Each call
	// must observe all records committed at call time; the scanner re-reads
	// it on every attempt and never caches across calls.
	ListAddresses(ctx context.Context, networkName string) ([]Address, error)

	// List returns full records for a network, for the API surface and
	// network teardown.
	List(ctx context.Context, networkName string) ([]*Record, error)
}
