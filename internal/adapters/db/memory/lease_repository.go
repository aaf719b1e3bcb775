package memory

import (
	"context"
	"sync"

	"addrlease/internal/domain/lease"
)

// LeaseRepository is an in-memory implementation of lease.Repository.
// A single mutex plays the role of the database uniqueness constraint:
// Insert checks and creates under one lock hold, so two concurrent inserts of
// the same (address, network) pair resolve to exactly one winner.
type LeaseRepository struct {
	mu      sync.Mutex
	records map[string]map[lease.Address]*lease.Record // network name -> address -> record
}

// NewLeaseRepository creates an empty in-memory lease repository.
func NewLeaseRepository() *LeaseRepository {
	return &LeaseRepository{records: make(map[string]map[lease.Address]*lease.Record)}
}

func (r *LeaseRepository) Insert(ctx context.Context, rec *lease.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byAddr, ok := r.records[rec.NetworkName]
	if !ok {
		byAddr = make(map[lease.Address]*lease.Record)
		r.records[rec.NetworkName] = byAddr
	}
	if _, exists := byAddr[rec.Address]; exists {
		return lease.ErrAddressTaken
	}
	stored := *rec
	byAddr[rec.Address] = &stored
	return nil
}

func (r *LeaseRepository) Find(ctx context.Context, addr lease.Address, networkName string) (*lease.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[networkName][addr]
	if !ok {
		return nil, lease.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *LeaseRepository) SetStatic(ctx context.Context, addr lease.Address, networkName string, static bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[networkName][addr]
	if !ok {
		return lease.ErrRecordNotFound
	}
	rec.Static = static
	return nil
}

func (r *LeaseRepository) Delete(ctx context.Context, addr lease.Address, networkName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[networkName][addr]; !ok {
		return lease.ErrRecordNotFound
	}
	delete(r.records[networkName], addr)
	return nil
}

func (r *LeaseRepository) ListAddresses(ctx context.Context, networkName string) ([]lease.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]lease.Address, 0, len(r.records[networkName]))
	for addr := range r.records[networkName] {
		out = append(out, addr)
	}
	return out, nil
}

func (r *LeaseRepository) List(ctx context.Context, networkName string) ([]*lease.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*lease.Record, 0, len(r.records[networkName]))
	for _, rec := range r.records[networkName] {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// Interface compliance assertion
var _ lease.Repository = (*LeaseRepository)(nil)
