package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"addrlease/internal/domain/lease"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint.
const uniqueViolation = pq.ErrorCode("23505")

// LeaseRepository is a Postgres implementation of lease.Repository. The
// UNIQUE (address, network_name) constraint on ip_addresses is the atomic
// arbiter the allocator's optimistic inserts rely on; no row locks are taken.
type LeaseRepository struct {
	db *sql.DB
}

// NewLeaseRepository constructs a new repository
func NewLeaseRepository(db *sql.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

func (r *LeaseRepository) Insert(ctx context.Context, rec *lease.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ip_addresses (address,network_name,instance_ref,task_id,static,created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		int64(rec.Address), rec.NetworkName, rec.InstanceRef, rec.TaskID, rec.Static, rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return lease.ErrAddressTaken
		}
		// Anything else is an infrastructure fault and must stay
		// distinguishable from a lost race.
		return fmt.Errorf("insert lease: %w", err)
	}
	return nil
}

func (r *LeaseRepository) Find(ctx context.Context, addr lease.Address, networkName string) (*lease.Record, error) {
	var rec lease.Record
	var rawAddr int64
	err := r.db.QueryRowContext(ctx,
		`SELECT address,network_name,instance_ref,task_id,static,created_at FROM ip_addresses WHERE address=$1 AND network_name=$2`,
		int64(addr), networkName).
		Scan(&rawAddr, &rec.NetworkName, &rec.InstanceRef, &rec.TaskID, &rec.Static, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lease.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find lease: %w", err)
	}
	rec.Address = lease.Address(rawAddr)
	return &rec, nil
}

func (r *LeaseRepository) SetStatic(ctx context.Context, addr lease.Address, networkName string, static bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ip_addresses SET static=$3 WHERE address=$1 AND network_name=$2`,
		int64(addr), networkName, static)
	if err != nil {
		return fmt.Errorf("update static flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update static flag: %w", err)
	}
	if affected == 0 {
		return lease.ErrRecordNotFound
	}
	return nil
}

func (r *LeaseRepository) Delete(ctx context.Context, addr lease.Address, networkName string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM ip_addresses WHERE address=$1 AND network_name=$2`,
		int64(addr), networkName)
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	if affected == 0 {
		return lease.ErrRecordNotFound
	}
	return nil
}

// ListAddresses reads the occupancy snapshot for a network. A single SELECT
// observes one consistent snapshot, which is all the scanner requires.
func (r *LeaseRepository) ListAddresses(ctx context.Context, networkName string) ([]lease.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT address FROM ip_addresses WHERE network_name=$1 ORDER BY address`, networkName)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := make([]lease.Address, 0)
	for rows.Next() {
		var raw int64
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, lease.Address(raw))
	}
	return out, rows.Err()
}

func (r *LeaseRepository) List(ctx context.Context, networkName string) ([]*lease.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT address,network_name,instance_ref,task_id,static,created_at FROM ip_addresses WHERE network_name=$1 ORDER BY address`,
		networkName)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	out := make([]*lease.Record, 0)
	for rows.Next() {
		var rec lease.Record
		var rawAddr int64
		if err = rows.Scan(&rawAddr, &rec.NetworkName, &rec.InstanceRef, &rec.TaskID, &rec.Static, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		rec.Address = lease.Address(rawAddr)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Ensure interface compliance
var _ lease.Repository = (*LeaseRepository)(nil)
