package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

// NetworkRepository is a Postgres implementation of deployment.Repository.
type NetworkRepository struct {
	db *sql.DB
}

// NewNetworkRepository constructs a new repository
func NewNetworkRepository(db *sql.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

func (r *NetworkRepository) CreateNetwork(ctx context.Context, n *deployment.Network) error {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO networks (id,name,created_at,updated_at) VALUES ($1,$2,$3,$4)`,
		n.ID, n.Name, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return deployment.ErrDuplicateNetworkName
		}
		return fmt.Errorf("create network: %w", err)
	}

	for _, s := range n.Subnets {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO subnets (network_id,cidr,first_address,last_address,restricted_ips,static_ips) VALUES ($1,$2,$3,$4,$5,$6)`,
			n.ID, s.CIDR, int64(s.Range.First), int64(s.Range.Last),
			pq.Array(addressesToInt64(s.RestrictedIPs)), pq.Array(addressesToInt64(s.StaticIPs)))
		if err != nil {
			return fmt.Errorf("create subnet %s: %w", s.CIDR, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit network: %w", err)
	}
	return nil
}

func (r *NetworkRepository) GetNetwork(ctx context.Context, name string) (*deployment.Network, error) {
	var n deployment.Network
	err := r.db.QueryRowContext(ctx,
		`SELECT id,name,created_at,updated_at FROM networks WHERE name=$1`, name).
		Scan(&n.ID, &n.Name, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deployment.ErrNetworkNotFound
		}
		return nil, fmt.Errorf("get network: %w", err)
	}

	if n.Subnets, err = r.loadSubnets(ctx, n.ID); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NetworkRepository) ListNetworks(ctx context.Context) ([]*deployment.Network, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,name,created_at,updated_at FROM networks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	defer rows.Close()

	out := make([]*deployment.Network, 0)
	for rows.Next() {
		var n deployment.Network
		if err = rows.Scan(&n.ID, &n.Name, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan network: %w", err)
		}
		out = append(out, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, n := range out {
		if n.Subnets, err = r.loadSubnets(ctx, n.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *NetworkRepository) DeleteNetwork(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM networks WHERE name=$1`, name)
	if err != nil {
		return fmt.Errorf("delete network: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete network: %w", err)
	}
	if affected == 0 {
		return deployment.ErrNetworkNotFound
	}
	return nil
}

func (r *NetworkRepository) loadSubnets(ctx context.Context, networkID string) ([]*deployment.Subnet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cidr,first_address,last_address,restricted_ips,static_ips FROM subnets WHERE network_id=$1 ORDER BY first_address`,
		networkID)
	if err != nil {
		return nil, fmt.Errorf("load subnets: %w", err)
	}
	defer rows.Close()

	out := make([]*deployment.Subnet, 0)
	for rows.Next() {
		var s deployment.Subnet
		var first, last int64
		var restricted, static []int64
		if err = rows.Scan(&s.CIDR, &first, &last, pq.Array(&restricted), pq.Array(&static)); err != nil {
			return nil, fmt.Errorf("scan subnet: %w", err)
		}
		s.Range = deployment.AddrRange{First: lease.Address(first), Last: lease.Address(last)}
		s.RestrictedIPs = int64ToAddresses(restricted)
		s.StaticIPs = int64ToAddresses(static)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func addressesToInt64(in []lease.Address) []int64 {
	out := make([]int64, 0, len(in))
	for _, a := range in {
		out = append(out, int64(a))
	}
	return out
}

func int64ToAddresses(in []int64) []lease.Address {
	if len(in) == 0 {
		return nil
	}
	out := make([]lease.Address, 0, len(in))
	for _, v := range in {
		out = append(out, lease.Address(v))
	}
	return out
}

// Ensure interface compliance
var _ deployment.Repository = (*NetworkRepository)(nil)
