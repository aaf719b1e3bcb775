package postgres

import (
	"context"
	"database/sql"
	"fmt"

	goipam "github.com/metal-stack/go-ipam"

	"addrlease/internal/domain/ipam"
)

// IPAMRepository is a Postgres-backed implementation of ipam.Repository. It
// keeps an in-memory go-ipam engine for the carving logic and persists
// prefixes to the ipam_prefixes table so suggestions survive restarts.
type IPAMRepository struct {
	db     *sql.DB
	engine goipam.Ipamer
}

// NewIPAMRepository creates a repository and reloads previously persisted
// prefixes into the engine.
func NewIPAMRepository(ctx context.Context, db *sql.DB) (*IPAMRepository, error) {
	r := &IPAMRepository{db: db, engine: goipam.New(ctx)}
	rows, err := db.QueryContext(ctx, `SELECT cidr FROM ipam_prefixes ORDER BY parent_cidr NULLS FIRST, cidr`)
	if err != nil {
		return nil, fmt.Errorf("load prefixes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cidr string
		if err = rows.Scan(&cidr); err != nil {
			return nil, err
		}
		// Roots reload cleanly; children of a reloaded root may already be
		// carved, so creation failures here are not fatal.
		_, _ = r.engine.NewPrefix(ctx, cidr)
	}
	return r, rows.Err()
}

// EnsureRootPrefix ensures a root prefix exists (creates if missing).
func (r *IPAMRepository) EnsureRootPrefix(ctx context.Context, cidr string) (*ipam.Prefix, error) {
	p, err := r.engine.PrefixFrom(ctx, cidr)
	if err != nil {
		p, err = r.engine.NewPrefix(ctx, cidr)
		if err != nil {
			return nil, fmt.Errorf("ensure root prefix: %w", err)
		}
		if _, err = r.db.ExecContext(ctx,
			`INSERT INTO ipam_prefixes (cidr, parent_cidr) VALUES ($1, NULL) ON CONFLICT DO NOTHING`, cidr); err != nil {
			return nil, fmt.Errorf("persist root prefix: %w", err)
		}
	}
	usage := p.Usage()
	return &ipam.Prefix{CIDR: p.Cidr, ParentCIDR: "", UsableHosts: int(usage.AvailableIPs)}, nil // #nosec G115 - AvailableIPs fits in int
}

func (r *IPAMRepository) AcquireChildPrefix(ctx context.Context, parentCIDR string, prefixLen uint8) (*ipam.Prefix, error) {
	child, err := r.engine.AcquireChildPrefix(ctx, parentCIDR, prefixLen)
	if err != nil {
		return nil, err
	}
	if _, err = r.db.ExecContext(ctx,
		`INSERT INTO ipam_prefixes (cidr, parent_cidr) VALUES ($1, $2) ON CONFLICT DO NOTHING`, child.Cidr, parentCIDR); err != nil {
		return nil, fmt.Errorf("persist child prefix: %w", err)
	}
	usage := child.Usage()
	return &ipam.Prefix{CIDR: child.Cidr, ParentCIDR: parentCIDR, UsableHosts: int(usage.AvailableIPs)}, nil // #nosec G115 - AvailableIPs fits in int
}

func (r *IPAMRepository) ReleaseChildPrefix(ctx context.Context, cidr string) error {
	p, err := r.engine.PrefixFrom(ctx, cidr)
	if err != nil {
		return err
	}
	if err = r.engine.ReleaseChildPrefix(ctx, p); err != nil {
		return err
	}
	if _, err = r.db.ExecContext(ctx, `DELETE FROM ipam_prefixes WHERE cidr = $1`, cidr); err != nil {
		return fmt.Errorf("delete child prefix: %w", err)
	}
	return nil
}

// Ensure interface compliance
var _ ipam.Repository = (*IPAMRepository)(nil)
