package memory

import (
	"context"
	"fmt"

	goipam "github.com/metal-stack/go-ipam"

	"addrlease/internal/domain/ipam"
)

// IPAMRepository is an in-memory implementation of ipam.Repository backed by
// go-ipam.
type IPAMRepository struct {
	engine goipam.Ipamer
}

// NewIPAMRepository creates a new in-memory IPAM repository.
func NewIPAMRepository(ctx context.Context) *IPAMRepository {
	return &IPAMRepository{engine: goipam.New(ctx)}
}

// EnsureRootPrefix ensures a root prefix exists (creates if missing).
func (r *IPAMRepository) EnsureRootPrefix(ctx context.Context, cidr string) (*ipam.Prefix, error) {
	p, err := r.engine.PrefixFrom(ctx, cidr)
	if err != nil {
		p, err = r.engine.NewPrefix(ctx, cidr)
		if err != nil {
			return nil, fmt.Errorf("ensure root prefix: %w", err)
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
	usage := child.Usage()
	return &ipam.Prefix{CIDR: child.Cidr, ParentCIDR: parentCIDR, UsableHosts: int(usage.AvailableIPs)}, nil // #nosec G115 - AvailableIPs fits in int
}

func (r *IPAMRepository) ReleaseChildPrefix(ctx context.Context, cidr string) error {
	p, err := r.engine.PrefixFrom(ctx, cidr)
	if err != nil {
		return err
	}
	return r.engine.ReleaseChildPrefix(ctx, p)
}

// Interface compliance assertion
var _ ipam.Repository = (*IPAMRepository)(nil)
