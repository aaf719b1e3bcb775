package ipam

import (
	"context"
	"fmt"

	"addrlease/internal/domain/ipam"
)

// Service provides prefix-planning helpers backed by the domain Repository.
// Operators use it to size subnets before creating a network; it never touches
// the lease tables.
type Service struct {
	repo ipam.Repository
}

// NewService constructs an IPAM service using the provided repository.
func NewService(repo ipam.Repository) *Service { return &Service{repo: repo} }

// SuggestCIDRs returns CIDRs sized to hold at least maxInstances VMs each.
// baseCIDR is the root block suggestions are carved from (e.g. 10.0.0.0/8).
// count is how many suggestions to produce.
func (s *Service) SuggestCIDRs(ctx context.Context, baseCIDR string, maxInstances, count int) (int, []string, error) {
	if maxInstances <= 0 {
		return 0, nil, fmt.Errorf("maxInstances must be > 0")
	}
	if count <= 0 {
		count = 1
	}

	// Smallest prefix whose usable host count (2^(32-len) - 2) covers the
	// requested instance count.
	prefixLen := 32
	for prefixLen >= 0 {
		usable := (1 << (32 - prefixLen)) - 2
		if usable >= maxInstances {
			break
		}
		prefixLen--
	}
	if prefixLen < 0 {
		return 0, nil, fmt.Errorf("cannot satisfy maxInstances=%d", maxInstances)
	}
	// Bound prefix so we don't propose absurdly small networks
	if prefixLen < 8 {
		prefixLen = 8
	}

	if _, err := s.repo.EnsureRootPrefix(ctx, baseCIDR); err != nil {
		return 0, nil, err
	}

	cidrs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		child, err := s.repo.AcquireChildPrefix(ctx, baseCIDR, uint8(prefixLen))
		if err != nil {
			if len(cidrs) == 0 {
				return 0, nil, fmt.Errorf("failed allocating child prefix: %w", err)
			}
			break
		}
		cidrs = append(cidrs, child.CIDR)
	}

	// Suggestions are advisory; free them so repeated calls don't pin
	// blocks nobody committed to.
	for _, cidr := range cidrs {
		if err := s.repo.ReleaseChildPrefix(ctx, cidr); err != nil {
			return 0, nil, fmt.Errorf("release suggested prefix %s: %w", cidr, err)
		}
	}

	return prefixLen, cidrs, nil
}
