package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
	"addrlease/internal/infrastructure/validation"
)

// Service manages networks and their subnets. Network teardown releases every
// lease held on the network before the definition is removed.
type Service struct {
	networks deployment.Repository
	leases   lease.Repository
}

// NewService constructs a network service using the provided repositories.
func NewService(networks deployment.Repository, leases lease.Repository) *Service {
	return &Service{networks: networks, leases: leases}
}

// CreateNetwork validates the request and persists a new network.
func (s *Service) CreateNetwork(ctx context.Context, req *deployment.NetworkCreateRequest) (*deployment.Network, error) {
	if err := validation.ValidateNetworkName(req.Name); err != nil {
		return nil, fmt.Errorf("network name: %w", err)
	}

	subnets := make([]*deployment.Subnet, 0, len(req.Subnets))
	for _, spec := range req.Subnets {
		subnet, err := deployment.NewSubnet(spec.CIDR, spec.RestrictedIPs, spec.StaticIPs)
		if err != nil {
			return nil, err
		}
		for _, existing := range subnets {
			if subnet.Range.First <= existing.Range.Last && existing.Range.First <= subnet.Range.Last {
				return nil, fmt.Errorf("subnet %s overlaps %s", subnet.CIDR, existing.CIDR)
			}
		}
		subnets = append(subnets, subnet)
	}

	n := &deployment.Network{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Subnets: subnets,
	}
	if err := s.networks.CreateNetwork(ctx, n); err != nil {
		return nil, err
	}
	log.Info().
		Str("network", n.Name).
		Int("subnets", len(n.Subnets)).
		Msg("Created network")
	return n, nil
}

// GetNetwork returns a network by name.
func (s *Service) GetNetwork(ctx context.Context, name string) (*deployment.Network, error) {
	return s.networks.GetNetwork(ctx, name)
}

// ListNetworks returns all networks.
func (s *Service) ListNetworks(ctx context.Context) ([]*deployment.Network, error) {
	return s.networks.ListNetworks(ctx)
}

// DeleteNetwork releases every lease on the network and removes its
// definition.
func (s *Service) DeleteNetwork(ctx context.Context, name string) error {
	if _, err := s.networks.GetNetwork(ctx, name); err != nil {
		return err
	}

	records, err := s.leases.List(ctx, name)
	if err != nil {
		return fmt.Errorf("list leases for teardown: %w", err)
	}
	for _, rec := range records {
		if err := s.leases.Delete(ctx, rec.Address, name); err != nil && !errors.Is(err, lease.ErrRecordNotFound) {
			return fmt.Errorf("release %s during teardown: %w", rec.Address, err)
		}
	}

	if err := s.networks.DeleteNetwork(ctx, name); err != nil {
		return err
	}
	log.Info().
		Str("network", name).
		Int("released", len(records)).
		Msg("Deleted network")
	return nil
}

// ListLeases returns the current lease records of a network.
func (s *Service) ListLeases(ctx context.Context, name string) ([]*lease.Record, error) {
	if _, err := s.networks.GetNetwork(ctx, name); err != nil {
		return nil, err
	}
	return s.leases.List(ctx, name)
}
