package allocator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

// Service is the reservation conflict resolver. It hands out unique addresses
// on a network without any lock: the repository's uniqueness constraint on
// (address, network) is the single serialization point, and every conflict it
// surfaces is reconciled after the fact.
type Service struct {
	repo lease.Repository
}

// NewService constructs an allocator backed by the given lease repository.
func NewService(repo lease.Repository) *Service {
	return &Service{repo: repo}
}

// AllocateDynamic leases the lowest free address of subnet for the
// reservation. The bool result is false when the pool is exhausted, which is
// a normal outcome, not an error.
//
// Each attempt re-reads the occupancy snapshot before scanning: a conflict
// means another worker claimed the candidate between scan and insert, so the
// stale snapshot must be thrown away rather than advanced to the next
// candidate.
func (s *Service) AllocateDynamic(ctx context.Context, taskID string, net *deployment.Network, subnet *deployment.Subnet, res *deployment.Reservation) (lease.Address, bool, error) {
	for {
		used, err := s.repo.ListAddresses(ctx, net.Name)
		if err != nil {
			return 0, false, fmt.Errorf("list addresses: %w", err)
		}

		candidate, ok := nextFreeAddress(used, subnet)
		if !ok {
			log.Debug().
				Str("network", net.Name).
				Str("subnet", subnet.CIDR).
				Msg("Dynamic pool exhausted")
			return 0, false, nil
		}

		err = s.repo.Insert(ctx, &lease.Record{
			Address:     candidate,
			NetworkName: net.Name,
			InstanceRef: res.Instance.Ref(),
			TaskID:      taskID,
			CreatedAt:   time.Now(),
		})
		if errors.Is(err, lease.ErrAddressTaken) {
			// Lost the race for this slot; occupancy changed under us.
			log.Debug().
				Str("network", net.Name).
				Str("address", candidate.String()).
				Msg("Dynamic allocation conflict, rescanning")
			continue
		}
		if err != nil {
			return 0, false, err
		}

		res.IP = candidate
		res.Resolve(deployment.ReservationDynamic)
		res.MarkReserved()
		log.Info().
			Str("network", net.Name).
			Str("address", candidate.String()).
			Str("instance", res.Instance.Ref()).
			Str("task_id", taskID).
			Msg("Leased dynamic address")
		return candidate, true, nil
	}
}

// AllocateDynamicAny tries the network's subnets in order until one yields an
// address. False means every subnet is exhausted.
func (s *Service) AllocateDynamicAny(ctx context.Context, taskID string, net *deployment.Network, res *deployment.Reservation) (lease.Address, bool, error) {
	for _, subnet := range net.Subnets {
		addr, ok, err := s.AllocateDynamic(ctx, taskID, net, subnet, res)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return addr, true, nil
		}
	}
	return 0, false, nil
}

// Reserve leases the explicit address carried by the reservation. The insert
// runs before any ownership validation: the constraint itself arbitrates the
// race, and validation only reconciles a surfaced conflict.
//
// A conflicting lease held by the same instance is an idempotent re-add (the
// static flag is realigned if the classification changed). A lease held by a
// different instance fails with *AddressInUseError and leaves the stored
// record untouched.
func (s *Service) Reserve(ctx context.Context, taskID string, net *deployment.Network, res *deployment.Reservation) error {
	addr := res.IP
	ipType := net.IPType(addr)
	static := ipType == deployment.IPTypeStatic

	for {
		err := s.repo.Insert(ctx, &lease.Record{
			Address:     addr,
			NetworkName: net.Name,
			InstanceRef: res.Instance.Ref(),
			TaskID:      taskID,
			Static:      static,
			CreatedAt:   time.Now(),
		})
		if err == nil {
			log.Info().
				Str("network", net.Name).
				Str("address", addr.String()).
				Str("instance", res.Instance.Ref()).
				Str("task_id", taskID).
				Bool("static", static).
				Msg("Leased address")
			break
		}
		if !errors.Is(err, lease.ErrAddressTaken) {
			return err
		}

		existing, err := s.repo.Find(ctx, addr, net.Name)
		if errors.Is(err, lease.ErrRecordNotFound) {
			// The conflicting row disappeared before we could read it
			// (released or rolled back). Retry the whole attempt.
			continue
		}
		if err != nil {
			return fmt.Errorf("find lease after conflict: %w", err)
		}

		if existing.InstanceRef != res.Instance.Ref() {
			return &AddressInUseError{
				Address:     addr,
				NetworkName: net.Name,
				HolderRef:   existing.InstanceRef,
			}
		}

		// Same instance re-reserving its own address.
		if existing.Static != static {
			if err := s.repo.SetStatic(ctx, addr, net.Name, static); err != nil {
				return fmt.Errorf("update static flag: %w", err)
			}
			log.Info().
				Str("network", net.Name).
				Str("address", addr.String()).
				Str("instance", res.Instance.Ref()).
				Bool("static", static).
				Msg("Reclassified existing lease")
		}
		break
	}

	if static {
		res.Resolve(deployment.ReservationStatic)
	} else {
		res.Resolve(deployment.ReservationDynamic)
	}
	res.MarkReserved()
	return nil
}

// Release frees a leased address. Releasing an address that was never
// reserved is a normal no-op, observable only in the log.
func (s *Service) Release(ctx context.Context, addr lease.Address, networkName string) error {
	err := s.repo.Delete(ctx, addr, networkName)
	if errors.Is(err, lease.ErrRecordNotFound) {
		log.Info().
			Str("network", networkName).
			Str("address", addr.String()).
			Msg("Release of unleased address ignored")
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	log.Info().
		Str("network", networkName).
		Str("address", addr.String()).
		Msg("Released address")
	return nil
}
