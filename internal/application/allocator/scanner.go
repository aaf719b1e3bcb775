package allocator

import (
	"sort"

	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

// nextFreeAddress computes the lowest free address of a subnet given the
// network's current occupancy. It reasons only over the blocked set instead of
// walking the full range, which keeps it cheap on large, sparsely used
// subnets.
//
// The address just below the range acts as a sentinel that is always treated
// as occupied, so the very first address of the range is discoverable as
// "free slot after an occupied one".
func nextFreeAddress(used []lease.Address, subnet *deployment.Subnet) (lease.Address, bool) {
	first := subnet.Range.First
	sentinel := first - 1

	blocked := map[lease.Address]struct{}{sentinel: {}}
	for _, a := range used {
		if a >= first {
			blocked[a] = struct{}{}
		}
	}
	for _, a := range subnet.RestrictedIPs {
		if a >= first {
			blocked[a] = struct{}{}
		}
	}
	for _, a := range subnet.StaticIPs {
		if a >= first {
			blocked[a] = struct{}{}
		}
	}

	sorted := make([]lease.Address, 0, len(blocked))
	for a := range blocked {
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	// First gap immediately following a contiguous run of blocked addresses.
	for _, a := range sorted {
		candidate := a + 1
		if _, taken := blocked[candidate]; taken {
			continue
		}
		if !subnet.Range.Contains(candidate) {
			return 0, false
		}
		return candidate, true
	}
	return 0, false
}
