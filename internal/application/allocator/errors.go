package allocator

import (
	"fmt"

	"addrlease/internal/domain/lease"
)

// AddressInUseError reports that an explicit reservation collided with a lease
// held by a different instance. Terminal: the allocator never overwrites a
// foreign lease.
type AddressInUseError struct {
	Address     lease.Address
	NetworkName string
	HolderRef   string // instance holding the conflicting lease
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("address %s on network %q is already in use by instance %s",
		e.Address, e.NetworkName, e.HolderRef)
}
