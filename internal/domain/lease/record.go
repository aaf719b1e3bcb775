package lease

import "time"

// Record is one leased IPv4 address on a network. At most one Record may exist
// per (Address, NetworkName) pair; the repository enforces that with a
// uniqueness constraint, which is the only serialization point the allocator
// depends on.
type Record struct {
	Address     Address   `json:"address"`
	NetworkName string    `json:"network_name"`
	InstanceRef string    `json:"instance_ref"` // owning instance identity
	TaskID      string    `json:"task_id"`      // provenance: task that created the lease
	Static      bool      `json:"static"`       // explicitly requested at a fixed address
	CreatedAt   time.Time `json:"created_at"`
}
