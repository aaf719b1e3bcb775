package ipam

import "context"

// Prefix is a CIDR block managed by the prefix planner.
type Prefix struct {
	CIDR        string `json:"cidr"`
	ParentCIDR  string `json:"parent_cidr,omitempty"`
	UsableHosts int    `json:"usable_hosts"`
}

// Repository defines prefix-planning operations used when sizing subnets for
// new networks. This is advisory tooling around network creation; it plays no
// part in address leasing.
type Repository interface {
	EnsureRootPrefix(ctx context.Context, cidr string) (*Prefix, error)
	AcquireChildPrefix(ctx context.Context, parentCIDR string, prefixLen uint8) (*Prefix, error)
	ReleaseChildPrefix(ctx context.Context, cidr string) error
}
