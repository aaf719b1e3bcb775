package deployment

import "context"

// Repository defines persistence operations for networks.
type Repository interface {
	CreateNetwork(ctx context.Context, n *Network) error
	GetNetwork(ctx context.Context, name string) (*Network, error)
	ListNetworks(ctx context.Context) ([]*Network, error)
	DeleteNetwork(ctx context.Context, name string) error
}
