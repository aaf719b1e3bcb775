package memory

import (
	"context"
	"sync"
	"time"

	"addrlease/internal/domain/deployment"
)

// NetworkRepository is an in-memory implementation of deployment.Repository.
type NetworkRepository struct {
	mu       sync.RWMutex
	networks map[string]*deployment.Network // keyed by name
}

// NewNetworkRepository creates a new in-memory network repository.
func NewNetworkRepository() *NetworkRepository {
	return &NetworkRepository{networks: make(map[string]*deployment.Network)}
}

func (r *NetworkRepository) CreateNetwork(ctx context.Context, n *deployment.Network) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.networks[n.Name]; exists {
		return deployment.ErrDuplicateNetworkName
	}
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	r.networks[n.Name] = n
	return nil
}

func (r *NetworkRepository) GetNetwork(ctx context.Context, name string) (*deployment.Network, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.networks[name]
	if !exists {
		return nil, deployment.ErrNetworkNotFound
	}
	return n, nil
}

func (r *NetworkRepository) ListNetworks(ctx context.Context) ([]*deployment.Network, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*deployment.Network, 0, len(r.networks))
	for _, n := range r.networks {
		out = append(out, n)
	}
	return out, nil
}

func (r *NetworkRepository) DeleteNetwork(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.networks[name]; !exists {
		return deployment.ErrNetworkNotFound
	}
	delete(r.networks, name)
	return nil
}

// Interface compliance assertion
var _ deployment.Repository = (*NetworkRepository)(nil)
