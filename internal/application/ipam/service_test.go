package ipam

import (
	"context"
	"fmt"
	"testing"

	"addrlease/internal/domain/ipam"
)

// mockIPAMRepository implements ipam.Repository for testing
type mockIPAMRepository struct {
	prefixes map[string]*ipam.Prefix
	children int
}

func newMockIPAMRepository() *mockIPAMRepository {
	return &mockIPAMRepository{prefixes: make(map[string]*ipam.Prefix)}
}

func (m *mockIPAMRepository) EnsureRootPrefix(ctx context.Context, cidr string) (*ipam.Prefix, error) {
	if prefix, exists := m.prefixes[cidr]; exists {
		return prefix, nil
	}
	prefix := &ipam.Prefix{CIDR: cidr}
	m.prefixes[cidr] = prefix
	return prefix, nil
}

func (m *mockIPAMRepository) AcquireChildPrefix(ctx context.Context, parentCIDR string, prefixLen uint8) (*ipam.Prefix, error) {
	m.children++
	childCIDR := fmt.Sprintf("10.0.%d.0/%d", m.children, prefixLen)
	prefix := &ipam.Prefix{CIDR: childCIDR, ParentCIDR: parentCIDR}
	m.prefixes[childCIDR] = prefix
	return prefix, nil
}

func (m *mockIPAMRepository) ReleaseChildPrefix(ctx context.Context, cidr string) error {
	delete(m.prefixes, cidr)
	return nil
}

func TestService_SuggestCIDRs(t *testing.T) {
	tests := []struct {
		name         string
		maxInstances int
		count        int
		expectCount  int
		expectErr    bool
	}{
		{
			name:         "small network",
			maxInstances: 10,
			count:        1,
			expectCount:  1,
		},
		{
			name:         "multiple suggestions",
			maxInstances: 50,
			count:        3,
			expectCount:  3,
		},
		{
			name:         "zero count defaults to 1",
			maxInstances: 10,
			count:        0,
			expectCount:  1,
		},
		{
			name:         "zero maxInstances rejected",
			maxInstances: 0,
			count:        1,
			expectErr:    true,
		},
		{
			name:         "negative maxInstances rejected",
			maxInstances: -1,
			count:        1,
			expectErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockIPAMRepository()
			service := NewService(repo)

			prefixLen, cidrs, err := service.SuggestCIDRs(context.Background(), "10.0.0.0/8", tt.maxInstances, tt.count)
			if tt.expectErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cidrs) != tt.expectCount {
				t.Errorf("expected %d CIDRs, got %d", tt.expectCount, len(cidrs))
			}
			if prefixLen < 8 || prefixLen > 32 {
				t.Errorf("expected prefix length between 8-32, got %d", prefixLen)
			}
			usable := (1 << (32 - prefixLen)) - 2
			if usable < tt.maxInstances {
				t.Errorf("prefix length %d provides %d hosts, need at least %d", prefixLen, usable, tt.maxInstances)
			}
		})
	}
}

func TestService_SuggestCIDRs_ReleasesSuggestions(t *testing.T) {
	repo := newMockIPAMRepository()
	service := NewService(repo)

	_, cidrs, err := service.SuggestCIDRs(context.Background(), "10.0.0.0/8", 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cidrs) != 2 {
		t.Fatalf("expected 2 CIDRs, got %d", len(cidrs))
	}
	// Only the root prefix should remain; suggestions are advisory.
	if len(repo.prefixes) != 1 {
		t.Errorf("expected suggested prefixes to be released, repository holds %d", len(repo.prefixes))
	}
}
