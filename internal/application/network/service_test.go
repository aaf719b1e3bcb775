package network

import (
	"context"
	"errors"
	"testing"

	"addrlease/internal/adapters/db/memory"
	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

func newTestService() (*Service, *memory.LeaseRepository) {
	leases := memory.NewLeaseRepository()
	return NewService(memory.NewNetworkRepository(), leases), leases
}

func TestCreateNetwork(t *testing.T) {
	svc, _ := newTestService()

	n, err := svc.CreateNetwork(context.Background(), &deployment.NetworkCreateRequest{
		Name: "prod",
		Subnets: []deployment.SubnetSpec{
			{CIDR: "10.0.0.0/24", RestrictedIPs: []string{"10.0.0.1"}},
			{CIDR: "10.0.1.0/24", StaticIPs: []string{"10.0.1.10"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID == "" {
		t.Error("expected generated network ID")
	}
	if len(n.Subnets) != 2 {
		t.Fatalf("expected 2 subnets, got %d", len(n.Subnets))
	}

	got, err := svc.GetNetwork(context.Background(), "prod")
	if err != nil {
		t.Fatalf("get network: %v", err)
	}
	if got.Name != "prod" {
		t.Errorf("got network %q", got.Name)
	}
}

func TestCreateNetwork_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  *deployment.NetworkCreateRequest
	}{
		{
			name: "invalid name",
			req: &deployment.NetworkCreateRequest{
				Name:    "Bad Name",
				Subnets: []deployment.SubnetSpec{{CIDR: "10.0.0.0/24"}},
			},
		},
		{
			name: "invalid cidr",
			req: &deployment.NetworkCreateRequest{
				Name:    "prod",
				Subnets: []deployment.SubnetSpec{{CIDR: "not-a-cidr"}},
			},
		},
		{
			name: "overlapping subnets",
			req: &deployment.NetworkCreateRequest{
				Name: "prod",
				Subnets: []deployment.SubnetSpec{
					{CIDR: "10.0.0.0/23"},
					{CIDR: "10.0.1.0/24"},
				},
			},
		},
		{
			name: "restricted ip outside subnet",
			req: &deployment.NetworkCreateRequest{
				Name:    "prod",
				Subnets: []deployment.SubnetSpec{{CIDR: "10.0.0.0/24", RestrictedIPs: []string{"10.9.0.1"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateNetwork(context.Background(), tt.req); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestCreateNetwork_DuplicateName(t *testing.T) {
	svc, _ := newTestService()
	req := &deployment.NetworkCreateRequest{
		Name:    "prod",
		Subnets: []deployment.SubnetSpec{{CIDR: "10.0.0.0/24"}},
	}
	if _, err := svc.CreateNetwork(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateNetwork(context.Background(), req); !errors.Is(err, deployment.ErrDuplicateNetworkName) {
		t.Errorf("expected ErrDuplicateNetworkName, got %v", err)
	}
}

func TestDeleteNetwork_ReleasesLeases(t *testing.T) {
	svc, leases := newTestService()

	if _, err := svc.CreateNetwork(context.Background(), &deployment.NetworkCreateRequest{
		Name:    "prod",
		Subnets: []deployment.SubnetSpec{{CIDR: "10.0.0.0/24"}},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		err := leases.Insert(context.Background(), &lease.Record{
			Address:     lease.MustParseAddress(ip),
			NetworkName: "prod",
			InstanceRef: "prod/web/0",
			TaskID:      "task-1",
		})
		if err != nil {
			t.Fatalf("insert lease: %v", err)
		}
	}

	if err := svc.DeleteNetwork(context.Background(), "prod"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetNetwork(context.Background(), "prod"); !errors.Is(err, deployment.ErrNetworkNotFound) {
		t.Errorf("expected network gone, got %v", err)
	}
	remaining, err := leases.List(context.Background(), "prod")
	if err != nil {
		t.Fatalf("list leases: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected all leases released, %d remain", len(remaining))
	}
}

func TestDeleteNetwork_Missing(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.DeleteNetwork(context.Background(), "ghost"); !errors.Is(err, deployment.ErrNetworkNotFound) {
		t.Errorf("expected ErrNetworkNotFound, got %v", err)
	}
}

func TestListLeases(t *testing.T) {
	svc, leases := newTestService()

	if _, err := svc.ListLeases(context.Background(), "ghost"); !errors.Is(err, deployment.ErrNetworkNotFound) {
		t.Errorf("expected ErrNetworkNotFound for unknown network, got %v", err)
	}

	if _, err := svc.CreateNetwork(context.Background(), &deployment.NetworkCreateRequest{
		Name:    "prod",
		Subnets: []deployment.SubnetSpec{{CIDR: "10.0.0.0/24"}},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := leases.Insert(context.Background(), &lease.Record{
		Address:     lease.MustParseAddress("10.0.0.1"),
		NetworkName: "prod",
		InstanceRef: "prod/web/0",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	records, err := svc.ListLeases(context.Background(), "prod")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Address.String() != "10.0.0.1" {
		t.Errorf("unexpected records: %+v", records)
	}
}
