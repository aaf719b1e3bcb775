package deployment

import (
	"errors"
	"testing"

	"addrlease/internal/domain/lease"
)

func TestNewSubnet(t *testing.T) {
	tests := []struct {
		name      string
		cidr      string
		wantFirst string
		wantLast  string
		wantSize  int
		expectErr bool
	}{
		{
			name:      "slash 24",
			cidr:      "10.0.0.0/24",
			wantFirst: "10.0.0.1",
			wantLast:  "10.0.0.254",
			wantSize:  254,
		},
		{
			name:      "slash 30",
			cidr:      "192.168.1.0/30",
			wantFirst: "192.168.1.1",
			wantLast:  "192.168.1.2",
			wantSize:  2,
		},
		{
			name:      "normalizes host bits",
			cidr:      "10.1.2.3/24",
			wantFirst: "10.1.2.1",
			wantLast:  "10.1.2.254",
			wantSize:  254,
		},
		{
			name:      "slash 31 has no hosts",
			cidr:      "10.0.0.0/31",
			expectErr: true,
		},
		{
			name:      "not a cidr",
			cidr:      "10.0.0.0",
			expectErr: true,
		},
		{
			name:      "ipv6 rejected",
			cidr:      "fd00::/64",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSubnet(tt.cidr, nil, nil)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.cidr)
				}
				if !errors.Is(err, ErrInvalidCIDR) {
					t.Errorf("expected ErrInvalidCIDR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := s.Range.First.String(); got != tt.wantFirst {
				t.Errorf("first = %s, want %s", got, tt.wantFirst)
			}
			if got := s.Range.Last.String(); got != tt.wantLast {
				t.Errorf("last = %s, want %s", got, tt.wantLast)
			}
			if got := s.Range.Size(); got != tt.wantSize {
				t.Errorf("size = %d, want %d", got, tt.wantSize)
			}
		})
	}
}

func TestNewSubnet_ExclusionValidation(t *testing.T) {
	if _, err := NewSubnet("10.0.0.0/24", []string{"10.0.1.5"}, nil); err == nil {
		t.Error("expected error for restricted ip outside subnet")
	}
	if _, err := NewSubnet("10.0.0.0/24", nil, []string{"bogus"}); err == nil {
		t.Error("expected error for unparseable static ip")
	}

	s, err := NewSubnet("10.0.0.0/24", []string{"10.0.0.2"}, []string{"10.0.0.10", "10.0.0.11"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.RestrictedIPs) != 1 || len(s.StaticIPs) != 2 {
		t.Errorf("exclusion sets not populated: %v %v", s.RestrictedIPs, s.StaticIPs)
	}
	if !s.IsStatic(lease.MustParseAddress("10.0.0.10")) {
		t.Error("expected 10.0.0.10 to be static")
	}
	if s.IsStatic(lease.MustParseAddress("10.0.0.2")) {
		t.Error("restricted ip should not classify as static")
	}
}

func TestNetworkIPType(t *testing.T) {
	s1, _ := NewSubnet("10.0.0.0/24", nil, []string{"10.0.0.10"})
	s2, _ := NewSubnet("10.0.1.0/24", nil, nil)
	n := &Network{Name: "prod", Subnets: []*Subnet{s1, s2}}

	tests := []struct {
		ip   string
		want IPType
	}{
		{"10.0.0.10", IPTypeStatic},
		{"10.0.0.11", IPTypeDynamic},
		{"10.0.1.50", IPTypeDynamic},
		{"172.16.0.1", IPTypeDynamic}, // outside all subnets
	}
	for _, tt := range tests {
		if got := n.IPType(lease.MustParseAddress(tt.ip)); got != tt.want {
			t.Errorf("IPType(%s) = %s, want %s", tt.ip, got, tt.want)
		}
	}

	if sub := n.SubnetFor(lease.MustParseAddress("10.0.1.50")); sub != s2 {
		t.Errorf("SubnetFor(10.0.1.50) returned wrong subnet")
	}
	if sub := n.SubnetFor(lease.MustParseAddress("192.168.0.1")); sub != nil {
		t.Errorf("expected nil subnet for address outside the network")
	}
}

func TestInstanceRef(t *testing.T) {
	i := Instance{Deployment: "prod", Job: "etcd", Index: 2}
	if i.Ref() != "prod/etcd/2" {
		t.Errorf("Ref() = %s", i.Ref())
	}
}

func TestReservationCallbacks(t *testing.T) {
	r := &Reservation{NetworkName: "prod", Type: ReservationUnresolved}
	r.Resolve(ReservationDynamic)
	r.MarkReserved()
	if r.Type != ReservationDynamic || !r.Reserved {
		t.Errorf("reservation not updated: %+v", r)
	}
}
