package allocator

import (
	"testing"

	"addrlease/internal/domain/deployment"
	"addrlease/internal/domain/lease"
)

func addrs(ss ...string) []lease.Address {
	out := make([]lease.Address, 0, len(ss))
	for _, s := range ss {
		out = append(out, lease.MustParseAddress(s))
	}
	return out
}

func mustSubnet(t *testing.T, cidr string, restricted, static []string) *deployment.Subnet {
	t.Helper()
	s, err := deployment.NewSubnet(cidr, restricted, static)
	if err != nil {
		t.Fatalf("NewSubnet(%s): %v", cidr, err)
	}
	return s
}

func TestNextFreeAddress(t *testing.T) {
	tests := []struct {
		name       string
		cidr       string
		restricted []string
		static     []string
		used       []lease.Address
		want       string
		exhausted  bool
	}{
		{
			name: "empty subnet yields first address",
			cidr: "10.0.0.0/24",
			want: "10.0.0.1",
		},
		{
			name: "skips used run",
			cidr: "10.0.0.0/24",
			used: addrs("10.0.0.1", "10.0.0.2"),
			want: "10.0.0.3",
		},
		{
			name: "fills gap before later usage",
			cidr: "10.0.0.0/24",
			used: addrs("10.0.0.1", "10.0.0.3"),
			want: "10.0.0.2",
		},
		{
			name:       "skips restricted address",
			cidr:       "10.0.0.0/24",
			restricted: []string{"10.0.0.1"},
			want:       "10.0.0.2",
		},
		{
			name:   "skips static pool",
			cidr:   "10.0.0.0/24",
			static: []string{"10.0.0.1", "10.0.0.2"},
			used:   addrs("10.0.0.3"),
			want:   "10.0.0.4",
		},
		{
			name:       "mixed exclusions and usage",
			cidr:       "10.0.0.0/24",
			restricted: []string{"10.0.0.2"},
			static:     []string{"10.0.0.4"},
			used:       addrs("10.0.0.1", "10.0.0.3"),
			want:       "10.0.0.5",
		},
		{
			name:      "full range is exhausted",
			cidr:      "10.0.0.0/30",
			used:      addrs("10.0.0.1", "10.0.0.2"),
			exhausted: true,
		},
		{
			name:       "range fully excluded",
			cidr:       "10.0.0.0/30",
			restricted: []string{"10.0.0.1", "10.0.0.2"},
			exhausted:  true,
		},
		{
			name: "usage from other subnets of the network is ignored below range",
			cidr: "10.0.1.0/24",
			used: addrs("10.0.0.1", "10.0.0.2"),
			want: "10.0.1.1",
		},
		{
			name: "usage beyond the range does not extend it",
			cidr: "10.0.0.0/30",
			used: addrs("10.0.0.1", "10.0.0.2", "10.0.0.3"),
			exhausted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subnet := mustSubnet(t, tt.cidr, tt.restricted, tt.static)
			got, ok := nextFreeAddress(tt.used, subnet)
			if tt.exhausted {
				if ok {
					t.Fatalf("expected exhaustion, got %s", got)
				}
				return
			}
			if !ok {
				t.Fatal("unexpected exhaustion")
			}
			if got.String() != tt.want {
				t.Errorf("nextFreeAddress = %s, want %s", got, tt.want)
			}
			if !subnet.Range.Contains(got) {
				t.Errorf("candidate %s outside subnet range", got)
			}
		})
	}
}

func TestNextFreeAddress_SequentialIsLowestFirst(t *testing.T) {
	subnet := mustSubnet(t, "10.0.0.0/28", nil, nil)
	used := []lease.Address{}

	want := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	for _, w := range want {
		got, ok := nextFreeAddress(used, subnet)
		if !ok {
			t.Fatalf("unexpected exhaustion before %s", w)
		}
		if got.String() != w {
			t.Fatalf("got %s, want %s", got, w)
		}
		used = append(used, got)
	}
}
