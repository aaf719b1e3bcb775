package deployment

import (
	"encoding/binary"
	"fmt"
	"net"

	"addrlease/internal/domain/lease"
)

// AddrRange is the contiguous span of leasable addresses in a subnet,
// inclusive on both ends.
type AddrRange struct {
	First lease.Address `json:"first"`
	Last  lease.Address `json:"last"`
}

// Contains reports whether addr falls inside the range.
func (r AddrRange) Contains(addr lease.Address) bool {
	return addr >= r.First && addr <= r.Last
}

// Size returns the number of addresses in the range.
func (r AddrRange) Size() int {
	if r.Last < r.First {
		return 0
	}
	return int(r.Last-r.First) + 1
}

// Subnet is one leasable slice of a network: a host range plus the address
// sets excluded from dynamic allocation. Read-only input to the scanner.
type Subnet struct {
	CIDR          string          `json:"cidr"`
	Range         AddrRange       `json:"range"`
	RestrictedIPs []lease.Address `json:"restricted_ips,omitempty"`
	StaticIPs     []lease.Address `json:"static_ips,omitempty"`
}

// NewSubnet builds a subnet from a CIDR, deriving the usable host range
// (network address and broadcast excluded). Restricted and static addresses
// must parse and lie inside the derived range.
func NewSubnet(cidr string, restricted, static []string) (*Subnet, error) {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCIDR, cidr)
	}
	if ip.To4() == nil {
		return nil, fmt.Errorf("%w: %s is not IPv4", ErrInvalidCIDR, cidr)
	}
	ones, bits := ipNet.Mask.Size()
	if bits != 32 || ones > 30 {
		return nil, fmt.Errorf("%w: %s leaves no usable hosts", ErrInvalidCIDR, cidr)
	}

	base := lease.Address(binary.BigEndian.Uint32(ipNet.IP.To4()))
	broadcast := base | lease.Address(1<<(32-ones)-1)

	s := &Subnet{
		CIDR:  ipNet.String(),
		Range: AddrRange{First: base + 1, Last: broadcast - 1},
	}

	parseSet := func(label string, in []string) ([]lease.Address, error) {
		out := make([]lease.Address, 0, len(in))
		for _, raw := range in {
			addr, err := lease.ParseAddress(raw)
			if err != nil {
				return nil, fmt.Errorf("%s ip: %w", label, err)
			}
			if !s.Range.Contains(addr) {
				return nil, fmt.Errorf("%s ip %s outside subnet %s", label, addr, s.CIDR)
			}
			out = append(out, addr)
		}
		return out, nil
	}

	if s.RestrictedIPs, err = parseSet("restricted", restricted); err != nil {
		return nil, err
	}
	if s.StaticIPs, err = parseSet("static", static); err != nil {
		return nil, err
	}
	return s, nil
}

// IsStatic reports whether addr belongs to the subnet's static pool.
func (s *Subnet) IsStatic(addr lease.Address) bool {
	for _, a := range s.StaticIPs {
		if a == addr {
			return true
		}
	}
	return false
}
