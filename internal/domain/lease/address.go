package lease

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Address is an IPv4 address in its canonical 32-bit big-endian form.
// The integer encoding makes addresses sortable and comparable, which the
// dynamic allocation scanner relies on.
type Address uint32

// ParseAddress converts dotted-quad notation into an Address.
func ParseAddress(s string) (Address, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, fmt.Errorf("invalid IP address %q", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, fmt.Errorf("address %q is not IPv4", s)
	}
	return Address(binary.BigEndian.Uint32(v4)), nil
}

// MustParseAddress is ParseAddress that panics on error. For tests and
// hard-coded values only.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IP returns the net.IP form of the address.
func (a Address) IP() net.IP {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(a))
	return net.IP(buf)
}

// String returns the dotted-quad form.
func (a Address) String() string {
	return a.IP().String()
}
