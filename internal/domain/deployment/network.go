package deployment

import (
	"time"

	"addrlease/internal/domain/lease"
)

// IPType classifies an address within a network.
type IPType string

const (
	IPTypeStatic  IPType = "static"
	IPTypeDynamic IPType = "dynamic"
)

// Network is a named collection of subnets instances lease addresses from.
type Network struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subnets   []*Subnet `json:"subnets"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NetworkCreateRequest represents the data needed to create a new network
type NetworkCreateRequest struct {
	Name    string       `json:"name" binding:"required"`
	Subnets []SubnetSpec `json:"subnets" binding:"required,min=1"`
}

// SubnetSpec is the wire form of a subnet definition.
type SubnetSpec struct {
	CIDR          string   `json:"cidr" binding:"required"`
	RestrictedIPs []string `json:"restricted_ips,omitempty"`
	StaticIPs     []string `json:"static_ips,omitempty"`
}

// SubnetFor returns the subnet whose range contains addr, or nil.
func (n *Network) SubnetFor(addr lease.Address) *Subnet {
	for _, s := range n.Subnets {
		if s.Range.Contains(addr) {
			return s
		}
	}
	return nil
}

// IPType classifies addr: static if the containing subnet lists it in its
// static pool, dynamic otherwise.
func (n *Network) IPType(addr lease.Address) IPType {
	if s := n.SubnetFor(addr); s != nil && s.IsStatic(addr) {
		return IPTypeStatic
	}
	return IPTypeDynamic
}
