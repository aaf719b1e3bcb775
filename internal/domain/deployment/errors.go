package deployment

import "errors"

// Network errors
var (
	ErrNetworkNotFound      = errors.New("network not found")
	ErrDuplicateNetworkName = errors.New("network name already exists")
	ErrInvalidCIDR          = errors.New("invalid CIDR format")
)
