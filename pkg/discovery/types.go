package discovery

import (
	"errors"
	"time"
)

// Service identification.
const (
	// ServiceType is the DNS-SD service type of a device link.
	ServiceType = "_skyguard._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is the default device link port.
	DefaultPort = 21325
)

// TXT record keys.
const (
	TXTKeyLabel    = "label"
	TXTKeyDeviceID = "id"
	TXTKeyProtocol = "proto"
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS-SD instance name limit.
	MaxInstanceNameLen = 63

	// DefaultTTL is the DNS record TTL used when none is configured.
	DefaultTTL = 120 * time.Second
)

// Errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
)

// DeviceInfo describes an advertised device.
type DeviceInfo struct {
	// Label is the user-assigned device label.
	Label string

	// DeviceID is the identifier assigned at the last wipe.
	DeviceID string

	// Protocol is the host protocol revision.
	Protocol uint32

	// Port is the TCP port of the device link. Zero uses DefaultPort.
	Port uint16
}

// InstanceName returns the DNS-SD instance name for the device.
func (d *DeviceInfo) InstanceName() string {
	name := d.Label
	if name == "" {
		id := d.DeviceID
		if len(id) > 8 {
			id = id[:8]
		}
		name = "SkyGuard-" + id
	}
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}
