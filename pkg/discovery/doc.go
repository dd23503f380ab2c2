// Package discovery advertises the emulator's host port over mDNS/DNS-SD.
//
// The service type is _skyguard._tcp in the local domain. The instance name
// is the device label, or "SkyGuard-<device id prefix>" when no label is set.
// TXT records carry:
//
//	label  device label (optional)
//	id     device ID
//	proto  host protocol revision
//
// Host tools resolve the service to find the TCP address of the device link.
package discovery
