// Package transport moves wire messages between the host and the device.
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│   CBOR Envelope (wire)         │
//	├────────────────────────────────┤
//	│   Length-Prefix Framing (4B)   │
//	├────────────────────────────────┤
//	│   TCP (emulator) / USB (HW)    │
//	└────────────────────────────────┘
//
// The device serves one host at a time. A Link owns the connection: a reader
// goroutine decodes frames into wire messages and Send encodes replies.
//
// Frames carrying PINs, passphrases or mnemonics are logged by size only.
package transport
