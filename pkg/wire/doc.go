// Package wire defines the host protocol messages and their CBOR encoding.
//
// Every message travels inside an Envelope that names its MessageType and
// carries the CBOR-encoded payload. Struct fields use integer keys
// (keyasint) for compactness, as with every CBOR structure in this module.
//
// # Message Classes
//
//   - Requests: Initialize, GetFeatures, Ping, ChangePin, ApplySettings,
//     WipeDevice, SetMnemonic, SkycoinAddress, SkycoinSignMessage,
//     SkycoinCheckMessageSignature, TransactionSign, Cancel
//   - Terminal responses: Success, Failure, Features, ResponseSkycoinAddress,
//     ResponseSkycoinSignMessage, ResponseTransactionSign
//   - Gate exchange: ButtonRequest/ButtonAck, PinMatrixRequest/PinMatrixAck,
//     PassphraseRequest/PassphraseAck
//   - Debug link (non-production builds): DebugLinkDecision,
//     DebugLinkGetState, DebugLinkState
//
// While a gate blocks, only "tiny" messages (acks, Cancel, Initialize and the
// debug link) are meaningful; see IsTiny.
package wire
