// Package storage provides the persisted credential store of a SkyGuard device.
//
// The store holds the PIN verifier, the wrong-PIN counter, the mnemonic, the
// device label and the passphrase-protection flag. State is kept in a single
// Record that is written through a Persister on every mutation, so the
// counter survives a power cut between an attempt and its verification.
// The JSON file layout is internal to this package.
package storage
