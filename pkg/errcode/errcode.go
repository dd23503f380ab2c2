// Package errcode defines the closed set of outcome codes shared by the
// protection gates and the command dispatcher.
//
// A Code is an error, so gates return it through the ordinary error channel
// and callers recover it with errors.As or From. Ok is never returned as an
// error; a nil error means success.
package errcode

import "errors"

// Code is a dispatcher/gate outcome.
type Code uint8

const (
	Ok Code = iota
	Failed
	InvalidArg
	InvalidValue
	NotImplemented
	PinRequired
	PinMismatch
	PinCancelled
	PinInvalid
	ActionCancelled
	NotInitialized
	Initialized
	MnemonicRequired
	AddressGeneration
	TooManyAddresses
	InvalidSignature
	UnexpectedMessage
	// UserConfirmation is not a failure: it tells the dispatcher that the
	// result must be confirmed on the device before it is released.
	UserConfirmation
	TooManyInputs
	TooManyOutputs

	numCodes
)

var names = [numCodes]string{
	Ok:                "Ok",
	Failed:            "Failed",
	InvalidArg:        "InvalidArg",
	InvalidValue:      "InvalidValue",
	NotImplemented:    "NotImplemented",
	PinRequired:       "PinRequired",
	PinMismatch:       "PinMismatch",
	PinCancelled:      "PinCancelled",
	PinInvalid:        "PinInvalid",
	ActionCancelled:   "ActionCancelled",
	NotInitialized:    "NotInitialized",
	Initialized:       "Initialized",
	MnemonicRequired:  "MnemonicRequired",
	AddressGeneration: "AddressGeneration",
	TooManyAddresses:  "TooManyAddresses",
	InvalidSignature:  "InvalidSignature",
	UnexpectedMessage: "UnexpectedMessage",
	UserConfirmation:  "UserConfirmation",
	TooManyInputs:     "TooManyInputs",
	TooManyOutputs:    "TooManyOutputs",
}

// String returns the code name.
func (c Code) String() string {
	if c < numCodes {
		return names[c]
	}
	return "UNKNOWN"
}

// Error implements error.
func (c Code) Error() string {
	return "errcode: " + c.String()
}

// Valid reports whether c is a member of the enumeration.
func (c Code) Valid() bool {
	return c < numCodes
}

// All returns every code in declaration order.
func All() []Code {
	codes := make([]Code, 0, numCodes)
	for c := Ok; c < numCodes; c++ {
		codes = append(codes, c)
	}
	return codes
}

// From extracts the Code carried by err. A nil error is Ok; an error that
// carries no Code is Failed.
func From(err error) Code {
	if err == nil {
		return Ok
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Failed
}
