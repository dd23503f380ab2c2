package fsm

import (
	"github.com/skyguard-wallet/skyguard-go/pkg/errcode"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// mapping is the response rendered for a code.
type mapping struct {
	failure wire.FailureType
	text    string
}

// responses covers every errcode.Code. Ok is answered with Success and has
// no failure type.
var responses = map[errcode.Code]mapping{
	errcode.Ok:                {0, ""},
	errcode.Failed:            {wire.FailureFirmwareError, "Operation failed"},
	errcode.InvalidArg:        {wire.FailureDataError, "Invalid argument"},
	errcode.InvalidValue:      {wire.FailureDataError, "Invalid value"},
	errcode.NotImplemented:    {wire.FailureFirmwareError, "Not implemented"},
	errcode.PinRequired:       {wire.FailurePinExpected, "Expected pin"},
	errcode.PinMismatch:       {wire.FailurePinMismatch, "PIN mismatch"},
	errcode.PinCancelled:      {wire.FailurePinCancelled, "PIN cancelled"},
	errcode.PinInvalid:        {wire.FailurePinInvalid, "Invalid PIN"},
	errcode.ActionCancelled:   {wire.FailureActionCancelled, "Action cancelled by user"},
	errcode.NotInitialized:    {wire.FailureNotInitialized, "Device not initialized"},
	errcode.Initialized:       {wire.FailureUnexpectedMessage, "Device is already initialized. Use Wipe first."},
	errcode.MnemonicRequired:  {wire.FailureNotInitialized, "Mnemonic required"},
	errcode.AddressGeneration: {wire.FailureProcessError, "Key pair generation failed"},
	errcode.TooManyAddresses:  {wire.FailureDataError, "Asking for too much addresses"},
	errcode.InvalidSignature:  {wire.FailureInvalidSignature, "Invalid signature"},
	errcode.UnexpectedMessage: {wire.FailureUnexpectedMessage, "Unexpected message"},
	errcode.UserConfirmation:  {wire.FailureFirmwareError, "Firmware error."},
	errcode.TooManyInputs:     {wire.FailureDataError, "Too many inputs"},
	errcode.TooManyOutputs:    {wire.FailureDataError, "Too many outputs"},
}

// Response renders code as the terminal message for a request of type
// msgType. A non-empty text replaces the default text for the code. Codes
// outside the enumeration are answered as firmware errors.
func Response(code errcode.Code, text string, msgType wire.MessageType) wire.Message {
	m, ok := responses[code]
	if !ok {
		m = responses[errcode.UserConfirmation]
	}
	if text == "" {
		text = m.text
	}
	if code == errcode.Ok {
		return &wire.Success{Message: text, MsgType: msgType}
	}
	return &wire.Failure{Code: m.failure, Message: text, MsgType: msgType}
}
