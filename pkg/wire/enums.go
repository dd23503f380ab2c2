package wire

// MessageType identifies a message kind on the wire.
type MessageType uint16

// Message types. Values follow the firmware protocol numbering.
const (
	MessageTypeInitialize        MessageType = 0
	MessageTypePing              MessageType = 1
	MessageTypeSuccess           MessageType = 2
	MessageTypeFailure           MessageType = 3
	MessageTypeChangePin         MessageType = 4
	MessageTypeWipeDevice        MessageType = 5
	MessageTypeFeatures          MessageType = 17
	MessageTypePinMatrixRequest  MessageType = 18
	MessageTypePinMatrixAck      MessageType = 19
	MessageTypeCancel            MessageType = 20
	MessageTypeApplySettings     MessageType = 25
	MessageTypeButtonRequest     MessageType = 26
	MessageTypeButtonAck         MessageType = 27
	MessageTypePassphraseRequest MessageType = 41
	MessageTypePassphraseAck     MessageType = 42
	MessageTypeGetFeatures       MessageType = 55
	MessageTypeDebugLinkDecision MessageType = 100
	MessageTypeDebugLinkGetState MessageType = 101
	MessageTypeDebugLinkState    MessageType = 102

	MessageTypeSkycoinAddress               MessageType = 2001
	MessageTypeSkycoinCheckMessageSignature MessageType = 2003
	MessageTypeSkycoinSignMessage           MessageType = 2004
	MessageTypeSetMnemonic                  MessageType = 2005
	MessageTypeTransactionSign              MessageType = 2011
	MessageTypeResponseSkycoinAddress       MessageType = 3001
	MessageTypeResponseSkycoinSignMessage   MessageType = 3002
	MessageTypeResponseTransactionSign      MessageType = 3003
)

var messageTypeNames = map[MessageType]string{
	MessageTypeInitialize:                   "Initialize",
	MessageTypePing:                         "Ping",
	MessageTypeSuccess:                      "Success",
	MessageTypeFailure:                      "Failure",
	MessageTypeChangePin:                    "ChangePin",
	MessageTypeWipeDevice:                   "WipeDevice",
	MessageTypeFeatures:                     "Features",
	MessageTypePinMatrixRequest:             "PinMatrixRequest",
	MessageTypePinMatrixAck:                 "PinMatrixAck",
	MessageTypeCancel:                       "Cancel",
	MessageTypeApplySettings:                "ApplySettings",
	MessageTypeButtonRequest:                "ButtonRequest",
	MessageTypeButtonAck:                    "ButtonAck",
	MessageTypePassphraseRequest:            "PassphraseRequest",
	MessageTypePassphraseAck:                "PassphraseAck",
	MessageTypeGetFeatures:                  "GetFeatures",
	MessageTypeDebugLinkDecision:            "DebugLinkDecision",
	MessageTypeDebugLinkGetState:            "DebugLinkGetState",
	MessageTypeDebugLinkState:               "DebugLinkState",
	MessageTypeSkycoinAddress:               "SkycoinAddress",
	MessageTypeSkycoinCheckMessageSignature: "SkycoinCheckMessageSignature",
	MessageTypeSkycoinSignMessage:           "SkycoinSignMessage",
	MessageTypeSetMnemonic:                  "SetMnemonic",
	MessageTypeTransactionSign:              "TransactionSign",
	MessageTypeResponseSkycoinAddress:       "ResponseSkycoinAddress",
	MessageTypeResponseSkycoinSignMessage:   "ResponseSkycoinSignMessage",
	MessageTypeResponseTransactionSign:      "ResponseTransactionSign",
}

// String returns the message type name.
func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTiny reports whether a message of type t is accepted while a gate is
// blocking. A tiny message the running gate does not consume is dropped
// silently; anything else is answered with FailureUnexpectedMessage. Debug
// link types only count as tiny while the debug link is enabled.
func IsTiny(t MessageType) bool {
	switch t {
	case MessageTypeButtonAck, MessageTypePinMatrixAck, MessageTypePassphraseAck,
		MessageTypeCancel, MessageTypeInitialize,
		MessageTypeDebugLinkDecision, MessageTypeDebugLinkGetState:
		return true
	default:
		return false
	}
}

// IsDebugLink reports whether t belongs to the debug link.
func IsDebugLink(t MessageType) bool {
	return t >= MessageTypeDebugLinkDecision && t <= MessageTypeDebugLinkState
}

// FailureType is the code carried by a Failure response.
type FailureType uint8

const (
	FailureUnexpectedMessage FailureType = 1
	FailureButtonExpected    FailureType = 2
	FailureDataError         FailureType = 3
	FailureActionCancelled   FailureType = 4
	FailurePinExpected       FailureType = 5
	FailurePinCancelled      FailureType = 6
	FailurePinInvalid        FailureType = 7
	FailureInvalidSignature  FailureType = 8
	FailureProcessError      FailureType = 9
	FailureNotEnoughFunds    FailureType = 10
	FailureNotInitialized    FailureType = 11
	FailurePinMismatch       FailureType = 12
	FailureFirmwareError     FailureType = 99
)

// String returns the failure type name.
func (f FailureType) String() string {
	switch f {
	case FailureUnexpectedMessage:
		return "UNEXPECTED_MESSAGE"
	case FailureButtonExpected:
		return "BUTTON_EXPECTED"
	case FailureDataError:
		return "DATA_ERROR"
	case FailureActionCancelled:
		return "ACTION_CANCELLED"
	case FailurePinExpected:
		return "PIN_EXPECTED"
	case FailurePinCancelled:
		return "PIN_CANCELLED"
	case FailurePinInvalid:
		return "PIN_INVALID"
	case FailureInvalidSignature:
		return "INVALID_SIGNATURE"
	case FailureProcessError:
		return "PROCESS_ERROR"
	case FailureNotEnoughFunds:
		return "NOT_ENOUGH_FUNDS"
	case FailureNotInitialized:
		return "NOT_INITIALIZED"
	case FailurePinMismatch:
		return "PIN_MISMATCH"
	case FailureFirmwareError:
		return "FIRMWARE_ERROR"
	default:
		return "UNKNOWN"
	}
}

// ButtonRequestType tags why a button confirmation is requested.
type ButtonRequestType uint8

const (
	ButtonRequestOther         ButtonRequestType = 1
	ButtonRequestConfirmOutput ButtonRequestType = 3
	ButtonRequestResetDevice   ButtonRequestType = 4
	ButtonRequestWipeDevice    ButtonRequestType = 6
	ButtonRequestProtectCall   ButtonRequestType = 7
	ButtonRequestSignTx        ButtonRequestType = 8
	ButtonRequestAddress       ButtonRequestType = 10
	ButtonRequestChangePin     ButtonRequestType = 12
	ButtonRequestApplySettings ButtonRequestType = 13
)

// String returns the button request name.
func (b ButtonRequestType) String() string {
	switch b {
	case ButtonRequestOther:
		return "OTHER"
	case ButtonRequestConfirmOutput:
		return "CONFIRM_OUTPUT"
	case ButtonRequestResetDevice:
		return "RESET_DEVICE"
	case ButtonRequestWipeDevice:
		return "WIPE_DEVICE"
	case ButtonRequestProtectCall:
		return "PROTECT_CALL"
	case ButtonRequestSignTx:
		return "SIGN_TX"
	case ButtonRequestAddress:
		return "ADDRESS"
	case ButtonRequestChangePin:
		return "CHANGE_PIN"
	case ButtonRequestApplySettings:
		return "APPLY_SETTINGS"
	default:
		return "UNKNOWN"
	}
}

// PinMatrixRequestType tags which PIN the host is asked for.
type PinMatrixRequestType uint8

const (
	PinMatrixCurrent   PinMatrixRequestType = 1
	PinMatrixNewFirst  PinMatrixRequestType = 2
	PinMatrixNewSecond PinMatrixRequestType = 3
)

// String returns the PIN matrix request name.
func (p PinMatrixRequestType) String() string {
	switch p {
	case PinMatrixCurrent:
		return "CURRENT"
	case PinMatrixNewFirst:
		return "NEW_FIRST"
	case PinMatrixNewSecond:
		return "NEW_SECOND"
	default:
		return "UNKNOWN"
	}
}
