package wire

// Message is any protocol message.
type Message interface {
	MessageType() MessageType
}

// Initialize resets the host session and requests Features. It also acts as
// a pre-emptive abort for any gate that is blocking.
type Initialize struct {
	// State lets the host resume a passphrase session (unused by the device).
	State []byte `cbor:"1,keyasint,omitempty"`
}

// GetFeatures requests Features without touching the session.
type GetFeatures struct{}

// Features describes the device.
type Features struct {
	Vendor               string `cbor:"1,keyasint"`
	MajorVersion         uint32 `cbor:"2,keyasint"`
	MinorVersion         uint32 `cbor:"3,keyasint"`
	PatchVersion         uint32 `cbor:"4,keyasint"`
	DeviceID             string `cbor:"5,keyasint,omitempty"`
	Label                string `cbor:"6,keyasint,omitempty"`
	Initialized          bool   `cbor:"7,keyasint"`
	PinProtection        bool   `cbor:"8,keyasint"`
	PassphraseProtection bool   `cbor:"9,keyasint"`
	PinCached            bool   `cbor:"10,keyasint"`
	PassphraseCached     bool   `cbor:"11,keyasint"`
	PinFailCount         uint32 `cbor:"12,keyasint,omitempty"`
}

// Ping asks the device to echo Message, optionally behind gates.
type Ping struct {
	Message              string `cbor:"1,keyasint,omitempty"`
	ButtonProtection     bool   `cbor:"2,keyasint,omitempty"`
	PinProtection        bool   `cbor:"3,keyasint,omitempty"`
	PassphraseProtection bool   `cbor:"4,keyasint,omitempty"`
}

// Success is the generic positive terminal response.
type Success struct {
	Message string      `cbor:"1,keyasint,omitempty"`
	MsgType MessageType `cbor:"2,keyasint,omitempty"`
}

// Failure is the generic negative terminal response. MsgType names the
// request that failed.
type Failure struct {
	Code    FailureType `cbor:"1,keyasint"`
	Message string      `cbor:"2,keyasint,omitempty"`
	MsgType MessageType `cbor:"3,keyasint,omitempty"`
}

// Cancel aborts the current gate, or is answered with ActionCancelled when idle.
type Cancel struct{}

// ButtonRequest asks the host to acknowledge that a physical confirmation is pending.
type ButtonRequest struct {
	Code ButtonRequestType `cbor:"1,keyasint"`
}

// ButtonAck acknowledges a ButtonRequest.
type ButtonAck struct{}

// PinMatrixRequest asks the host for a PIN entered on the scrambled matrix.
type PinMatrixRequest struct {
	Type PinMatrixRequestType `cbor:"1,keyasint"`
}

// PinMatrixAck carries matrix positions, not digits.
type PinMatrixAck struct {
	Pin string `cbor:"1,keyasint"`
}

// PassphraseRequest asks the host to collect the passphrase.
type PassphraseRequest struct {
	OnDevice bool `cbor:"1,keyasint,omitempty"`
}

// PassphraseAck carries the passphrase, possibly empty.
type PassphraseAck struct {
	Passphrase    string `cbor:"1,keyasint,omitempty"`
	HasPassphrase bool   `cbor:"2,keyasint,omitempty"`
	State         []byte `cbor:"3,keyasint,omitempty"`
}

// ChangePin sets, changes or removes the PIN.
type ChangePin struct {
	Remove bool `cbor:"1,keyasint,omitempty"`
}

// ApplySettings updates user settings. Nil fields are left unchanged.
type ApplySettings struct {
	Label         *string `cbor:"1,keyasint,omitempty"`
	UsePassphrase *bool   `cbor:"2,keyasint,omitempty"`
}

// WipeDevice erases all credentials.
type WipeDevice struct{}

// SetMnemonic loads a recovery mnemonic onto an uninitialized device.
type SetMnemonic struct {
	Mnemonic string `cbor:"1,keyasint"`
}

// Bip44Addr is a structured BIP-44 derivation descriptor.
type Bip44Addr struct {
	CoinType          uint32 `cbor:"1,keyasint"`
	Account           uint32 `cbor:"2,keyasint"`
	Change            uint32 `cbor:"3,keyasint"`
	AddressStartIndex uint32 `cbor:"4,keyasint"`
	AddressN          uint32 `cbor:"5,keyasint,omitempty"`
}

// SkycoinAddress requests AddressN addresses starting at StartIndex, or the
// addresses described by Bip44Addr when set.
type SkycoinAddress struct {
	AddressN       uint32     `cbor:"1,keyasint"`
	StartIndex     uint32     `cbor:"2,keyasint,omitempty"`
	ConfirmAddress bool       `cbor:"3,keyasint,omitempty"`
	Bip44Addr      *Bip44Addr `cbor:"4,keyasint,omitempty"`
}

// ResponseSkycoinAddress lists derived addresses.
type ResponseSkycoinAddress struct {
	Addresses []string `cbor:"1,keyasint"`
}

// SkycoinSignMessage signs Message with the key at AddressN, or with the key
// described by Bip44Addr when set.
type SkycoinSignMessage struct {
	AddressN  uint32     `cbor:"1,keyasint"`
	Message   string     `cbor:"2,keyasint"`
	Bip44Addr *Bip44Addr `cbor:"3,keyasint,omitempty"`
}

// ResponseSkycoinSignMessage carries a hex encoded compact signature.
type ResponseSkycoinSignMessage struct {
	SignedMessage string `cbor:"1,keyasint"`
}

// SkycoinCheckMessageSignature verifies Signature over Message against Address.
type SkycoinCheckMessageSignature struct {
	Address   string `cbor:"1,keyasint"`
	Message   string `cbor:"2,keyasint"`
	Signature string `cbor:"3,keyasint"`
}

// TxInput references an unspent output by hash and the key index that owns it.
type TxInput struct {
	HashIn string `cbor:"1,keyasint"`
	Index  uint32 `cbor:"2,keyasint"`
}

// TxOutput is a transaction output. AddressIndex marks a change output.
type TxOutput struct {
	Address      string  `cbor:"1,keyasint"`
	Coin         uint64  `cbor:"2,keyasint"`
	Hour         uint64  `cbor:"3,keyasint"`
	AddressIndex *uint32 `cbor:"4,keyasint,omitempty"`
}

// TransactionSign requests signatures for every input.
type TransactionSign struct {
	Inputs  []TxInput  `cbor:"1,keyasint"`
	Outputs []TxOutput `cbor:"2,keyasint"`
}

// ResponseTransactionSign lists one hex signature per input.
type ResponseTransactionSign struct {
	Signatures []string `cbor:"1,keyasint"`
}

// DebugLinkDecision injects a button decision.
type DebugLinkDecision struct {
	YesNo bool `cbor:"1,keyasint"`
}

// DebugLinkGetState asks for the current layout.
type DebugLinkGetState struct{}

// DebugLinkState reports the current layout. It never carries secrets.
type DebugLinkState struct {
	Layout               string `cbor:"1,keyasint,omitempty"`
	Matrix               string `cbor:"2,keyasint,omitempty"`
	PassphraseProtection bool   `cbor:"3,keyasint,omitempty"`
	PinCached            bool   `cbor:"4,keyasint,omitempty"`
}

func (*Initialize) MessageType() MessageType                   { return MessageTypeInitialize }
func (*GetFeatures) MessageType() MessageType                  { return MessageTypeGetFeatures }
func (*Features) MessageType() MessageType                     { return MessageTypeFeatures }
func (*Ping) MessageType() MessageType                         { return MessageTypePing }
func (*Success) MessageType() MessageType                      { return MessageTypeSuccess }
func (*Failure) MessageType() MessageType                      { return MessageTypeFailure }
func (*Cancel) MessageType() MessageType                       { return MessageTypeCancel }
func (*ButtonRequest) MessageType() MessageType                { return MessageTypeButtonRequest }
func (*ButtonAck) MessageType() MessageType                    { return MessageTypeButtonAck }
func (*PinMatrixRequest) MessageType() MessageType             { return MessageTypePinMatrixRequest }
func (*PinMatrixAck) MessageType() MessageType                 { return MessageTypePinMatrixAck }
func (*PassphraseRequest) MessageType() MessageType            { return MessageTypePassphraseRequest }
func (*PassphraseAck) MessageType() MessageType                { return MessageTypePassphraseAck }
func (*ChangePin) MessageType() MessageType                    { return MessageTypeChangePin }
func (*ApplySettings) MessageType() MessageType                { return MessageTypeApplySettings }
func (*WipeDevice) MessageType() MessageType                   { return MessageTypeWipeDevice }
func (*SetMnemonic) MessageType() MessageType                  { return MessageTypeSetMnemonic }
func (*SkycoinAddress) MessageType() MessageType               { return MessageTypeSkycoinAddress }
func (*ResponseSkycoinAddress) MessageType() MessageType       { return MessageTypeResponseSkycoinAddress }
func (*SkycoinSignMessage) MessageType() MessageType           { return MessageTypeSkycoinSignMessage }
func (*ResponseSkycoinSignMessage) MessageType() MessageType   { return MessageTypeResponseSkycoinSignMessage }
func (*SkycoinCheckMessageSignature) MessageType() MessageType { return MessageTypeSkycoinCheckMessageSignature }
func (*TransactionSign) MessageType() MessageType              { return MessageTypeTransactionSign }
func (*ResponseTransactionSign) MessageType() MessageType      { return MessageTypeResponseTransactionSign }
func (*DebugLinkDecision) MessageType() MessageType            { return MessageTypeDebugLinkDecision }
func (*DebugLinkGetState) MessageType() MessageType            { return MessageTypeDebugLinkGetState }
func (*DebugLinkState) MessageType() MessageType               { return MessageTypeDebugLinkState }

// New returns an empty message of type t, or nil if t is unknown.
func New(t MessageType) Message {
	switch t {
	case MessageTypeInitialize:
		return &Initialize{}
	case MessageTypeGetFeatures:
		return &GetFeatures{}
	case MessageTypeFeatures:
		return &Features{}
	case MessageTypePing:
		return &Ping{}
	case MessageTypeSuccess:
		return &Success{}
	case MessageTypeFailure:
		return &Failure{}
	case MessageTypeCancel:
		return &Cancel{}
	case MessageTypeButtonRequest:
		return &ButtonRequest{}
	case MessageTypeButtonAck:
		return &ButtonAck{}
	case MessageTypePinMatrixRequest:
		return &PinMatrixRequest{}
	case MessageTypePinMatrixAck:
		return &PinMatrixAck{}
	case MessageTypePassphraseRequest:
		return &PassphraseRequest{}
	case MessageTypePassphraseAck:
		return &PassphraseAck{}
	case MessageTypeChangePin:
		return &ChangePin{}
	case MessageTypeApplySettings:
		return &ApplySettings{}
	case MessageTypeWipeDevice:
		return &WipeDevice{}
	case MessageTypeSetMnemonic:
		return &SetMnemonic{}
	case MessageTypeSkycoinAddress:
		return &SkycoinAddress{}
	case MessageTypeResponseSkycoinAddress:
		return &ResponseSkycoinAddress{}
	case MessageTypeSkycoinSignMessage:
		return &SkycoinSignMessage{}
	case MessageTypeResponseSkycoinSignMessage:
		return &ResponseSkycoinSignMessage{}
	case MessageTypeSkycoinCheckMessageSignature:
		return &SkycoinCheckMessageSignature{}
	case MessageTypeTransactionSign:
		return &TransactionSign{}
	case MessageTypeResponseTransactionSign:
		return &ResponseTransactionSign{}
	case MessageTypeDebugLinkDecision:
		return &DebugLinkDecision{}
	case MessageTypeDebugLinkGetState:
		return &DebugLinkGetState{}
	case MessageTypeDebugLinkState:
		return &DebugLinkState{}
	default:
		return nil
	}
}

const redacted = "[redacted]"

// CarriesSecret reports whether messages of type t contain a PIN, passphrase
// or mnemonic. Raw frames of these types must never be logged.
func CarriesSecret(t MessageType) bool {
	switch t {
	case MessageTypePinMatrixAck, MessageTypePassphraseAck, MessageTypeSetMnemonic:
		return true
	default:
		return false
	}
}

// Redact returns msg with secret fields replaced, for logging. Messages
// without secrets are returned unchanged.
func Redact(msg Message) Message {
	switch m := msg.(type) {
	case *PinMatrixAck:
		return &PinMatrixAck{Pin: redacted}
	case *PassphraseAck:
		return &PassphraseAck{Passphrase: redacted, HasPassphrase: m.HasPassphrase}
	case *SetMnemonic:
		return &SetMnemonic{Mnemonic: redacted}
	default:
		return msg
	}
}
