package log

import (
	"time"
)

// Event is one protocol capture record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ContextID identifies the association context (UUID).
	ContextID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// LocalRole is the role of the local end of the association.
	LocalRole Role `cbor:"6,keyasint,omitempty"`

	// SystemID is the peer's system id in hex, once known.
	SystemID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	APDU        *APDUEvent        `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn is a received APDU (rx).
	DirectionIn Direction = 0
	// DirectionOut is a transmitted APDU (tx).
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "RX"
	case DirectionOut:
		return "TX"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the raw APDU byte stream.
	LayerTransport Layer = 0
	// LayerAPDU is the decoded APDU envelope and DATA_apdu.
	LayerAPDU Layer = 1
	// LayerService is the association and operating state machine.
	LayerService Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerAPDU:
		return "APDU"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage is an APDU.
	CategoryMessage Category = 0
	// CategoryState is a state machine transition.
	CategoryState Category = 1
	// CategoryError is a protocol or decode error.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Role is the local role in the association.
type Role uint8

const (
	// RoleManager is the collecting side.
	RoleManager Role = 1
	// RoleAgent is the device side.
	RoleAgent Role = 2
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleManager:
		return "MANAGER"
	case RoleAgent:
		return "AGENT"
	default:
		return "UNKNOWN"
	}
}

// APDUEvent describes one APDU.
type APDUEvent struct {
	// Choice is the APDU envelope choice (AARQ, PRST, ...).
	Choice uint16 `cbor:"1,keyasint"`

	// Size is the encoded APDU size in bytes.
	Size int `cbor:"2,keyasint"`

	// Data is the raw APDU (may be truncated for large APDUs).
	Data []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates Data was cut.
	Truncated bool `cbor:"4,keyasint,omitempty"`

	// For PRST: the DATA_apdu invoke-id and message choice.
	InvokeID      *uint16 `cbor:"5,keyasint,omitempty"`
	MessageChoice *uint16 `cbor:"6,keyasint,omitempty"`

	// For event reports, actions and GET: the target object handle.
	Handle *uint16 `cbor:"7,keyasint,omitempty"`

	// EventType or ActionType of the operation, when applicable.
	EventType  *uint16 `cbor:"8,keyasint,omitempty"`
	ActionType *uint16 `cbor:"9,keyasint,omitempty"`
}

// StateChangeEvent captures an association state transition.
type StateChangeEvent struct {
	// OldState is the previous state.
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Trigger is the FSM event that caused the change.
	Trigger string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// MaxAPDUData is the number of raw bytes kept in an APDUEvent.
const MaxAPDUData = 1024

// NewAPDUEvent returns an APDUEvent for raw, truncating the kept bytes
// to MaxAPDUData.
func NewAPDUEvent(choice uint16, raw []byte) *APDUEvent {
	ev := &APDUEvent{Choice: choice, Size: len(raw)}
	if len(raw) > MaxAPDUData {
		ev.Data = append([]byte(nil), raw[:MaxAPDUData]...)
		ev.Truncated = true
	} else {
		ev.Data = append([]byte(nil), raw...)
	}
	return ev
}
