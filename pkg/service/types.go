package service

import (
	"errors"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/log"
)

// Service errors.
var (
	ErrInvalidState  = errors.New("operation not allowed in current state")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotPMStore    = errors.New("object is not a PM-store")
	ErrNotScanner    = errors.New("object is not a scanner")
	ErrRejected      = errors.New("request rejected by peer")
	ErrTimeout       = errors.New("request timed out")
	ErrAborted       = errors.New("association aborted")
)

// Role is the side of the association a Context plays.
type Role uint8

const (
	// RoleManager collects data from agents.
	RoleManager Role = iota + 1

	// RoleAgent is a device reporting to a manager.
	RoleAgent
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

func (r Role) logRole() log.Role {
	if r == RoleAgent {
		return log.RoleAgent
	}
	return log.RoleManager
}

// State is an association state.
type State string

const (
	StateDisconnected     State = "DISCONNECTED"
	StateUnassociated     State = "UNASSOCIATED"
	StateAssociating      State = "ASSOCIATING"
	StateConfigSending    State = "CONFIG_SENDING"
	StateWaitingApproval  State = "WAITING_APPROVAL"
	StateWaitingForConfig State = "WAITING_FOR_CONFIG"
	StateCheckingConfig   State = "CHECKING_CONFIG"
	StateOperating        State = "OPERATING"
	StateDisassociating   State = "DISASSOCIATING"
)

// String returns the state name.
func (s State) String() string { return string(s) }

// Associated reports whether s belongs to an association.
func (s State) Associated() bool {
	switch s {
	case StateConfigSending, StateWaitingApproval, StateWaitingForConfig,
		StateCheckingConfig, StateOperating:
		return true
	}
	return false
}

// EventType identifies a context event.
type EventType uint8

const (
	// EventAssociated - an association was accepted.
	EventAssociated EventType = iota

	// EventConfigured - the configuration is agreed and the context is
	// operating.
	EventConfigured

	// EventMeasurement - an event report or data response was decoded.
	EventMeasurement

	// EventSegmentData - a chunk of PM-segment entries was decoded.
	EventSegmentData

	// EventSegmentInfo - the segment list of a PM-store was refreshed.
	EventSegmentInfo

	// EventAttributes - a GET or SET response updated an object.
	EventAttributes

	// EventDisassociated - the association ended, by release or abort.
	EventDisassociated

	// EventRequestTimeout - a confirmed request was not answered in time.
	EventRequestTimeout
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventAssociated:
		return "ASSOCIATED"
	case EventConfigured:
		return "CONFIGURED"
	case EventMeasurement:
		return "MEASUREMENT"
	case EventSegmentData:
		return "SEGMENT_DATA"
	case EventSegmentInfo:
		return "SEGMENT_INFO"
	case EventAttributes:
		return "ATTRIBUTES"
	case EventDisassociated:
		return "DISASSOCIATED"
	case EventRequestTimeout:
		return "REQUEST_TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Event is raised by a Context.
type Event struct {
	// Type is the event type.
	Type EventType

	// ContextID identifies the raising context.
	ContextID string

	// Handle is the object the event concerns (0 for the MDS).
	Handle uint16

	// Data holds the decoded values, for measurement, segment and
	// attribute events.
	Data data.List

	// Reason is the abort reason of an aborted association.
	Reason string

	// Error is set if the event reports a failure.
	Error error
}

// EventHandler handles context events.
type EventHandler func(Event)
