package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// State machine events.
const (
	evTransportConnected    = "transport_connected"
	evTransportDisconnected = "transport_disconnected"

	evAssociate          = "associate"
	evAssocAccepted      = "assoc_accepted"
	evAssocUnknownConfig = "assoc_unknown_config"
	evAssocRejected      = "assoc_rejected"

	evConfigReceived = "config_received"
	evConfigSent     = "config_sent"
	evConfigAccepted = "config_accepted"
	evConfigRejected = "config_rejected"

	evReleaseRequested = "release_requested"
	evReleaseReceived  = "release_received"
	evReleaseConfirmed = "release_confirmed"
	evAbort            = "abort"
)

func states(s ...State) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

func managerEvents() fsm.Events {
	associated := states(StateWaitingForConfig, StateCheckingConfig, StateOperating)
	return fsm.Events{
		{Name: evAssocAccepted, Src: states(StateUnassociated), Dst: string(StateOperating)},
		{Name: evAssocUnknownConfig, Src: states(StateUnassociated), Dst: string(StateWaitingForConfig)},
		{Name: evAssocRejected, Src: states(StateUnassociated), Dst: string(StateUnassociated)},
		{Name: evConfigReceived, Src: states(StateWaitingForConfig), Dst: string(StateCheckingConfig)},
		{Name: evConfigAccepted, Src: states(StateCheckingConfig), Dst: string(StateOperating)},
		{Name: evConfigRejected, Src: states(StateCheckingConfig), Dst: string(StateWaitingForConfig)},
		{Name: evReleaseRequested, Src: associated, Dst: string(StateDisassociating)},
		{Name: evReleaseReceived, Src: append(associated, string(StateDisassociating)), Dst: string(StateUnassociated)},
		{Name: evReleaseConfirmed, Src: states(StateDisassociating), Dst: string(StateUnassociated)},
		{Name: evAbort, Src: append(associated, string(StateDisassociating)), Dst: string(StateUnassociated)},
	}
}

func agentEvents() fsm.Events {
	associated := states(StateConfigSending, StateWaitingApproval, StateOperating)
	return fsm.Events{
		{Name: evAssociate, Src: states(StateUnassociated), Dst: string(StateAssociating)},
		{Name: evAssocAccepted, Src: states(StateAssociating), Dst: string(StateOperating)},
		{Name: evAssocUnknownConfig, Src: states(StateAssociating), Dst: string(StateConfigSending)},
		{Name: evAssocRejected, Src: states(StateAssociating), Dst: string(StateUnassociated)},
		{Name: evConfigSent, Src: states(StateConfigSending), Dst: string(StateWaitingApproval)},
		{Name: evConfigAccepted, Src: states(StateWaitingApproval), Dst: string(StateOperating)},
		{Name: evConfigRejected, Src: states(StateWaitingApproval), Dst: string(StateConfigSending)},
		{Name: evReleaseRequested, Src: associated, Dst: string(StateDisassociating)},
		{Name: evReleaseReceived, Src: append(associated, string(StateDisassociating)), Dst: string(StateUnassociated)},
		{Name: evReleaseConfirmed, Src: states(StateDisassociating), Dst: string(StateUnassociated)},
		{Name: evAbort, Src: append(associated, string(StateAssociating), string(StateDisassociating)), Dst: string(StateUnassociated)},
	}
}

// newMachine builds the association state machine of role. enter runs
// after every state change.
func newMachine(role Role, enter func(*fsm.Event)) *fsm.FSM {
	events := managerEvents()
	if role == RoleAgent {
		events = agentEvents()
	}
	connected := states(
		StateUnassociated, StateAssociating, StateConfigSending, StateWaitingApproval,
		StateWaitingForConfig, StateCheckingConfig, StateOperating, StateDisassociating,
	)
	events = append(events,
		fsm.EventDesc{Name: evTransportConnected, Src: states(StateDisconnected), Dst: string(StateUnassociated)},
		fsm.EventDesc{Name: evTransportDisconnected, Src: connected, Dst: string(StateDisconnected)},
	)
	return fsm.NewFSM(string(StateDisconnected), events, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) { enter(e) },
	})
}

// fire triggers event. A self-transition is not an error.
func (c *Context) fire(event string) error {
	err := c.machine.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err == nil || errors.As(err, &noTransition) {
		return nil
	}
	return fmt.Errorf("%w: %s in %s", ErrInvalidState, event, c.machine.Current())
}

// can reports whether event is allowed in the current state.
func (c *Context) can(event string) bool {
	return c.machine.Can(event)
}
