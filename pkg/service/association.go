package service

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// TransportConnected tells the context that its transport is up.
func (c *Context) TransportConnected() error {
	return c.run(func() error { return c.fire(evTransportConnected) })
}

// TransportDisconnected tells the context that its transport is gone. Any
// association ends without an ABRT.
func (c *Context) TransportDisconnected() error {
	return c.run(func() error {
		if c.State() == StateDisconnected {
			return nil
		}
		c.abortReason = "transport disconnected"
		return c.fire(evTransportDisconnected)
	})
}

// Associate sends an AARQ for the local device (agent only).
func (c *Context) Associate() error {
	return c.run(func() error {
		if c.cfg.Role != RoleAgent || !c.can(evAssociate) {
			return fmt.Errorf("%w: associate in %s", ErrInvalidState, c.State())
		}
		info, err := wire.AnyOf(c.agentAssocInfo())
		if err != nil {
			return err
		}
		aarq := &wire.AARQ{
			AssocVersion: wire.AssocVersion1,
			Protocols:    []wire.DataProto{{ID: wire.DataProtoID20601, Info: info}},
		}
		if err := c.send(&wire.APDU{Choice: wire.AARQChosen, Body: aarq}); err != nil {
			return err
		}
		return c.fire(evAssociate)
	})
}

// RequestRelease sends an RLRQ and waits for the RLRE in Disassociating.
func (c *Context) RequestRelease() error {
	return c.run(func() error {
		if !c.can(evReleaseRequested) {
			return fmt.Errorf("%w: release in %s", ErrInvalidState, c.State())
		}
		rlrq := &wire.RLRQ{Reason: wire.ReleaseRequestNormal}
		if err := c.send(&wire.APDU{Choice: wire.RLRQChosen, Body: rlrq}); err != nil {
			return err
		}
		return c.fire(evReleaseRequested)
	})
}

// RequestAbort sends an ABRT and ends the association immediately.
func (c *Context) RequestAbort() error {
	return c.run(func() error {
		if !c.can(evAbort) {
			return fmt.Errorf("%w: abort in %s", ErrInvalidState, c.State())
		}
		return c.abort(wire.AbortUndefined)
	})
}

func (c *Context) agentAssocInfo() wire.PhdAssociationInformation {
	return wire.PhdAssociationInformation{
		ProtocolVersion:     wire.ProtocolVersion1,
		EncodingRules:       wire.EncodingMDER,
		NomenclatureVersion: wire.NomenclatureVersion1,
		SystemType:          wire.SysTypeAgent,
		SystemID:            c.mds.SystemID,
		DevConfigID:         c.mds.DevConfigID,
		DataReqModeCapab:    c.cfg.DataReqModeCapab,
	}
}

func (c *Context) managerAssocInfo() wire.PhdAssociationInformation {
	return wire.PhdAssociationInformation{
		ProtocolVersion:     wire.ProtocolVersion1,
		EncodingRules:       wire.EncodingMDER,
		NomenclatureVersion: wire.NomenclatureVersion1,
		SystemType:          wire.SysTypeManager,
		SystemID:            c.cfg.SystemID,
		DevConfigID:         wire.ManagerConfigResponse,
		DataReqModeCapab:    c.cfg.DataReqModeCapab,
	}
}

// negotiate picks the 20601 data protocol from an AARQ.
func negotiate(a *wire.AARQ) (wire.PhdAssociationInformation, wire.AssociateResult) {
	if a.AssocVersion&wire.AssocVersion1 == 0 {
		return wire.PhdAssociationInformation{}, wire.RejectedUnsupportedAssocVersion
	}
	for _, p := range a.Protocols {
		if p.ID != wire.DataProtoID20601 {
			continue
		}
		info, err := wire.DecodePhdAssociationInformation(mder.NewReader(p.Info))
		if err != nil {
			continue
		}
		if info.ProtocolVersion&wire.ProtocolVersion1 == 0 ||
			info.EncodingRules&wire.EncodingMDER == 0 ||
			info.NomenclatureVersion&wire.NomenclatureVersion1 == 0 {
			return info, wire.RejectedNoCommonParameter
		}
		return info, wire.AcceptedAssoc
	}
	return wire.PhdAssociationInformation{}, wire.RejectedNoCommonProtocol
}

// rxAARQ answers an association request (manager).
func (c *Context) rxAARQ(a *wire.AARQ) error {
	if c.cfg.Role != RoleManager {
		c.logger.Debug("ignoring AARQ on agent")
		return nil
	}
	if c.State() != StateUnassociated {
		c.logger.Warn("AARQ received while associated", "state", c.State().String())
		return c.abort(wire.AbortUndefined)
	}

	info, result := negotiate(a)
	if result != wire.AcceptedAssoc {
		c.logger.Info("association rejected", "result", result.String())
		if err := c.send(&wire.APDU{Choice: wire.AAREChosen, Body: &wire.AARE{Result: result}}); err != nil {
			return err
		}
		return c.fire(evAssocRejected)
	}

	c.peer = info
	c.mds.Reset()
	c.mds.SystemID = append([]byte(nil), info.SystemID...)
	c.mds.DevConfigID = info.DevConfigID

	event := evAssocUnknownConfig
	result = wire.AcceptedUnknownConfig
	if c.applyKnownConfig(info.SystemID, info.DevConfigID) {
		event = evAssocAccepted
		result = wire.AcceptedAssoc
	}

	selected, err := wire.AnyOf(c.managerAssocInfo())
	if err != nil {
		return err
	}
	aare := &wire.AARE{
		Result:   result,
		Selected: wire.DataProto{ID: wire.DataProtoID20601, Info: selected},
	}
	if err := c.send(&wire.APDU{Choice: wire.AAREChosen, Body: aare}); err != nil {
		return err
	}
	c.logger.Info("association accepted", "result", result.String(), "devConfigID", info.DevConfigID)
	return c.fire(event)
}

// applyKnownConfig builds the DIM tree from a stored configuration. It
// reports false when the configuration is unknown or does not build.
func (c *Context) applyKnownConfig(systemID []byte, id uint16) bool {
	objs, ok, err := c.store.Lookup(systemID, id)
	if err != nil {
		c.logger.Warn("config store lookup failed", "devConfigID", id, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := c.mds.Configure(objs); err != nil {
		c.logger.Warn("stored configuration does not apply", "devConfigID", id, "error", err)
		return false
	}
	return true
}

// rxAARE handles the association response (agent).
func (c *Context) rxAARE(a *wire.AARE) error {
	if c.cfg.Role != RoleAgent || c.State() != StateAssociating {
		c.logger.Debug("ignoring AARE", "state", c.State().String())
		return nil
	}
	if len(a.Selected.Info) > 0 {
		if info, err := wire.DecodePhdAssociationInformation(mder.NewReader(a.Selected.Info)); err == nil {
			c.peer = info
		}
	}

	switch a.Result {
	case wire.AcceptedAssoc:
		return c.fire(evAssocAccepted)
	case wire.AcceptedUnknownConfig:
		if err := c.fire(evAssocUnknownConfig); err != nil {
			return err
		}
		return c.sendConfig()
	default:
		c.logger.Info("association rejected", "result", a.Result.String())
		return c.fire(evAssocRejected)
	}
}

// rxRLRQ answers a release request.
func (c *Context) rxRLRQ() error {
	if !c.can(evReleaseReceived) {
		c.logger.Debug("ignoring RLRQ", "state", c.State().String())
		return nil
	}
	rlre := &wire.RLRE{Reason: wire.ReleaseResponseNormal}
	if err := c.send(&wire.APDU{Choice: wire.RLREChosen, Body: rlre}); err != nil {
		return err
	}
	c.abortReason = "released by peer"
	return c.fire(evReleaseReceived)
}

// rxRLRE completes a release this side requested.
func (c *Context) rxRLRE() error {
	if !c.can(evReleaseConfirmed) {
		c.logger.Debug("ignoring RLRE", "state", c.State().String())
		return nil
	}
	c.abortReason = "released"
	return c.fire(evReleaseConfirmed)
}

// rxABRT ends the association without a reply.
func (c *Context) rxABRT(a *wire.ABRT) error {
	if !c.can(evAbort) {
		return nil
	}
	c.logger.Info("association aborted by peer", "reason", a.Reason.String())
	c.abortReason = a.Reason.String()
	return c.fire(evAbort)
}
