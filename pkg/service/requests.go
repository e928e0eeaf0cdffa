package service

import (
	"fmt"
	"time"

	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// RequestCallback receives a request once it was answered, rejected or
// timed out. It runs outside the context lock.
type RequestCallback func(*interaction.Request)

// invoke registers req and sends it as a ROIV. Caller holds mu.
func (c *Context) invoke(req *interaction.Request, body wire.Body) (*interaction.Request, error) {
	if c.State() != StateOperating {
		return nil, fmt.Errorf("%w: %s in %s", ErrInvalidState, req.Choice, c.State())
	}
	if req.Timeout == 0 {
		req.Timeout = c.cfg.RequestTimeout
	}
	if _, err := c.table.Add(req); err != nil {
		return nil, err
	}
	c.metrics.pending(c.table.Len())
	c.logger.Debug("request", "invokeID", req.InvokeID, "message", req.Choice.String(), "handle", req.Handle)

	if err := c.sendData(wire.DataAPDU{InvokeID: req.InvokeID, Choice: req.Choice, Body: body}); err != nil {
		_, _ = c.table.Retire(req.InvokeID)
		c.metrics.pending(c.table.Len())
		return nil, err
	}
	return req, nil
}

// managerInvoke is invoke restricted to the manager role.
func (c *Context) managerInvoke(req *interaction.Request, body wire.Body) (*interaction.Request, error) {
	if c.cfg.Role != RoleManager {
		return nil, fmt.Errorf("%w: %s is a manager request", ErrInvalidState, req.Choice)
	}
	return c.invoke(req, body)
}

// ServiceGet reads attributes of the object with handle h. An empty id
// list asks for every attribute. The response updates the local object.
func (c *Context) ServiceGet(h uint16, ids wire.AttributeIDList, done RequestCallback) (*interaction.Request, error) {
	var req *interaction.Request
	err := c.run(func() error {
		arg := &wire.GetArgument{Handle: h, AttributeIDs: ids}
		var err error
		req, err = c.managerInvoke(&interaction.Request{
			Choice:     wire.RoivGet,
			Handle:     h,
			Argument:   arg,
			OnComplete: done,
		}, arg)
		return err
	})
	return req, err
}

// SetTime sets the agent's absolute clock.
func (c *Context) SetTime(t time.Time, done RequestCallback) (*interaction.Request, error) {
	info, err := wire.AnyOf(wire.SetTimeInvoke{DateTime: wire.NewAbsoluteTime(t), Accuracy: wire.NewFloat(0)})
	if err != nil {
		return nil, err
	}
	return c.action(model.MDSHandle, nomenclature.MDC_ACT_SET_TIME, info, t, done)
}

// DataRequest starts or stops data transmission from the agent.
func (c *Context) DataRequest(dr wire.DataRequest, done RequestCallback) (*interaction.Request, error) {
	info, err := wire.AnyOf(dr)
	if err != nil {
		return nil, err
	}
	return c.action(model.MDSHandle, nomenclature.MDC_ACT_DATA_REQUEST, info, dr, done)
}

// GetSegmentInfo fetches the segment list of a PM-store.
func (c *Context) GetSegmentInfo(store uint16, sel wire.SegmSelection, done RequestCallback) (*interaction.Request, error) {
	return c.pmStoreAction(store, nomenclature.MDC_ACT_SEG_GET_INFO, sel, done)
}

// TriggerSegmentDataTransfer asks the agent to send the entries of one
// segment as segment-data event reports.
func (c *Context) TriggerSegmentDataTransfer(store, instNo uint16, done RequestCallback) (*interaction.Request, error) {
	return c.pmStoreAction(store, nomenclature.MDC_ACT_SEG_TRIG_XFER, wire.TrigSegmDataXferReq{InstNo: instNo}, done)
}

// ClearSegments clears the selected segments on the agent. The local copy
// is cleared when the agent confirms.
func (c *Context) ClearSegments(store uint16, sel wire.SegmSelection, done RequestCallback) (*interaction.Request, error) {
	return c.pmStoreAction(store, nomenclature.MDC_ACT_SEG_CLR, sel, done)
}

func (c *Context) pmStoreAction(store, actionType uint16, arg wire.Encoder, done RequestCallback) (*interaction.Request, error) {
	info, err := wire.AnyOf(arg)
	if err != nil {
		return nil, err
	}
	var req *interaction.Request
	err = c.run(func() error {
		if _, err := c.mds.PMStore(store); err != nil {
			return fmt.Errorf("%w: %v", ErrNotPMStore, err)
		}
		body := &wire.ActionArgument{Handle: store, ActionType: actionType, Args: info}
		var err error
		req, err = c.managerInvoke(&interaction.Request{
			Choice:     wire.RoivConfirmedAction,
			Handle:     store,
			ActionType: actionType,
			Argument:   arg,
			OnComplete: done,
		}, body)
		return err
	})
	return req, err
}

func (c *Context) action(h, actionType uint16, info wire.Any, arg any, done RequestCallback) (*interaction.Request, error) {
	var req *interaction.Request
	err := c.run(func() error {
		body := &wire.ActionArgument{Handle: h, ActionType: actionType, Args: info}
		var err error
		req, err = c.managerInvoke(&interaction.Request{
			Choice:     wire.RoivConfirmedAction,
			Handle:     h,
			ActionType: actionType,
			Argument:   arg,
			OnComplete: done,
		}, body)
		return err
	})
	return req, err
}

// SetScannerOperationalState enables or disables a scanner.
func (c *Context) SetScannerOperationalState(h uint16, state wire.OperationalState, done RequestCallback) (*interaction.Request, error) {
	w := mder.NewWriter()
	w.PutUint16(uint16(state))
	var req *interaction.Request
	err := c.run(func() error {
		if _, err := c.mds.Scanner(h); err != nil {
			return fmt.Errorf("%w: %v", ErrNotScanner, err)
		}
		arg := &wire.SetArgument{
			Handle: h,
			Modifications: []wire.AttributeModEntry{{
				Operator:  wire.ModifyReplace,
				Attribute: wire.AVAType{AttributeID: nomenclature.MDC_ATTR_OP_STAT, Value: w.Bytes()},
			}},
		}
		var err error
		req, err = c.managerInvoke(&interaction.Request{
			Choice:     wire.RoivConfirmedSet,
			Handle:     h,
			Argument:   arg,
			OnComplete: done,
		}, arg)
		return err
	})
	return req, err
}

// SendEvent sends an event report from the agent. Unconfirmed reports
// return a nil request and done is not called.
func (c *Context) SendEvent(arg *wire.EventReportArgument, confirmed bool, done RequestCallback) (*interaction.Request, error) {
	var req *interaction.Request
	err := c.run(func() error {
		if c.cfg.Role != RoleAgent {
			return fmt.Errorf("%w: event reports are sent by agents", ErrInvalidState)
		}
		if !confirmed {
			if c.State() != StateOperating {
				return fmt.Errorf("%w: event report in %s", ErrInvalidState, c.State())
			}
			return c.sendData(wire.DataAPDU{InvokeID: c.table.NextInvokeID(), Choice: wire.RoivEventReport, Body: arg})
		}
		var err error
		req, err = c.invoke(&interaction.Request{
			Choice:     wire.RoivConfirmedEventReport,
			Handle:     arg.Handle,
			Argument:   arg,
			OnComplete: done,
		}, arg)
		return err
	})
	return req, err
}
