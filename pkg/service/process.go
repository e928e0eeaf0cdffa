package service

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/log"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// ProcessAPDU decodes one APDU received from the transport and processes
// it. Unknown APDU and message choices are ignored.
func (c *Context) ProcessAPDU(b []byte) error {
	a, err := wire.DecodeAPDU(b)
	if err != nil {
		c.metrics.decodeFailure()
		c.logger.Warn("apdu decode failed", "size", len(b), "error", err)
		c.mu.Lock()
		c.captureError(err, "decode apdu")
		c.mu.Unlock()
		return fmt.Errorf("decode apdu: %w", err)
	}
	return c.run(func() error { return c.process(a, b) })
}

// Process processes an already decoded APDU.
func (c *Context) Process(a *wire.APDU) error {
	raw, err := wire.EncodeAPDU(a)
	if err != nil {
		return err
	}
	return c.run(func() error { return c.process(a, raw) })
}

// process dispatches a by choice. Caller holds mu.
func (c *Context) process(a *wire.APDU, raw []byte) error {
	c.metrics.received(a.Choice.String())
	c.capture(log.DirectionIn, a, raw)
	c.logger.Debug("rx", "choice", a.Choice.String(), "size", len(raw))

	if c.State() == StateDisconnected {
		c.logger.Warn("apdu received while disconnected", "choice", a.Choice.String())
		return ErrInvalidState
	}

	switch body := a.Body.(type) {
	case *wire.AARQ:
		return c.rxAARQ(body)
	case *wire.AARE:
		return c.rxAARE(body)
	case *wire.RLRQ:
		return c.rxRLRQ()
	case *wire.RLRE:
		return c.rxRLRE()
	case *wire.ABRT:
		return c.rxABRT(body)
	case *wire.PRST:
		return c.rxPRST(&body.Data)
	}
	c.logger.Debug("ignoring apdu", "choice", a.Choice.String())
	return nil
}

// rxPRST classifies a DATA_apdu as invoke or response.
func (c *Context) rxPRST(d *wire.DataAPDU) error {
	if !c.State().Associated() && c.State() != StateDisassociating {
		c.logger.Debug("ignoring data apdu outside an association", "message", d.Choice.String(), "state", c.State().String())
		return nil
	}
	switch {
	case d.Choice.IsInvoke():
		return c.rxInvoke(d)
	case d.Choice.IsResponse():
		return c.rxResponse(d)
	}
	c.logger.Debug("ignoring data apdu", "message", d.Choice.String(), "invokeID", d.InvokeID)
	return nil
}

// rxInvoke handles ROIV messages.
func (c *Context) rxInvoke(d *wire.DataAPDU) error {
	switch body := d.Body.(type) {
	case *wire.EventReportArgument:
		confirmed := d.Choice == wire.RoivConfirmedEventReport
		if c.cfg.Role == RoleManager {
			return c.rxEventReport(d.InvokeID, body, confirmed)
		}
	case *wire.GetArgument:
		if c.cfg.Role == RoleAgent {
			return c.rxGet(d.InvokeID, body)
		}
	case *wire.SetArgument:
		if c.cfg.Role == RoleAgent {
			return c.rxSet(d.InvokeID, body, d.Choice == wire.RoivConfirmedSet)
		}
	case *wire.ActionArgument:
		if c.cfg.Role == RoleAgent {
			return c.rxAction(d.InvokeID, body, d.Choice == wire.RoivConfirmedAction)
		}
	}

	c.logger.Debug("unsupported invoke", "message", d.Choice.String(), "invokeID", d.InvokeID)
	switch d.Choice {
	case wire.RoivConfirmedEventReport, wire.RoivGet, wire.RoivConfirmedSet, wire.RoivConfirmedAction:
		return c.sendReject(d.InvokeID, wire.RejectUnrecognizedOperation)
	}
	return nil
}

// rxResponse correlates a RORS, ROER or RORJ with its request, lets the
// matching handler fill in the result and retires the request.
func (c *Context) rxResponse(d *wire.DataAPDU) error {
	req, ok := c.table.Get(d.InvokeID)
	if !ok {
		c.metrics.droppedResponse()
		c.logger.Debug("dropping response with unknown invoke-id", "invokeID", d.InvokeID, "message", d.Choice.String())
		return nil
	}
	req.Response = d

	var err error
	switch body := d.Body.(type) {
	case *wire.EventReportResult:
		err = c.rxEventReportResult(req, body)
	case *wire.GetResult:
		err = c.rxAttributes(req, body.Handle, body.Attributes)
	case *wire.SetResult:
		err = c.rxAttributes(req, body.Handle, body.Attributes)
	case *wire.ActionResult:
		err = c.rxActionResult(req, body)
	case *wire.ErrorResult:
		req.Err = fmt.Errorf("%w: %s", ErrRejected, body.Error)
	case *wire.RejectResult:
		req.Err = fmt.Errorf("%w: reject problem %d", ErrRejected, body.Problem)
	default:
		c.logger.Debug("unsupported response", "message", d.Choice.String(), "invokeID", d.InvokeID)
	}
	if err != nil && req.Err == nil {
		req.Err = err
	}
	c.retire(req)
	return err
}

// retire removes req from the table and queues its completion. A request
// already cleared by a state change is not completed twice.
func (c *Context) retire(req *interaction.Request) {
	if _, err := c.table.Retire(req.InvokeID); err != nil {
		return
	}
	c.metrics.pending(c.table.Len())
	c.complete(req)
}
