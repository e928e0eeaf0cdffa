package service

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/creachadair/mds/queue"
	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/log"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/specialization"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// Context is one association, seen from the manager or the agent side.
type Context struct {
	mu sync.Mutex

	id      string
	cfg     Config
	logger  *slog.Logger
	plog    log.Logger
	tx      Transmitter
	store   ConfigStore
	metrics *Metrics

	machine *fsm.FSM
	mds     *model.MDS
	table   *interaction.Table

	// Association timer and its generation; a stale expiry is ignored.
	timer    *time.Timer
	timerGen uint64

	// Peer parameters from the association exchange.
	peer        wire.PhdAssociationInformation
	abortReason string

	handlers []EventHandler
	deferred queue.Queue[func()]
}

// NewContext creates a context in state Disconnected.
func NewContext(cfg Config, tx Transmitter) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: no transmitter", ErrInvalidConfig)
	}
	metrics, err := NewMetrics(cfg.Registerer)
	if err != nil {
		return nil, err
	}

	c := &Context{
		id:      uuid.NewString(),
		cfg:     cfg,
		logger:  cfg.Logger,
		plog:    cfg.ProtocolLogger,
		tx:      tx,
		store:   cfg.ConfigStore,
		metrics: metrics,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.logger = c.logger.With("contextID", c.id, "role", cfg.Role.String())
	if c.store == nil {
		store := persistence.NewMemoryStore()
		if err := specialization.Register(store); err != nil {
			return nil, err
		}
		c.store = store
	}

	if cfg.Role == RoleAgent {
		c.mds = cfg.Agent.MDS
	} else {
		c.mds = model.NewMDS(c.logger)
	}
	c.table = interaction.NewTable(interaction.Config{OnTimeout: c.requestTimedOut})
	c.machine = newMachine(cfg.Role, c.enterState)
	return c, nil
}

// ID returns the context id used in protocol captures.
func (c *Context) ID() string { return c.id }

// Role returns the role of the context.
func (c *Context) Role() Role { return c.cfg.Role }

// State returns the current association state.
func (c *Context) State() State { return State(c.machine.Current()) }

// MDS returns the DIM tree. On a manager it mirrors the remote agent and is
// rebuilt on every association. The tree must not be accessed while the
// context is processing input; read it from an event handler.
func (c *Context) MDS() *model.MDS { return c.mds }

// PeerSystemID returns the system id of the associated peer.
func (c *Context) PeerSystemID() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.peer.SystemID...)
}

// PendingRequests returns the number of unanswered confirmed requests.
func (c *Context) PendingRequests() int { return c.table.Len() }

// OnEvent registers an event handler.
func (c *Context) OnEvent(handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// run executes fn under the context lock, then runs the callbacks fn
// deferred.
func (c *Context) run(fn func() error) error {
	c.mu.Lock()
	err := fn()
	var calls []func()
	for c.deferred.Len() > 0 {
		f, _ := c.deferred.Pop()
		calls = append(calls, f)
	}
	c.mu.Unlock()

	for _, f := range calls {
		f()
	}
	return err
}

// emit queues ev for every handler. Caller holds mu.
func (c *Context) emit(ev Event) {
	ev.ContextID = c.id
	for _, h := range c.handlers {
		c.deferred.Add(func() { h(ev) })
	}
}

// complete queues the completion callback of req. Caller holds mu.
func (c *Context) complete(req *interaction.Request) {
	if req.OnComplete != nil {
		c.deferred.Add(func() { req.OnComplete(req) })
	}
}

// enterState runs after every transition, with mu held by the caller of
// fire.
func (c *Context) enterState(e *fsm.Event) {
	src, dst := State(e.Src), State(e.Dst)
	c.logger.Info("state transition", "oldState", src.String(), "newState", dst.String(), "trigger", e.Event)
	c.captureState(src, dst, e.Event)

	switch dst {
	case StateDisconnected, StateUnassociated:
		c.stopTimer()
		for _, req := range c.table.Clear() {
			req.Err = ErrAborted
			c.complete(req)
		}
		c.metrics.pending(0)
		if src.Associated() || src == StateDisassociating {
			c.emit(Event{Type: EventDisassociated, Reason: c.abortReason})
		}
		c.abortReason = ""
		if c.cfg.Role == RoleManager {
			c.mds.Reset()
		}

	case StateAssociating:
		c.armTimer(c.cfg.AssociationTimeout, wire.AbortResponseTimeout)

	case StateWaitingForConfig, StateWaitingApproval:
		if src == StateUnassociated || src == StateAssociating {
			c.emit(Event{Type: EventAssociated})
		}
		c.armTimer(c.cfg.ConfigurationTimeout, wire.AbortConfigurationTimeout)

	case StateConfigSending:
		c.stopTimer()
		if src == StateAssociating {
			c.emit(Event{Type: EventAssociated})
		}

	case StateCheckingConfig:
		c.stopTimer()

	case StateOperating:
		c.stopTimer()
		if src == StateUnassociated || src == StateAssociating {
			c.emit(Event{Type: EventAssociated})
		}
		c.emit(Event{Type: EventConfigured})

	case StateDisassociating:
		c.armTimer(c.cfg.ReleaseTimeout, wire.AbortResponseTimeout)
	}
}

// armTimer starts the association timer. Caller holds mu.
func (c *Context) armTimer(d time.Duration, reason wire.AbortReason) {
	c.stopTimer()
	gen := c.timerGen
	c.timer = time.AfterFunc(d, func() { c.timerExpired(gen, reason) })
}

// stopTimer cancels the association timer. Caller holds mu.
func (c *Context) stopTimer() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Context) timerExpired(gen uint64, reason wire.AbortReason) {
	_ = c.run(func() error {
		if gen != c.timerGen {
			return nil
		}
		c.timer = nil
		c.logger.Warn("association timer expired", "state", c.State().String(), "reason", reason.String())
		return c.abort(reason)
	})
}

// requestTimedOut runs on the table's timer goroutine.
func (c *Context) requestTimedOut(req *interaction.Request) {
	_ = c.run(func() error {
		req.Err = ErrTimeout
		c.metrics.pending(c.table.Len())
		c.logger.Warn("request timed out", "invokeID", req.InvokeID, "message", req.Choice.String(), "handle", req.Handle)
		c.complete(req)
		c.emit(Event{Type: EventRequestTimeout, Handle: req.Handle, Error: ErrTimeout})
		if c.State() == StateOperating {
			return c.abort(wire.AbortResponseTimeout)
		}
		return nil
	})
}

// abort sends ABRT and returns to Unassociated. Caller holds mu.
func (c *Context) abort(reason wire.AbortReason) error {
	if !c.can(evAbort) {
		return nil
	}
	c.abortReason = reason.String()
	err := c.send(&wire.APDU{Choice: wire.ABRTChosen, Body: &wire.ABRT{Reason: reason}})
	if ferr := c.fire(evAbort); ferr != nil {
		return ferr
	}
	return err
}

// send encodes and transmits a. Caller holds mu.
func (c *Context) send(a *wire.APDU) error {
	b, err := wire.EncodeAPDU(a)
	if err != nil {
		c.logger.Error("encode apdu", "choice", a.Choice.String(), "error", err)
		return fmt.Errorf("encode %s: %w", a.Choice, err)
	}
	c.metrics.sent(a.Choice.String())
	c.capture(log.DirectionOut, a, b)
	c.logger.Debug("tx", "choice", a.Choice.String(), "size", len(b))
	if err := c.tx.Send(b); err != nil {
		c.captureError(err, "send "+a.Choice.String())
		return fmt.Errorf("send %s: %w", a.Choice, err)
	}
	return nil
}

// sendData sends a DATA_apdu inside a PRST. Caller holds mu.
func (c *Context) sendData(d wire.DataAPDU) error {
	return c.send(wire.NewPRST(d))
}

// sendError answers an invoke with ROER. Caller holds mu.
func (c *Context) sendError(invokeID uint16, code wire.ErrorValue) error {
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.Roer,
		Body:     &wire.ErrorResult{Error: code},
	})
}

// sendReject answers an invoke with RORJ. Caller holds mu.
func (c *Context) sendReject(invokeID uint16, problem wire.RejectProblem) error {
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.Rorj,
		Body:     &wire.RejectResult{Problem: problem},
	})
}

func (c *Context) newLogEvent(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		ContextID: c.id,
		Direction: dir,
		Layer:     layer,
		Category:  cat,
		LocalRole: c.cfg.Role.logRole(),
		SystemID:  hex.EncodeToString(c.peer.SystemID),
	}
}

// capture records an APDU in the protocol log.
func (c *Context) capture(dir log.Direction, a *wire.APDU, raw []byte) {
	if c.plog == nil {
		return
	}
	ev := c.newLogEvent(dir, log.LayerAPDU, log.CategoryMessage)
	ev.APDU = log.NewAPDUEvent(uint16(a.Choice), raw)
	if d := a.DataAPDU(); d != nil {
		id, mc := d.InvokeID, uint16(d.Choice)
		ev.APDU.InvokeID = &id
		ev.APDU.MessageChoice = &mc
		var h, et, at *uint16
		switch b := d.Body.(type) {
		case *wire.EventReportArgument:
			h, et = &b.Handle, &b.EventType
		case *wire.EventReportResult:
			h, et = &b.Handle, &b.EventType
		case *wire.ActionArgument:
			h, at = &b.Handle, &b.ActionType
		case *wire.ActionResult:
			h, at = &b.Handle, &b.ActionType
		case *wire.GetArgument:
			h = &b.Handle
		case *wire.GetResult:
			h = &b.Handle
		case *wire.SetArgument:
			h = &b.Handle
		case *wire.SetResult:
			h = &b.Handle
		}
		ev.APDU.Handle, ev.APDU.EventType, ev.APDU.ActionType = copyPtr(h), copyPtr(et), copyPtr(at)
	}
	c.plog.Log(ev)
}

func copyPtr(p *uint16) *uint16 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (c *Context) captureState(src, dst State, trigger string) {
	if c.plog == nil {
		return
	}
	ev := c.newLogEvent(log.DirectionIn, log.LayerService, log.CategoryState)
	ev.StateChange = &log.StateChangeEvent{OldState: src.String(), NewState: dst.String(), Trigger: trigger}
	c.plog.Log(ev)
}

func (c *Context) captureError(err error, context string) {
	if c.plog == nil {
		return
	}
	ev := c.newLogEvent(log.DirectionIn, log.LayerService, log.CategoryError)
	ev.Error = &log.ErrorEventData{Layer: log.LayerService, Message: err.Error(), Context: context}
	c.plog.Log(ev)
}
