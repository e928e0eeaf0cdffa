package interaction

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/phd-protocol/phd-go/pkg/wire"
)

// Table errors.
var (
	ErrUnknownInvokeID = errors.New("unknown invoke-id")
	ErrClosed          = errors.New("request table is closed")
	ErrTableFull       = errors.New("no free invoke-id")
)

// Request is an outstanding confirmed operation.
type Request struct {
	// InvokeID is assigned by Table.Add.
	InvokeID uint16

	// Choice is the ROIV message that was sent.
	Choice wire.MessageChoice

	// Handle is the target object.
	Handle uint16

	// ActionType is set for confirmed actions.
	ActionType uint16

	// Argument is the invoke argument, kept for the response handler.
	Argument any

	// Timeout is the time allowed for the response. Zero means no timeout.
	Timeout time.Duration

	// Sent is set by Table.Add.
	Sent time.Time

	// Response is the data APDU that retired the request.
	Response *wire.DataAPDU

	// ReturnData holds the decoded result, filled by the response handler
	// before OnComplete runs.
	ReturnData any

	// Err is set when the request was answered with ROER or RORJ, or
	// timed out.
	Err error

	// OnComplete, when set, runs after the request is retired or times out.
	OnComplete func(*Request)

	timer *time.Timer
	done  atomic.Bool
}

// finish marks the request as done. It reports false if it already was.
func (r *Request) finish() bool {
	if !r.done.CompareAndSwap(false, true) {
		return false
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	return true
}

// Done reports whether the request has left the table.
func (r *Request) Done() bool { return r.done.Load() }

// Config configures a Table.
type Config struct {
	// OnTimeout runs on the timer goroutine when a request times out, after
	// it has been removed from the table.
	OnTimeout func(*Request)

	// FirstInvokeID is the first id handed out.
	FirstInvokeID uint16
}

// Table is the pending request table of one association.
type Table struct {
	mu      sync.Mutex
	pending map[uint16]*Request

	next      *atomic.Uint32
	closed    *atomic.Bool
	onTimeout func(*Request)
}

// NewTable creates an empty table.
func NewTable(cfg Config) *Table {
	return &Table{
		pending:   make(map[uint16]*Request),
		next:      atomic.NewUint32(uint32(cfg.FirstInvokeID)),
		closed:    atomic.NewBool(false),
		onTimeout: cfg.OnTimeout,
	}
}

// NextInvokeID returns a fresh invoke-id without registering a request,
// for unconfirmed operations.
func (t *Table) NextInvokeID() uint16 {
	return uint16(t.next.Inc() - 1)
}

// Add assigns an invoke-id to req, registers it and starts its timeout.
func (t *Table) Add(req *Request) (uint16, error) {
	if t.closed.Load() {
		return 0, ErrClosed
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.allocate()
	if err != nil {
		return 0, err
	}
	req.InvokeID = id
	req.Sent = time.Now()
	t.pending[id] = req
	if req.Timeout > 0 {
		req.timer = time.AfterFunc(req.Timeout, func() { t.expire(req) })
	}
	return id, nil
}

// allocate skips ids still in use. Caller holds mu.
func (t *Table) allocate() (uint16, error) {
	for i := 0; i <= 0xFFFF; i++ {
		id := t.NextInvokeID()
		if _, used := t.pending[id]; !used {
			return id, nil
		}
	}
	return 0, ErrTableFull
}

// Known reports whether id belongs to an outstanding request.
func (t *Table) Known(id uint16) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[id]
	return ok
}

// Get returns the outstanding request with the given id.
func (t *Table) Get(id uint16) (*Request, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	req, ok := t.pending[id]
	return req, ok
}

// Retire removes the request with the given id and stops its timer.
func (t *Table) Retire(id uint16) (*Request, error) {
	t.mu.Lock()
	req, ok := t.pending[id]
	if ok {
		delete(t.pending, id)
	}
	t.mu.Unlock()

	if !ok || !req.finish() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInvokeID, id)
	}
	return req, nil
}

func (t *Table) expire(req *Request) {
	t.mu.Lock()
	cur, ok := t.pending[req.InvokeID]
	if ok && cur == req {
		delete(t.pending, req.InvokeID)
	}
	t.mu.Unlock()

	if !ok || cur != req || !req.finish() {
		return
	}
	if t.onTimeout != nil {
		t.onTimeout(req)
	}
}

// Len returns the number of outstanding requests.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Clear drops every outstanding request without running any callback and
// returns them. The table stays usable.
func (t *Table) Clear() []*Request {
	t.mu.Lock()
	reqs := make([]*Request, 0, len(t.pending))
	for id, req := range t.pending {
		reqs = append(reqs, req)
		delete(t.pending, id)
	}
	t.mu.Unlock()

	out := reqs[:0]
	for _, req := range reqs {
		if req.finish() {
			out = append(out, req)
		}
	}
	return out
}

// Close clears the table and rejects further requests.
func (t *Table) Close() []*Request {
	t.closed.Store(true)
	return t.Clear()
}
