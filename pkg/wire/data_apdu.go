package wire

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

// DataAPDU is the payload of a PRST: an invoke id and one remote
// operation message.
type DataAPDU struct {
	InvokeID uint16
	Choice   MessageChoice
	Body     Body
}

// DecodeDataAPDU reads a DATA_apdu. Unknown message choices decode to a
// RawBody.
func DecodeDataAPDU(r *mder.Reader) (DataAPDU, error) {
	var d DataAPDU
	id, err := r.Uint16()
	if err != nil {
		return d, fmt.Errorf("invoke id: %w", err)
	}
	c, err := r.Uint16()
	if err != nil {
		return d, fmt.Errorf("message choice: %w", err)
	}
	sub, err := r.Sub()
	if err != nil {
		return d, fmt.Errorf("message length: %w", err)
	}
	d.InvokeID = id
	d.Choice = MessageChoice(c)
	switch d.Choice {
	case RoivEventReport, RoivConfirmedEventReport:
		d.Body, err = decodeEventReportArgument(sub)
	case RoivGet:
		d.Body, err = decodeGetArgument(sub)
	case RoivSet, RoivConfirmedSet:
		d.Body, err = decodeSetArgument(sub)
	case RoivAction, RoivConfirmedAction:
		d.Body, err = decodeActionArgument(sub)
	case RorsConfirmedEventReport:
		d.Body, err = decodeEventReportResult(sub)
	case RorsGet:
		d.Body, err = decodeGetResult(sub)
	case RorsConfirmedSet:
		d.Body, err = decodeSetResult(sub)
	case RorsConfirmedAction:
		d.Body, err = decodeActionResult(sub)
	case Roer:
		d.Body, err = decodeErrorResult(sub)
	case Rorj:
		d.Body, err = decodeRejectResult(sub)
	default:
		d.Body = RawBody(sub.Rest())
	}
	if err != nil {
		return d, fmt.Errorf("%s: %w", d.Choice, err)
	}
	return d, nil
}

// Encode writes the invoke id, the message choice and the sized body.
func (d DataAPDU) Encode(w *mder.Writer) error {
	w.PutUint16(d.InvokeID)
	w.PutUint16(uint16(d.Choice))
	return w.Sized(d.Body.Encode)
}

// EventReportArgument is the simple event report invoke, shared by the
// unconfirmed and confirmed variants.
type EventReportArgument struct {
	Handle    uint16
	EventTime uint32
	EventType uint16
	EventInfo Any
}

func (*EventReportArgument) body() {}

func decodeEventReportArgument(r *mder.Reader) (*EventReportArgument, error) {
	var a EventReportArgument
	var err error
	if a.Handle, err = r.Uint16(); err != nil {
		return nil, err
	}
	if a.EventTime, err = r.Uint32(); err != nil {
		return nil, err
	}
	if a.EventType, err = r.Uint16(); err != nil {
		return nil, err
	}
	if a.EventInfo, err = DecodeAny(r); err != nil {
		return nil, err
	}
	return &a, nil
}

// Encode writes the argument.
func (a *EventReportArgument) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	w.PutUint32(a.EventTime)
	w.PutUint16(a.EventType)
	return a.EventInfo.Encode(w)
}

// EventReportResult acknowledges a confirmed event report.
type EventReportResult struct {
	Handle      uint16
	CurrentTime uint32
	EventType   uint16
	ReplyInfo   Any
}

func (*EventReportResult) body() {}

func decodeEventReportResult(r *mder.Reader) (*EventReportResult, error) {
	var a EventReportResult
	var err error
	if a.Handle, err = r.Uint16(); err != nil {
		return nil, err
	}
	if a.CurrentTime, err = r.Uint32(); err != nil {
		return nil, err
	}
	if a.EventType, err = r.Uint16(); err != nil {
		return nil, err
	}
	if a.ReplyInfo, err = DecodeAny(r); err != nil {
		return nil, err
	}
	return &a, nil
}

// Encode writes the result.
func (a *EventReportResult) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	w.PutUint32(a.CurrentTime)
	w.PutUint16(a.EventType)
	return a.ReplyInfo.Encode(w)
}

// GetArgument requests attributes of an object. An empty id list asks
// for all attributes.
type GetArgument struct {
	Handle       uint16
	AttributeIDs AttributeIDList
}

func (*GetArgument) body() {}

func decodeGetArgument(r *mder.Reader) (*GetArgument, error) {
	h, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	ids, err := DecodeAttributeIDList(r)
	if err != nil {
		return nil, err
	}
	return &GetArgument{Handle: h, AttributeIDs: ids}, nil
}

// Encode writes the argument.
func (a *GetArgument) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	return a.AttributeIDs.Encode(w)
}

// GetResult returns attributes of an object.
type GetResult struct {
	Handle     uint16
	Attributes AttributeList
}

func (*GetResult) body() {}

func decodeGetResult(r *mder.Reader) (*GetResult, error) {
	h, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	l, err := DecodeAttributeList(r)
	if err != nil {
		return nil, err
	}
	return &GetResult{Handle: h, Attributes: l}, nil
}

// Encode writes the result.
func (a *GetResult) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	return a.Attributes.Encode(w)
}

// AttributeModEntry is one modification of a SET.
type AttributeModEntry struct {
	Operator  ModifyOperator
	Attribute AVAType
}

func decodeAttributeModEntry(r *mder.Reader) (AttributeModEntry, error) {
	op, err := r.Uint16()
	if err != nil {
		return AttributeModEntry{}, err
	}
	a, err := DecodeAVAType(r)
	if err != nil {
		return AttributeModEntry{}, err
	}
	return AttributeModEntry{Operator: ModifyOperator(op), Attribute: a}, nil
}

func (e AttributeModEntry) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(e.Operator))
	return e.Attribute.Encode(w)
}

// SetArgument modifies attributes of an object.
type SetArgument struct {
	Handle        uint16
	Modifications []AttributeModEntry
}

func (*SetArgument) body() {}

func decodeSetArgument(r *mder.Reader) (*SetArgument, error) {
	h, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	l, err := readList(r, decodeAttributeModEntry)
	if err != nil {
		return nil, err
	}
	return &SetArgument{Handle: h, Modifications: l}, nil
}

// Encode writes the argument.
func (a *SetArgument) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	return writeList(w, a.Modifications, encodeItem[AttributeModEntry])
}

// SetResult returns the attributes after a confirmed SET.
type SetResult struct {
	Handle     uint16
	Attributes AttributeList
}

func (*SetResult) body() {}

func decodeSetResult(r *mder.Reader) (*SetResult, error) {
	g, err := decodeGetResult(r)
	if err != nil {
		return nil, err
	}
	return &SetResult{Handle: g.Handle, Attributes: g.Attributes}, nil
}

// Encode writes the result.
func (a *SetResult) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	return a.Attributes.Encode(w)
}

// ActionArgument invokes a method on an object.
type ActionArgument struct {
	Handle     uint16
	ActionType uint16
	Args       Any
}

func (*ActionArgument) body() {}

func decodeActionArgument(r *mder.Reader) (*ActionArgument, error) {
	var a ActionArgument
	var err error
	if a.Handle, err = r.Uint16(); err != nil {
		return nil, err
	}
	if a.ActionType, err = r.Uint16(); err != nil {
		return nil, err
	}
	if a.Args, err = DecodeAny(r); err != nil {
		return nil, err
	}
	return &a, nil
}

// Encode writes the argument.
func (a *ActionArgument) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	w.PutUint16(a.ActionType)
	return a.Args.Encode(w)
}

// ActionResult is the reply to a confirmed action.
type ActionResult struct {
	Handle     uint16
	ActionType uint16
	Info       Any
}

func (*ActionResult) body() {}

func decodeActionResult(r *mder.Reader) (*ActionResult, error) {
	a, err := decodeActionArgument(r)
	if err != nil {
		return nil, err
	}
	return &ActionResult{Handle: a.Handle, ActionType: a.ActionType, Info: a.Args}, nil
}

// Encode writes the result.
func (a *ActionResult) Encode(w *mder.Writer) error {
	w.PutUint16(a.Handle)
	w.PutUint16(a.ActionType)
	return a.Info.Encode(w)
}

// ErrorResult reports a failed remote operation (ROER).
type ErrorResult struct {
	Error     ErrorValue
	Parameter Any
}

func (*ErrorResult) body() {}

func decodeErrorResult(r *mder.Reader) (*ErrorResult, error) {
	v, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	p, err := DecodeAny(r)
	if err != nil {
		return nil, err
	}
	return &ErrorResult{Error: ErrorValue(v), Parameter: p}, nil
}

// Encode writes the error.
func (e *ErrorResult) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(e.Error))
	return e.Parameter.Encode(w)
}

// RejectResult reports a rejected invoke (RORJ).
type RejectResult struct {
	Problem RejectProblem
}

func (*RejectResult) body() {}

func decodeRejectResult(r *mder.Reader) (*RejectResult, error) {
	v, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	return &RejectResult{Problem: RejectProblem(v)}, nil
}

// Encode writes the problem code.
func (e *RejectResult) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(e.Problem))
	return nil
}
