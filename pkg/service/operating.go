package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/creachadair/mds/value"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/model"
	nom "github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

var errUnknownEventType = errors.New("unknown event type")

// rxEventReport handles an event report invoke (manager).
func (c *Context) rxEventReport(invokeID uint16, ev *wire.EventReportArgument, confirmed bool) error {
	switch c.State() {
	case StateWaitingForConfig:
		return c.rxConfigEvent(invokeID, ev, confirmed)
	case StateOperating:
	default:
		c.logger.Debug("ignoring event report", "state", c.State().String(), "eventType", ev.EventType)
		return nil
	}

	if ev.EventType == nom.MDC_NOTI_SEGMENT_DATA {
		return c.rxSegmentData(invokeID, ev, confirmed)
	}

	var (
		list data.List
		err  error
	)
	if ev.Handle == model.MDSHandle {
		list, err = c.mdsEvent(ev.EventType, ev.EventInfo)
	} else {
		list, err = c.objectEvent(ev.Handle, ev.EventType, ev.EventInfo)
	}
	switch {
	case errors.Is(err, errUnknownEventType):
		c.logger.Debug("ignoring event type", "eventType", ev.EventType, "handle", ev.Handle)
	case err != nil:
		c.logger.Warn("event report not decoded", "eventType", ev.EventType, "handle", ev.Handle, "error", err)
	}
	if len(list) > 0 {
		c.emit(Event{Type: EventMeasurement, Handle: ev.Handle, Data: list})
	}

	if !confirmed {
		return nil
	}
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RorsConfirmedEventReport,
		Body: &wire.EventReportResult{
			Handle:    ev.Handle,
			EventType: ev.EventType,
		},
	})
}

// mdsEvent decodes an event reported by the MDS object.
func (c *Context) mdsEvent(eventType uint16, info wire.Any) (data.List, error) {
	switch eventType {
	case nom.MDC_NOTI_SCAN_REPORT_FIXED:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoFixed)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateFixed(r.Observations)
	case nom.MDC_NOTI_SCAN_REPORT_VAR:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoVar)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateVar(r.Observations)
	case nom.MDC_NOTI_SCAN_REPORT_MP_FIXED:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoMPFixed)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateMPFixed(r.Persons)
	case nom.MDC_NOTI_SCAN_REPORT_MP_VAR:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoMPVar)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateMPVar(r.Persons)
	}
	return nil, fmt.Errorf("%w: %d", errUnknownEventType, eventType)
}

// objectEvent routes an event report to the scanner with handle h.
func (c *Context) objectEvent(h, eventType uint16, info wire.Any) (data.List, error) {
	s, err := c.mds.Scanner(h)
	if err != nil {
		c.metrics.droppedEvent()
		return nil, err
	}
	buffered, ok := scanEventBuffered(eventType)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnknownEventType, eventType)
	}
	if buffered != s.Buffered() {
		c.metrics.droppedEvent()
		return nil, fmt.Errorf("%w: scanner %d does not emit event %d", model.ErrWrongClass, h, eventType)
	}
	return c.scannerEvent(s, eventType, info)
}

// scanEventBuffered reports whether eventType is a periodic (buffered)
// scan report, and whether it is a scan report at all.
func scanEventBuffered(eventType uint16) (buffered, ok bool) {
	switch {
	case eventType >= nom.MDC_NOTI_UNBUF_SCAN_REPORT_VAR && eventType <= nom.MDC_NOTI_UNBUF_SCAN_REPORT_MP_GROUPED:
		return false, true
	case eventType >= nom.MDC_NOTI_BUF_SCAN_REPORT_VAR && eventType <= nom.MDC_NOTI_BUF_SCAN_REPORT_MP_GROUPED:
		return true, true
	}
	return false, false
}

// scannerEvent decodes one of the six scan report formats.
func (c *Context) scannerEvent(s model.ScannerObject, eventType uint16, info wire.Any) (data.List, error) {
	switch eventType {
	case nom.MDC_NOTI_UNBUF_SCAN_REPORT_VAR, nom.MDC_NOTI_BUF_SCAN_REPORT_VAR:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoVar)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateVar(r.Observations)
	case nom.MDC_NOTI_UNBUF_SCAN_REPORT_FIXED, nom.MDC_NOTI_BUF_SCAN_REPORT_FIXED:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoFixed)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateFixed(r.Observations)
	case nom.MDC_NOTI_UNBUF_SCAN_REPORT_GROUPED, nom.MDC_NOTI_BUF_SCAN_REPORT_GROUPED:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoGrouped)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateGrouped(s, r.Observations)
	case nom.MDC_NOTI_UNBUF_SCAN_REPORT_MP_VAR, nom.MDC_NOTI_BUF_SCAN_REPORT_MP_VAR:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoMPVar)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateMPVar(r.Persons)
	case nom.MDC_NOTI_UNBUF_SCAN_REPORT_MP_FIXED, nom.MDC_NOTI_BUF_SCAN_REPORT_MP_FIXED:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoMPFixed)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateMPFixed(r.Persons)
	case nom.MDC_NOTI_UNBUF_SCAN_REPORT_MP_GROUPED, nom.MDC_NOTI_BUF_SCAN_REPORT_MP_GROUPED:
		r, err := wire.Unmarshal(info, wire.DecodeScanReportInfoMPGrouped)
		if err != nil {
			return nil, err
		}
		return c.mds.UpdateMPGrouped(s, r.Persons)
	}
	return nil, fmt.Errorf("%w: %d", errUnknownEventType, eventType)
}

// rxSegmentData stores a chunk of PM-segment entries and answers with a
// SegmentDataResult instead of the plain acknowledgement.
func (c *Context) rxSegmentData(invokeID uint16, ev *wire.EventReportArgument, confirmed bool) error {
	sd, err := wire.Unmarshal(ev.EventInfo, wire.DecodeSegmentDataEvent)
	if err != nil {
		c.logger.Warn("segment data decode failed", "handle", ev.Handle, "error", err)
		return nil
	}

	status := wire.SegmEvtStatusManagerAbort
	if sd.Descr.Status&wire.SegmEvtStatusAgentAbort == 0 {
		if list, err := c.storeSegmentData(ev.Handle, sd); err != nil {
			c.logger.Warn("segment data rejected", "handle", ev.Handle, "instance", sd.Descr.SegmInstance, "error", err)
		} else {
			status = wire.SegmEvtStatusManagerConfirm |
				sd.Descr.Status&(wire.SegmEvtStatusFirstEntry|wire.SegmEvtStatusLastEntry)
			c.emit(Event{Type: EventSegmentData, Handle: ev.Handle, Data: list})
		}
	}

	if !confirmed {
		return nil
	}
	descr := sd.Descr
	descr.Status = status
	info, err := wire.AnyOf(wire.SegmentDataResult{Descr: descr})
	if err != nil {
		return err
	}
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RorsConfirmedEventReport,
		Body: &wire.EventReportResult{
			Handle:    ev.Handle,
			EventType: nom.MDC_NOTI_SEGMENT_DATA,
			ReplyInfo: info,
		},
	})
}

func (c *Context) storeSegmentData(h uint16, sd wire.SegmentDataEvent) (data.List, error) {
	store, err := c.mds.PMStore(h)
	if err != nil {
		c.metrics.droppedEvent()
		return nil, fmt.Errorf("%w: %v", ErrNotPMStore, err)
	}
	return store.SegmentData(c.mds, sd)
}

// rxAttributes applies the attributes of a GET or SET response.
func (c *Context) rxAttributes(req *interaction.Request, h uint16, attrs wire.AttributeList) error {
	if c.cfg.Role != RoleManager {
		req.ReturnData = attrs
		return nil
	}
	e, err := c.mds.ApplyAttributes(h, attrs)
	if err != nil {
		c.logger.Warn("attribute response not applied", "handle", h, "error", err)
		return err
	}
	req.ReturnData = e
	c.emit(Event{Type: EventAttributes, Handle: h, Data: data.List{e}})
	return nil
}

// rxActionResult decodes the result of a confirmed action by action type.
func (c *Context) rxActionResult(req *interaction.Request, res *wire.ActionResult) error {
	switch res.ActionType {
	case nom.MDC_ACT_DATA_REQUEST:
		rsp, err := wire.Unmarshal(res.Info, wire.DecodeDataResponse)
		if err != nil {
			return err
		}
		req.ReturnData = rsp
		if len(rsp.EventInfo) == 0 {
			return nil
		}
		list, err := c.mdsEvent(rsp.EventType, rsp.EventInfo)
		if len(list) > 0 {
			c.emit(Event{Type: EventMeasurement, Handle: res.Handle, Data: list})
		}
		return err

	case nom.MDC_ACT_SET_TIME:
		return nil

	case nom.MDC_ACT_SEG_CLR:
		sel, err := wire.Unmarshal(res.Info, wire.DecodeSegmSelection)
		if err != nil {
			return err
		}
		req.ReturnData = sel
		store, err := c.mds.PMStore(res.Handle)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotPMStore, err)
		}
		return store.ClearSegments(sel)

	case nom.MDC_ACT_SEG_GET_INFO:
		infos, err := wire.Unmarshal(res.Info, wire.DecodeSegmentInfoList)
		if err != nil {
			return err
		}
		req.ReturnData = infos
		store, err := c.mds.PMStore(res.Handle)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotPMStore, err)
		}
		list, err := store.UpdateSegmentInfo(infos)
		if err != nil {
			return err
		}
		c.emit(Event{Type: EventSegmentInfo, Handle: res.Handle, Data: list})
		return nil

	case nom.MDC_ACT_SEG_TRIG_XFER:
		rsp, err := wire.Unmarshal(res.Info, wire.DecodeTrigSegmDataXferRsp)
		if err != nil {
			return err
		}
		req.ReturnData = rsp
		if rsp.Response != wire.TrigXferSuccessful {
			c.logger.Info("segment transfer refused", "handle", res.Handle, "instance", rsp.InstNo, "response", rsp.Response)
		}
		return nil
	}
	c.logger.Debug("ignoring action result", "actionType", res.ActionType, "handle", res.Handle)
	return nil
}

// rxGet answers a GET on the MDS (agent).
func (c *Context) rxGet(invokeID uint16, arg *wire.GetArgument) error {
	if c.State() != StateOperating {
		return c.sendError(invokeID, wire.RoerNotAllowedByObject)
	}
	if arg.Handle != model.MDSHandle {
		return c.sendError(invokeID, wire.RoerNoSuchObjectInstance)
	}
	attrs, err := c.mds.Attributes()
	if err != nil {
		c.logger.Error("encode MDS attributes", "error", err)
		return c.sendError(invokeID, wire.RoerProtocolViolation)
	}
	if len(arg.AttributeIDs) > 0 {
		attrs = selectAttributes(attrs, arg.AttributeIDs)
	}
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RorsGet,
		Body:     &wire.GetResult{Handle: model.MDSHandle, Attributes: attrs},
	})
}

func selectAttributes(attrs wire.AttributeList, ids wire.AttributeIDList) wire.AttributeList {
	var out wire.AttributeList
	for _, a := range attrs {
		for _, id := range ids {
			if a.AttributeID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// rxSet applies replace modifications to a local object (agent).
func (c *Context) rxSet(invokeID uint16, arg *wire.SetArgument, confirmed bool) error {
	if c.State() != StateOperating {
		if confirmed {
			return c.sendError(invokeID, wire.RoerNotAllowedByObject)
		}
		return nil
	}
	var list wire.AttributeList
	for _, m := range arg.Modifications {
		if m.Operator != wire.ModifyReplace {
			if confirmed {
				return c.sendError(invokeID, wire.RoerNotAllowedByObject)
			}
			return nil
		}
		list = append(list, m.Attribute)
	}
	if _, err := c.mds.ApplyAttributes(arg.Handle, list); err != nil {
		c.logger.Warn("set not applied", "handle", arg.Handle, "error", err)
		if confirmed {
			if errors.Is(err, model.ErrUnknownHandle) {
				return c.sendError(invokeID, wire.RoerNoSuchObjectInstance)
			}
			return c.sendError(invokeID, wire.RoerInvalidObjectInstance)
		}
		return nil
	}
	if !confirmed {
		return nil
	}
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RorsConfirmedSet,
		Body:     &wire.SetResult{Handle: arg.Handle, Attributes: list},
	})
}

// rxAction runs a method on the MDS (agent). Only set-time is supported.
func (c *Context) rxAction(invokeID uint16, arg *wire.ActionArgument, confirmed bool) error {
	if c.State() != StateOperating || arg.Handle != model.MDSHandle || arg.ActionType != nom.MDC_ACT_SET_TIME {
		if confirmed {
			return c.sendError(invokeID, wire.RoerNoSuchAction)
		}
		return nil
	}
	st, err := wire.Unmarshal(arg.Args, wire.DecodeSetTimeInvoke)
	if err != nil {
		c.logger.Warn("set time decode failed", "error", err)
		if confirmed {
			return c.sendError(invokeID, wire.RoerProtocolViolation)
		}
		return nil
	}
	c.mds.DateAndTime = value.Just(st.DateTime)
	c.logger.Info("clock set by manager", "time", st.DateTime.Time(time.UTC).String())
	if !confirmed {
		return nil
	}
	return c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RorsConfirmedAction,
		Body:     &wire.ActionResult{Handle: model.MDSHandle, ActionType: nom.MDC_ACT_SET_TIME},
	})
}
