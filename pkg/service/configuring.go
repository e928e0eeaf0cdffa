package service

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// rxConfigEvent handles event reports while waiting for the agent's
// configuration (manager).
func (c *Context) rxConfigEvent(invokeID uint16, ev *wire.EventReportArgument, confirmed bool) error {
	if !confirmed || ev.Handle != 0 || ev.EventType != nomenclature.MDC_NOTI_CONFIG {
		c.logger.Debug("unexpected event report while waiting for configuration", "eventType", ev.EventType, "handle", ev.Handle)
		if confirmed {
			return c.sendError(invokeID, wire.RoerNotAllowedByObject)
		}
		return nil
	}

	report, err := wire.Unmarshal(ev.EventInfo, wire.DecodeConfigReport)
	if err != nil {
		c.logger.Warn("config report decode failed", "error", err)
		return c.sendError(invokeID, wire.RoerProtocolViolation)
	}
	if err := c.fire(evConfigReceived); err != nil {
		return err
	}

	result := c.checkConfig(report)
	rsp := wire.ConfigReportRsp{ConfigReportID: report.ConfigReportID, Result: result}
	info, err := wire.AnyOf(rsp)
	if err != nil {
		return err
	}
	err = c.sendData(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RorsConfirmedEventReport,
		Body: &wire.EventReportResult{
			Handle:      0,
			CurrentTime: ev.EventTime,
			EventType:   nomenclature.MDC_NOTI_CONFIG,
			ReplyInfo:   info,
		},
	})
	if err != nil {
		return err
	}

	c.logger.Info("configuration checked", "devConfigID", report.ConfigReportID, "result", result.String(), "objects", len(report.Objects))
	if result != wire.ConfigAccepted {
		return c.fire(evConfigRejected)
	}
	if err := c.store.Save(c.mds.SystemID, report.ConfigReportID, report.Objects); err != nil {
		c.logger.Warn("config store save failed", "devConfigID", report.ConfigReportID, "error", err)
	}
	return c.fire(evConfigAccepted)
}

// checkConfig builds the DIM tree from an agent's configuration report.
func (c *Context) checkConfig(report wire.ConfigReport) wire.ConfigResult {
	if !c.cfg.AcceptUnknownConfig {
		if persistence.IsStandardConfig(report.ConfigReportID) {
			return wire.ConfigStandardUnknown
		}
		return wire.ConfigUnsupported
	}
	if err := c.mds.Configure(report.Objects); err != nil {
		c.logger.Warn("configuration not supported", "devConfigID", report.ConfigReportID, "error", err)
		return wire.ConfigUnsupported
	}
	c.mds.DevConfigID = report.ConfigReportID
	return wire.ConfigAccepted
}

// SendConfiguration sends the agent's configuration report again after the
// manager rejected it. Only valid in Config-Sending.
func (c *Context) SendConfiguration(objects wire.ConfigObjectList) error {
	return c.run(func() error {
		if c.cfg.Role != RoleAgent || c.State() != StateConfigSending {
			return fmt.Errorf("%w: send configuration in %s", ErrInvalidState, c.State())
		}
		if objects != nil {
			c.cfg.Agent.Config = objects
		}
		return c.sendConfig()
	})
}

// sendConfig sends the canned configuration as a confirmed report and
// moves to Waiting-Approval. Caller holds mu.
func (c *Context) sendConfig() error {
	report := wire.ConfigReport{ConfigReportID: c.mds.DevConfigID, Objects: c.cfg.Agent.Config}
	info, err := wire.AnyOf(report)
	if err != nil {
		return err
	}
	arg := &wire.EventReportArgument{
		Handle:    0,
		EventTime: 0xFFFFFFFF,
		EventType: nomenclature.MDC_NOTI_CONFIG,
		EventInfo: info,
	}
	req := &interaction.Request{
		Choice:   wire.RoivConfirmedEventReport,
		Handle:   0,
		Argument: arg,
	}
	id, err := c.table.Add(req)
	if err != nil {
		return err
	}
	c.metrics.pending(c.table.Len())
	err = c.sendData(wire.DataAPDU{InvokeID: id, Choice: wire.RoivConfirmedEventReport, Body: arg})
	if err != nil {
		c.retire(req)
		return err
	}
	return c.fire(evConfigSent)
}

// rxEventReportResult handles the manager's answer to an event report
// (agent).
func (c *Context) rxEventReportResult(req *interaction.Request, res *wire.EventReportResult) error {
	if res.EventType != nomenclature.MDC_NOTI_CONFIG || c.State() != StateWaitingApproval {
		req.ReturnData = res
		return nil
	}
	rsp, err := wire.Unmarshal(res.ReplyInfo, wire.DecodeConfigReportRsp)
	if err != nil {
		c.logger.Warn("config report response decode failed", "error", err)
		return c.abort(wire.AbortUndefined)
	}
	req.ReturnData = rsp
	c.logger.Info("configuration response", "devConfigID", rsp.ConfigReportID, "result", rsp.Result.String())
	if rsp.Result == wire.ConfigAccepted {
		return c.fire(evConfigAccepted)
	}
	req.Err = fmt.Errorf("%w: %s", ErrRejected, rsp.Result)
	return c.fire(evConfigRejected)
}
