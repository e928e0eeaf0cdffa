package wire

import "fmt"

// APDUChoice is the top-level APDU tag.
type APDUChoice uint16

const (
	AARQChosen APDUChoice = 0xE200
	AAREChosen APDUChoice = 0xE300
	RLRQChosen APDUChoice = 0xE400
	RLREChosen APDUChoice = 0xE500
	ABRTChosen APDUChoice = 0xE600
	PRSTChosen APDUChoice = 0xE700
)

// String returns the APDU name.
func (c APDUChoice) String() string {
	switch c {
	case AARQChosen:
		return "AARQ"
	case AAREChosen:
		return "AARE"
	case RLRQChosen:
		return "RLRQ"
	case RLREChosen:
		return "RLRE"
	case ABRTChosen:
		return "ABRT"
	case PRSTChosen:
		return "PRST"
	default:
		return fmt.Sprintf("APDU(0x%04X)", uint16(c))
	}
}

// MessageChoice is the DATA_apdu message tag.
type MessageChoice uint16

const (
	RoivEventReport          MessageChoice = 0x0100
	RoivConfirmedEventReport MessageChoice = 0x0101
	RoivGet                  MessageChoice = 0x0103
	RoivSet                  MessageChoice = 0x0104
	RoivConfirmedSet         MessageChoice = 0x0105
	RoivAction               MessageChoice = 0x0106
	RoivConfirmedAction      MessageChoice = 0x0107
	RorsConfirmedEventReport MessageChoice = 0x0201
	RorsGet                  MessageChoice = 0x0203
	RorsConfirmedSet         MessageChoice = 0x0205
	RorsConfirmedAction      MessageChoice = 0x0207
	Roer                     MessageChoice = 0x0300
	Rorj                     MessageChoice = 0x0400
)

// String returns the message name.
func (c MessageChoice) String() string {
	switch c {
	case RoivEventReport:
		return "ROIV-EVENT-REPORT"
	case RoivConfirmedEventReport:
		return "ROIV-CONFIRMED-EVENT-REPORT"
	case RoivGet:
		return "ROIV-GET"
	case RoivSet:
		return "ROIV-SET"
	case RoivConfirmedSet:
		return "ROIV-CONFIRMED-SET"
	case RoivAction:
		return "ROIV-ACTION"
	case RoivConfirmedAction:
		return "ROIV-CONFIRMED-ACTION"
	case RorsConfirmedEventReport:
		return "RORS-CONFIRMED-EVENT-REPORT"
	case RorsGet:
		return "RORS-GET"
	case RorsConfirmedSet:
		return "RORS-CONFIRMED-SET"
	case RorsConfirmedAction:
		return "RORS-CONFIRMED-ACTION"
	case Roer:
		return "ROER"
	case Rorj:
		return "RORJ"
	default:
		return fmt.Sprintf("MESSAGE(0x%04X)", uint16(c))
	}
}

// IsInvoke reports whether c is a remote operation invoke (ROIV).
func (c MessageChoice) IsInvoke() bool {
	return c&0xFF00 == 0x0100
}

// IsResponse reports whether c answers an invoke (RORS, ROER or RORJ).
func (c MessageChoice) IsResponse() bool {
	switch c & 0xFF00 {
	case 0x0200, 0x0300, 0x0400:
		return true
	}
	return false
}

// AssociateResult is the result code of an AARE.
type AssociateResult uint16

const (
	AcceptedAssoc                   AssociateResult = 0
	RejectedPermanent               AssociateResult = 1
	RejectedTransient               AssociateResult = 2
	AcceptedUnknownConfig           AssociateResult = 3
	RejectedNoCommonProtocol        AssociateResult = 4
	RejectedNoCommonParameter       AssociateResult = 5
	RejectedUnknown                 AssociateResult = 6
	RejectedUnauthorized            AssociateResult = 7
	RejectedUnsupportedAssocVersion AssociateResult = 8
)

// String returns the result name.
func (r AssociateResult) String() string {
	switch r {
	case AcceptedAssoc:
		return "ACCEPTED"
	case RejectedPermanent:
		return "REJECTED-PERMANENT"
	case RejectedTransient:
		return "REJECTED-TRANSIENT"
	case AcceptedUnknownConfig:
		return "ACCEPTED-UNKNOWN-CONFIG"
	case RejectedNoCommonProtocol:
		return "REJECTED-NO-COMMON-PROTOCOL"
	case RejectedNoCommonParameter:
		return "REJECTED-NO-COMMON-PARAMETER"
	case RejectedUnknown:
		return "REJECTED-UNKNOWN"
	case RejectedUnauthorized:
		return "REJECTED-UNAUTHORIZED"
	case RejectedUnsupportedAssocVersion:
		return "REJECTED-UNSUPPORTED-ASSOC-VERSION"
	default:
		return "UNKNOWN"
	}
}

// ReleaseRequestReason is carried by an RLRQ.
type ReleaseRequestReason uint16

const (
	ReleaseRequestNormal ReleaseRequestReason = 0
)

// ReleaseResponseReason is carried by an RLRE.
type ReleaseResponseReason uint16

const (
	ReleaseResponseNormal ReleaseResponseReason = 0
)

// AbortReason is carried by an ABRT.
type AbortReason uint16

const (
	AbortUndefined            AbortReason = 0
	AbortBufferOverflow       AbortReason = 1
	AbortResponseTimeout      AbortReason = 2
	AbortConfigurationTimeout AbortReason = 3
)

// String returns the reason name.
func (r AbortReason) String() string {
	switch r {
	case AbortUndefined:
		return "UNDEFINED"
	case AbortBufferOverflow:
		return "BUFFER-OVERFLOW"
	case AbortResponseTimeout:
		return "RESPONSE-TIMEOUT"
	case AbortConfigurationTimeout:
		return "CONFIGURATION-TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// ErrorValue is the error code of a ROER.
type ErrorValue uint16

const (
	RoerNoSuchObjectInstance  ErrorValue = 1
	RoerAccessDenied          ErrorValue = 2
	RoerNoSuchAction          ErrorValue = 9
	RoerInvalidObjectInstance ErrorValue = 17
	RoerProtocolViolation     ErrorValue = 23
	RoerNotAllowedByObject    ErrorValue = 24
	RoerActionTimedOut        ErrorValue = 25
	RoerActionAborted         ErrorValue = 26
)

// String returns the error name.
func (e ErrorValue) String() string {
	switch e {
	case RoerNoSuchObjectInstance:
		return "NO-SUCH-OBJECT-INSTANCE"
	case RoerAccessDenied:
		return "ACCESS-DENIED"
	case RoerNoSuchAction:
		return "NO-SUCH-ACTION"
	case RoerInvalidObjectInstance:
		return "INVALID-OBJECT-INSTANCE"
	case RoerProtocolViolation:
		return "PROTOCOL-VIOLATION"
	case RoerNotAllowedByObject:
		return "NOT-ALLOWED-BY-OBJECT"
	case RoerActionTimedOut:
		return "ACTION-TIMED-OUT"
	case RoerActionAborted:
		return "ACTION-ABORTED"
	default:
		return "UNKNOWN"
	}
}

// RejectProblem is the problem code of a RORJ.
type RejectProblem uint16

const (
	RejectUnrecognizedAPDU      RejectProblem = 0
	RejectBadlyStructuredAPDU   RejectProblem = 2
	RejectUnrecognizedOperation RejectProblem = 101
	RejectResourceLimitation    RejectProblem = 103
	RejectUnexpectedError       RejectProblem = 303
)

// ModifyOperator selects how a SET modification applies.
type ModifyOperator uint16

const (
	ModifyReplace      ModifyOperator = 0
	ModifyAddValues    ModifyOperator = 1
	ModifyRemoveValues ModifyOperator = 2
	ModifySetToDefault ModifyOperator = 3
)

// ConfigResult is the manager's verdict on a configuration report.
type ConfigResult uint16

const (
	ConfigAccepted        ConfigResult = 0
	ConfigUnsupported     ConfigResult = 1
	ConfigStandardUnknown ConfigResult = 2
)

// String returns the result name.
func (r ConfigResult) String() string {
	switch r {
	case ConfigAccepted:
		return "ACCEPTED-CONFIG"
	case ConfigUnsupported:
		return "UNSUPPORTED-CONFIG"
	case ConfigStandardUnknown:
		return "STANDARD-CONFIG-UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

// OperationalState of a scanner.
type OperationalState uint16

const (
	OperationalDisabled     OperationalState = 0
	OperationalEnabled      OperationalState = 1
	OperationalNotAvailable OperationalState = 2
)

// String returns the state name.
func (s OperationalState) String() string {
	switch s {
	case OperationalDisabled:
		return "DISABLED"
	case OperationalEnabled:
		return "ENABLED"
	case OperationalNotAvailable:
		return "NOT-AVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// ConfirmMode of a scanner's event reports.
type ConfirmMode uint16

const (
	Unconfirmed ConfirmMode = 0
	Confirmed   ConfirmMode = 1
)

// Association and protocol parameters.
const (
	AssocVersion1        uint32 = 0x80000000
	ProtocolVersion1     uint32 = 0x80000000
	ProtocolVersion2     uint32 = 0x40000000
	NomenclatureVersion1 uint32 = 0x80000000

	EncodingMDER uint16 = 0x8000
	EncodingXER  uint16 = 0x4000
	EncodingPER  uint16 = 0x2000

	SysTypeManager uint32 = 0x80000000
	SysTypeAgent   uint32 = 0x00800000

	FunUnitsUnidirectional  uint32 = 0x80000000
	FunUnitsHaveTestCap     uint32 = 0x40000000
	FunUnitsCreateTestAssoc uint32 = 0x20000000

	DataProtoID20601    uint16 = 20601
	DataProtoIDExternal uint16 = 65535

	// ManagerConfigResponse is the dev_config_id a manager sends.
	ManagerConfigResponse uint16 = 0x0000
	StandardConfigStart   uint16 = 0x0001
	StandardConfigEnd     uint16 = 0x3FFF
	ExtendedConfigStart   uint16 = 0x4000
	ExtendedConfigEnd     uint16 = 0x7FFF
)

// Data request mode capability flags.
const (
	DataReqSuppStop          uint16 = 0x8000
	DataReqSuppScopeAll      uint16 = 0x0800
	DataReqSuppScopeClass    uint16 = 0x0400
	DataReqSuppScopeHandle   uint16 = 0x0200
	DataReqSuppModeSingleRsp uint16 = 0x0080
	DataReqSuppModeTimePer   uint16 = 0x0040
	DataReqSuppModeTimeNoLim uint16 = 0x0020
	DataReqSuppPersonID      uint16 = 0x0010
	DataReqSuppInitAgent     uint16 = 0x0001
)

// Data request modes.
const (
	DataReqStartStop         uint16 = 0x8000
	DataReqContinuation      uint16 = 0x4000
	DataReqScopeAll          uint16 = 0x0800
	DataReqScopeType         uint16 = 0x0400
	DataReqScopeHandle       uint16 = 0x0200
	DataReqModeSingleRsp     uint16 = 0x0080
	DataReqModeTimePeriod    uint16 = 0x0040
	DataReqModeTimeNoLimit   uint16 = 0x0020
	DataReqModeDataReqPerson uint16 = 0x0008
)

// Data request results.
const (
	DataReqResultNoError       uint16 = 0
	DataReqResultUnspecificErr uint16 = 1
	DataReqResultNoStopSupport uint16 = 2
	DataReqResultNoScopeAll    uint16 = 3
)
