package nomenclature

// Object classes (partition MDC_PART_OBJ).
const (
	MDC_MOC_VMO_METRIC       uint16 = 4
	MDC_MOC_VMO_METRIC_ENUM  uint16 = 5
	MDC_MOC_VMO_METRIC_NU    uint16 = 6
	MDC_MOC_VMO_METRIC_SA_RT uint16 = 9
	MDC_MOC_SCAN             uint16 = 16
	MDC_MOC_SCAN_CFG         uint16 = 17
	MDC_MOC_SCAN_CFG_EPI     uint16 = 18
	MDC_MOC_SCAN_CFG_PERI    uint16 = 19
	MDC_MOC_VMS_MDS_SIMP     uint16 = 37
	MDC_MOC_VMO_PMSTORE      uint16 = 61
	MDC_MOC_PM_SEGMENT       uint16 = 62
)

// Partitions.
const (
	MDC_PART_OBJ      uint16 = 1
	MDC_PART_SCADA    uint16 = 2
	MDC_PART_DIM      uint16 = 4
	MDC_PART_INFRA    uint16 = 8
	MDC_PART_PHD_DM   uint16 = 128
	MDC_PART_PHD_HF   uint16 = 129
	MDC_PART_PHD_AI   uint16 = 130
	MDC_PART_RET_CODE uint16 = 255
	MDC_PART_EXT_NOM  uint16 = 256
)

// Notifications (event types).
const (
	MDC_NOTI_CONFIG                       uint16 = 3356
	MDC_NOTI_SCAN_REPORT_FIXED            uint16 = 3357
	MDC_NOTI_SCAN_REPORT_VAR              uint16 = 3358
	MDC_NOTI_SCAN_REPORT_MP_FIXED         uint16 = 3359
	MDC_NOTI_SCAN_REPORT_MP_VAR           uint16 = 3360
	MDC_NOTI_SEGMENT_DATA                 uint16 = 3361
	MDC_NOTI_UNBUF_SCAN_REPORT_VAR        uint16 = 3362
	MDC_NOTI_UNBUF_SCAN_REPORT_FIXED      uint16 = 3363
	MDC_NOTI_UNBUF_SCAN_REPORT_GROUPED    uint16 = 3364
	MDC_NOTI_UNBUF_SCAN_REPORT_MP_VAR     uint16 = 3365
	MDC_NOTI_UNBUF_SCAN_REPORT_MP_FIXED   uint16 = 3366
	MDC_NOTI_UNBUF_SCAN_REPORT_MP_GROUPED uint16 = 3367
	MDC_NOTI_BUF_SCAN_REPORT_VAR          uint16 = 3368
	MDC_NOTI_BUF_SCAN_REPORT_FIXED        uint16 = 3369
	MDC_NOTI_BUF_SCAN_REPORT_GROUPED      uint16 = 3370
	MDC_NOTI_BUF_SCAN_REPORT_MP_VAR       uint16 = 3371
	MDC_NOTI_BUF_SCAN_REPORT_MP_FIXED     uint16 = 3372
	MDC_NOTI_BUF_SCAN_REPORT_MP_GROUPED   uint16 = 3373
)

// Actions.
const (
	MDC_ACT_SEG_CLR       uint16 = 3084
	MDC_ACT_SEG_GET_INFO  uint16 = 3085
	MDC_ACT_SET_TIME      uint16 = 3095
	MDC_ACT_DATA_REQUEST  uint16 = 3099
	MDC_ACT_SEG_TRIG_XFER uint16 = 3100
)
