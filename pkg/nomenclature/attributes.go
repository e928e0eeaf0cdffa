package nomenclature

// Attribute identifiers (partition MDC_PART_OBJ).
const (
	MDC_ATTR_CONFIRM_MODE               uint16 = 2323
	MDC_ATTR_CONFIRM_TIMEOUT            uint16 = 2324
	MDC_ATTR_ID_HANDLE                  uint16 = 2337
	MDC_ATTR_ID_INSTNO                  uint16 = 2338
	MDC_ATTR_ID_LABEL_STRING            uint16 = 2343
	MDC_ATTR_ID_MODEL                   uint16 = 2344
	MDC_ATTR_ID_PHYSIO                  uint16 = 2347
	MDC_ATTR_ID_PROD_SPECN              uint16 = 2349
	MDC_ATTR_ID_TYPE                    uint16 = 2351
	MDC_ATTR_METRIC_STORE_CAPAC_CNT     uint16 = 2369
	MDC_ATTR_METRIC_STORE_SAMPLE_ALG    uint16 = 2371
	MDC_ATTR_METRIC_STORE_USAGE_CNT     uint16 = 2372
	MDC_ATTR_MSMT_STAT                  uint16 = 2375
	MDC_ATTR_NU_ACCUR_MSMT              uint16 = 2378
	MDC_ATTR_NU_CMPD_VAL_OBS            uint16 = 2379
	MDC_ATTR_NU_VAL_OBS                 uint16 = 2384
	MDC_ATTR_NUM_SEG                    uint16 = 2385
	MDC_ATTR_OP_STAT                    uint16 = 2387
	MDC_ATTR_POWER_STAT                 uint16 = 2389
	MDC_ATTR_SA_SPECN                   uint16 = 2413
	MDC_ATTR_SCALE_SPECN_I16            uint16 = 2415
	MDC_ATTR_SCALE_SPECN_I32            uint16 = 2416
	MDC_ATTR_SCALE_SPECN_I8             uint16 = 2417
	MDC_ATTR_SCAN_REP_PD                uint16 = 2421
	MDC_ATTR_SEG_USAGE_CNT              uint16 = 2427
	MDC_ATTR_SYS_ID                     uint16 = 2436
	MDC_ATTR_SYS_TYPE                   uint16 = 2438
	MDC_ATTR_TIME_ABS                   uint16 = 2439
	MDC_ATTR_TIME_BATT_REMAIN           uint16 = 2440
	MDC_ATTR_TIME_END_SEG               uint16 = 2442
	MDC_ATTR_TIME_PD_SAMP               uint16 = 2445
	MDC_ATTR_TIME_REL                   uint16 = 2447
	MDC_ATTR_TIME_STAMP_ABS             uint16 = 2448
	MDC_ATTR_TIME_STAMP_REL             uint16 = 2449
	MDC_ATTR_TIME_START_SEG             uint16 = 2450
	MDC_ATTR_TX_WIND                    uint16 = 2453
	MDC_ATTR_UNIT_CODE                  uint16 = 2454
	MDC_ATTR_UNIT_LABEL_STRING          uint16 = 2457
	MDC_ATTR_VAL_BATT_CHARGE            uint16 = 2460
	MDC_ATTR_VAL_ENUM_OBS               uint16 = 2462
	MDC_ATTR_TIME_REL_HI_RES            uint16 = 2536
	MDC_ATTR_TIME_STAMP_REL_HI_RES      uint16 = 2537
	MDC_ATTR_DEV_CONFIG_ID              uint16 = 2628
	MDC_ATTR_MDS_TIME_INFO              uint16 = 2629
	MDC_ATTR_METRIC_SPEC_SMALL          uint16 = 2630
	MDC_ATTR_SOURCE_HANDLE_REF          uint16 = 2631
	MDC_ATTR_SIMP_SA_OBS_VAL            uint16 = 2632
	MDC_ATTR_ENUM_OBS_VAL_SIMP_OID      uint16 = 2633
	MDC_ATTR_ENUM_OBS_VAL_SIMP_STR      uint16 = 2634
	MDC_ATTR_REG_CERT_DATA_LIST         uint16 = 2635
	MDC_ATTR_NU_VAL_OBS_BASIC           uint16 = 2636
	MDC_ATTR_PM_STORE_CAPAB             uint16 = 2637
	MDC_ATTR_PM_SEG_MAP                 uint16 = 2638
	MDC_ATTR_PM_SEG_PERSON_ID           uint16 = 2639
	MDC_ATTR_SEG_STATS                  uint16 = 2640
	MDC_ATTR_SEG_FIXED_DATA             uint16 = 2641
	MDC_ATTR_SCAN_HANDLE_ATTR_VAL_MAP   uint16 = 2643
	MDC_ATTR_SCAN_REP_PD_MIN            uint16 = 2644
	MDC_ATTR_ATTRIBUTE_VAL_MAP          uint16 = 2645
	MDC_ATTR_NU_VAL_OBS_SIMP            uint16 = 2646
	MDC_ATTR_PM_STORE_LABEL_STRING      uint16 = 2647
	MDC_ATTR_PM_SEG_LABEL_STRING        uint16 = 2648
	MDC_ATTR_TIME_PD_MSMT_ACTIVE        uint16 = 2649
	MDC_ATTR_SYS_TYPE_SPEC_LIST         uint16 = 2650
	MDC_ATTR_METRIC_ID_PART             uint16 = 2655
	MDC_ATTR_ENUM_OBS_VAL_PART          uint16 = 2656
	MDC_ATTR_SUPPLEMENTAL_TYPES         uint16 = 2657
	MDC_ATTR_TIME_ABS_ADJUST            uint16 = 2658
	MDC_ATTR_CLEAR_TIMEOUT              uint16 = 2659
	MDC_ATTR_TRANSFER_TIMEOUT           uint16 = 2660
	MDC_ATTR_ENUM_OBS_VAL_SIMP_BIT_STR  uint16 = 2661
	MDC_ATTR_ENUM_OBS_VAL_BASIC_BIT_STR uint16 = 2662
	MDC_ATTR_METRIC_STRUCT_SMALL        uint16 = 2675
	MDC_ATTR_NU_CMPD_VAL_OBS_SIMP       uint16 = 2676
	MDC_ATTR_NU_CMPD_VAL_OBS_BASIC      uint16 = 2677
	MDC_ATTR_ID_PHYSIO_LIST             uint16 = 2678
	MDC_ATTR_SCAN_HANDLE_LIST           uint16 = 2679
)

var attributeNames = map[uint16]string{
	MDC_ATTR_CONFIRM_MODE:               "Confirm-Mode",
	MDC_ATTR_CONFIRM_TIMEOUT:            "Confirm-Timeout",
	MDC_ATTR_ID_HANDLE:                  "Handle",
	MDC_ATTR_ID_INSTNO:                  "Instance-Number",
	MDC_ATTR_ID_LABEL_STRING:            "Label-String",
	MDC_ATTR_ID_MODEL:                   "System-Model",
	MDC_ATTR_ID_PHYSIO:                  "Metric-Id",
	MDC_ATTR_ID_PROD_SPECN:              "Production-Specification",
	MDC_ATTR_ID_TYPE:                    "Type",
	MDC_ATTR_METRIC_STORE_CAPAC_CNT:     "Store-Capacity-Count",
	MDC_ATTR_METRIC_STORE_SAMPLE_ALG:    "Store-Sample-Algorithm",
	MDC_ATTR_METRIC_STORE_USAGE_CNT:     "Store-Usage-Count",
	MDC_ATTR_MSMT_STAT:                  "Measurement-Status",
	MDC_ATTR_NU_ACCUR_MSMT:              "Accuracy",
	MDC_ATTR_NU_CMPD_VAL_OBS:            "Compound-Nu-Observed-Value",
	MDC_ATTR_NU_VAL_OBS:                 "Nu-Observed-Value",
	MDC_ATTR_NUM_SEG:                    "Number-Of-Segments",
	MDC_ATTR_OP_STAT:                    "Operational-State",
	MDC_ATTR_POWER_STAT:                 "Power-Status",
	MDC_ATTR_SA_SPECN:                   "Sa-Specification",
	MDC_ATTR_SCALE_SPECN_I16:            "Scale-and-Range-Specification-16",
	MDC_ATTR_SCALE_SPECN_I32:            "Scale-and-Range-Specification-32",
	MDC_ATTR_SCALE_SPECN_I8:             "Scale-and-Range-Specification-8",
	MDC_ATTR_SCAN_REP_PD:                "Reporting-Interval",
	MDC_ATTR_SEG_USAGE_CNT:              "Segment-Usage-Count",
	MDC_ATTR_SYS_ID:                     "System-Id",
	MDC_ATTR_SYS_TYPE:                   "System-Type",
	MDC_ATTR_TIME_ABS:                   "Date-and-Time",
	MDC_ATTR_TIME_BATT_REMAIN:           "Remaining-Battery-Time",
	MDC_ATTR_TIME_END_SEG:               "Segment-End-Abs-Time",
	MDC_ATTR_TIME_PD_SAMP:               "Sample-Period",
	MDC_ATTR_TIME_REL:                   "Relative-Time",
	MDC_ATTR_TIME_STAMP_ABS:             "Absolute-Time-Stamp",
	MDC_ATTR_TIME_STAMP_REL:             "Relative-Time-Stamp",
	MDC_ATTR_TIME_START_SEG:             "Segment-Start-Abs-Time",
	MDC_ATTR_TX_WIND:                    "Transmit-Window",
	MDC_ATTR_UNIT_CODE:                  "Unit-Code",
	MDC_ATTR_UNIT_LABEL_STRING:          "Unit-LabelString",
	MDC_ATTR_VAL_BATT_CHARGE:            "Battery-Level",
	MDC_ATTR_VAL_ENUM_OBS:               "Enum-Observed-Value",
	MDC_ATTR_TIME_REL_HI_RES:            "HiRes-Relative-Time",
	MDC_ATTR_TIME_STAMP_REL_HI_RES:      "HiRes-Time-Stamp",
	MDC_ATTR_DEV_CONFIG_ID:              "Dev-Configuration-Id",
	MDC_ATTR_MDS_TIME_INFO:              "Mds-Time-Info",
	MDC_ATTR_METRIC_SPEC_SMALL:          "Metric-Spec-Small",
	MDC_ATTR_SOURCE_HANDLE_REF:          "Source-Handle-Reference",
	MDC_ATTR_SIMP_SA_OBS_VAL:            "Simple-Sa-Observed-Value",
	MDC_ATTR_ENUM_OBS_VAL_SIMP_OID:      "Enum-Observed-Value-Simple-OID",
	MDC_ATTR_ENUM_OBS_VAL_SIMP_STR:      "Enum-Observed-Value-Simple-Str",
	MDC_ATTR_REG_CERT_DATA_LIST:         "Reg-Cert-Data-List",
	MDC_ATTR_NU_VAL_OBS_BASIC:           "Basic-Nu-Observed-Value",
	MDC_ATTR_PM_STORE_CAPAB:             "PM-Store-Capab",
	MDC_ATTR_PM_SEG_MAP:                 "PM-Segment-Entry-Map",
	MDC_ATTR_PM_SEG_PERSON_ID:           "PM-Seg-Person-Id",
	MDC_ATTR_SEG_STATS:                  "Segment-Statistics",
	MDC_ATTR_SEG_FIXED_DATA:             "Fixed-Segment-Data",
	MDC_ATTR_SCAN_HANDLE_ATTR_VAL_MAP:   "Scan-Handle-Attr-Val-Map",
	MDC_ATTR_SCAN_REP_PD_MIN:            "Min-Reporting-Interval",
	MDC_ATTR_ATTRIBUTE_VAL_MAP:          "Attribute-Value-Map",
	MDC_ATTR_NU_VAL_OBS_SIMP:            "Simple-Nu-Observed-Value",
	MDC_ATTR_PM_STORE_LABEL_STRING:      "PM-Store-Label",
	MDC_ATTR_PM_SEG_LABEL_STRING:        "PM-Segment-Label",
	MDC_ATTR_TIME_PD_MSMT_ACTIVE:        "Measure-Active-Period",
	MDC_ATTR_SYS_TYPE_SPEC_LIST:         "System-Type-Spec-List",
	MDC_ATTR_METRIC_ID_PART:             "Metric-Id-Partition",
	MDC_ATTR_ENUM_OBS_VAL_PART:          "Enum-Observed-Value-Partition",
	MDC_ATTR_SUPPLEMENTAL_TYPES:         "Supplemental-Types",
	MDC_ATTR_TIME_ABS_ADJUST:            "Date-and-Time-Adjustment",
	MDC_ATTR_CLEAR_TIMEOUT:              "Clear-Timeout",
	MDC_ATTR_TRANSFER_TIMEOUT:           "Transfer-Timeout",
	MDC_ATTR_ENUM_OBS_VAL_SIMP_BIT_STR:  "Enum-Observed-Value-Simple-Bit-Str",
	MDC_ATTR_ENUM_OBS_VAL_BASIC_BIT_STR: "Enum-Observed-Value-Basic-Bit-Str",
	MDC_ATTR_METRIC_STRUCT_SMALL:        "Metric-Structure-Small",
	MDC_ATTR_NU_CMPD_VAL_OBS_SIMP:       "Simple-Compound-Nu-Observed-Value",
	MDC_ATTR_NU_CMPD_VAL_OBS_BASIC:      "Basic-Compound-Nu-Observed-Value",
	MDC_ATTR_ID_PHYSIO_LIST:             "Metric-Id-List",
	MDC_ATTR_SCAN_HANDLE_LIST:           "Scan-Handle-List",
}
