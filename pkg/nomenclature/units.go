package nomenclature

// Units of measure (partition MDC_PART_DIM).
const (
	MDC_DIM_DIMLESS          uint16 = 512
	MDC_DIM_PERCENT          uint16 = 544
	MDC_DIM_ANG_DEG          uint16 = 736
	MDC_DIM_X_M              uint16 = 1280
	MDC_DIM_CENTI_M          uint16 = 1297
	MDC_DIM_MILLI_M          uint16 = 1298
	MDC_DIM_INCH             uint16 = 1376
	MDC_DIM_X_G              uint16 = 1728
	MDC_DIM_KILO_G           uint16 = 1731
	MDC_DIM_LB               uint16 = 1760
	MDC_DIM_KG_PER_M_SQ      uint16 = 1952
	MDC_DIM_MILLI_G_PER_DL   uint16 = 2130
	MDC_DIM_SEC              uint16 = 2176
	MDC_DIM_MIN              uint16 = 2208
	MDC_DIM_HR               uint16 = 2240
	MDC_DIM_BEAT_PER_MIN     uint16 = 2720
	MDC_DIM_RESP_PER_MIN     uint16 = 2784
	MDC_DIM_KILO_PASCAL      uint16 = 3843
	MDC_DIM_MMHG             uint16 = 3872
	MDC_DIM_X_L_PER_MIN      uint16 = 3072
	MDC_DIM_MILLI_MOLE_PER_L uint16 = 4722
	MDC_DIM_DEGC             uint16 = 6048
	MDC_DIM_FAHR             uint16 = 4416
	MDC_DIM_X_STEP           uint16 = 6656
	MDC_DIM_X_FOOT           uint16 = 6688
	MDC_DIM_X_INCH_PER_MIN   uint16 = 6720
	MDC_DIM_X_STEP_PER_MIN   uint16 = 6752
)

var unitNames = map[uint16]string{
	MDC_DIM_DIMLESS:          "",
	MDC_DIM_PERCENT:          "%",
	MDC_DIM_ANG_DEG:          "deg",
	MDC_DIM_X_M:              "m",
	MDC_DIM_CENTI_M:          "cm",
	MDC_DIM_MILLI_M:          "mm",
	MDC_DIM_INCH:             "in",
	MDC_DIM_X_G:              "g",
	MDC_DIM_KILO_G:           "kg",
	MDC_DIM_LB:               "lb",
	MDC_DIM_KG_PER_M_SQ:      "kg m-2",
	MDC_DIM_MILLI_G_PER_DL:   "mg dL-1",
	MDC_DIM_SEC:              "sec",
	MDC_DIM_MIN:              "min",
	MDC_DIM_HR:               "h",
	MDC_DIM_BEAT_PER_MIN:     "bpm",
	MDC_DIM_RESP_PER_MIN:     "resp min-1",
	MDC_DIM_KILO_PASCAL:      "kPa",
	MDC_DIM_MMHG:             "mmHg",
	MDC_DIM_X_L_PER_MIN:      "L min-1",
	MDC_DIM_MILLI_MOLE_PER_L: "mmol L-1",
	MDC_DIM_DEGC:             "degC",
	MDC_DIM_FAHR:             "degF",
	MDC_DIM_X_STEP:           "step",
	MDC_DIM_X_FOOT:           "ft",
	MDC_DIM_X_INCH_PER_MIN:   "in min-1",
	MDC_DIM_X_STEP_PER_MIN:   "step min-1",
}

// Physiological metric codes (partition MDC_PART_SCADA) used by the
// reference device specializations.
const (
	MDC_PULS_OXIM_SAT_O2              uint16 = 19384
	MDC_PULS_OXIM_PULS_RATE           uint16 = 18458
	MDC_PRESS_BLD_NONINV              uint16 = 18948
	MDC_PRESS_BLD_NONINV_SYS          uint16 = 18949
	MDC_PRESS_BLD_NONINV_DIA          uint16 = 18950
	MDC_PRESS_BLD_NONINV_MEAN         uint16 = 18951
	MDC_PULS_RATE_NON_INV             uint16 = 18474
	MDC_TEMP_BODY                     uint16 = 19292
	MDC_MASS_BODY_ACTUAL              uint16 = 57664
	MDC_LEN_BODY_ACTUAL               uint16 = 57668
	MDC_RATIO_MASS_BODY_LEN_SQ        uint16 = 57680
	MDC_CONC_GLU_CAPILLARY_WHOLEBLOOD uint16 = 29112
)

var metricNames = map[uint16]string{
	MDC_PULS_OXIM_SAT_O2:              "MDC_PULS_OXIM_SAT_O2",
	MDC_PULS_OXIM_PULS_RATE:           "MDC_PULS_OXIM_PULS_RATE",
	MDC_PRESS_BLD_NONINV:              "MDC_PRESS_BLD_NONINV",
	MDC_PRESS_BLD_NONINV_SYS:          "MDC_PRESS_BLD_NONINV_SYS",
	MDC_PRESS_BLD_NONINV_DIA:          "MDC_PRESS_BLD_NONINV_DIA",
	MDC_PRESS_BLD_NONINV_MEAN:         "MDC_PRESS_BLD_NONINV_MEAN",
	MDC_PULS_RATE_NON_INV:             "MDC_PULS_RATE_NON_INV",
	MDC_TEMP_BODY:                     "MDC_TEMP_BODY",
	MDC_MASS_BODY_ACTUAL:              "MDC_MASS_BODY_ACTUAL",
	MDC_LEN_BODY_ACTUAL:               "MDC_LEN_BODY_ACTUAL",
	MDC_RATIO_MASS_BODY_LEN_SQ:        "MDC_RATIO_MASS_BODY_LEN_SQ",
	MDC_CONC_GLU_CAPILLARY_WHOLEBLOOD: "MDC_CONC_GLU_CAPILLARY_WHOLEBLOOD",
}
