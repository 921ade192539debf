package bridge

import (
	"errors"

	"haier2mqtt/bimap"
	"haier2mqtt/haier"
)

const VARIANT_HSU07 = "hsu07"
const VARIANT_YRW02 = "yrw02"

const HVAC_MODE_OFF = "off"
const HVAC_MODE_AUTO = "auto"
const HVAC_MODE_COOL = "cool"
const HVAC_MODE_DRY = "dry"
const HVAC_MODE_HEAT = "heat"
const HVAC_MODE_FAN_ONLY = "fan_only"

const FAN_MODE_AUTO = "auto"
const FAN_MODE_LOW = "low"
const FAN_MODE_MED = "medium"
const FAN_MODE_HIGH = "high"

const PAYLOAD_ON = "ON"
const PAYLOAD_OFF = "OFF"

const HA_COMPONENT_SENSOR = "sensor"
const HA_COMPONENT_CLIMATE = "climate"
const HA_COMPONENT_SWITCH = "switch"

const UNKNOWN = "unknown"

// samples before the first data bit: lead pair and header pair
const headerSamples = 4

// window of the received bit mark average
const bitMarkWindow = 50

var ErrUnknownVariant = errors.New("Unknown remote variant")
var ErrUnknownHvacMode = errors.New("Unknown hvac mode")
var ErrUnknownFanMode = errors.New("Unknown fan mode")
var ErrUnknownSwingMode = errors.New("Unknown swing mode")
var ErrUnknownTurboMode = errors.New("Unknown turbo mode")
var ErrBadSwitchPayload = errors.New("Switch payload must be ON or OFF")

var hsu07Modes = bimap.New(map[string]haier.Mode{
	HVAC_MODE_AUTO:     haier.ModeAuto,
	HVAC_MODE_COOL:     haier.ModeCool,
	HVAC_MODE_DRY:      haier.ModeDry,
	HVAC_MODE_HEAT:     haier.ModeHeat,
	HVAC_MODE_FAN_ONLY: haier.ModeFan,
}).MakeImmutable()

var hsu07Fans = bimap.New(map[string]haier.Fan{
	FAN_MODE_AUTO: haier.FanAuto,
	FAN_MODE_LOW:  haier.FanLow,
	FAN_MODE_MED:  haier.FanMed,
	FAN_MODE_HIGH: haier.FanHigh,
}).MakeImmutable()

var hsu07Swings = bimap.New(map[string]haier.Swing{
	"off":    haier.SwingOff,
	"up":     haier.SwingUp,
	"down":   haier.SwingDown,
	"change": haier.SwingChg,
}).MakeImmutable()

var yrw02Modes = bimap.New(map[string]haier.YRW02Mode{
	HVAC_MODE_AUTO:     haier.YRW02ModeAuto,
	HVAC_MODE_COOL:     haier.YRW02ModeCool,
	HVAC_MODE_DRY:      haier.YRW02ModeDry,
	HVAC_MODE_HEAT:     haier.YRW02ModeHeat,
	HVAC_MODE_FAN_ONLY: haier.YRW02ModeFan,
}).MakeImmutable()

var yrw02Fans = bimap.New(map[string]haier.YRW02Fan{
	FAN_MODE_AUTO: haier.YRW02FanAuto,
	FAN_MODE_LOW:  haier.YRW02FanLow,
	FAN_MODE_MED:  haier.YRW02FanMed,
	FAN_MODE_HIGH: haier.YRW02FanHigh,
}).MakeImmutable()

var yrw02Swings = bimap.New(map[string]haier.YRW02Swing{
	"off":    haier.YRW02SwingOff,
	"top":    haier.YRW02SwingTop,
	"middle": haier.YRW02SwingMiddle,
	"bottom": haier.YRW02SwingBottom,
	"down":   haier.YRW02SwingDown,
	"auto":   haier.YRW02SwingAuto,
}).MakeImmutable()

var yrw02Turbos = bimap.New(map[string]haier.Turbo{
	"off":  haier.TurboOff,
	"low":  haier.TurboLow,
	"high": haier.TurboHigh,
}).MakeImmutable()

func OnOff2Str(on bool) string {
	if on {
		return PAYLOAD_ON
	}
	return PAYLOAD_OFF
}

func Str2OnOff(st string) (bool, error) {
	switch st {
	case PAYLOAD_ON, "on", "true", "1":
		return true, nil
	case PAYLOAD_OFF, "off", "false", "0":
		return false, nil
	default:
		return false, ErrBadSwitchPayload
	}
}
