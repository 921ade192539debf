package haier

import (
	"fmt"
	"strings"
)

func (c Command) String() string {
	switch c {
	case CmdOff:
		return "Off"
	case CmdOn:
		return "On"
	case CmdMode:
		return "Mode"
	case CmdFan:
		return "Fan"
	case CmdTempUp:
		return "Temp Up"
	case CmdTempDown:
		return "Temp Down"
	case CmdSleep:
		return "Sleep"
	case CmdTimerSet:
		return "Timer Set"
	case CmdTimerCancel:
		return "Timer Cancel"
	case CmdHealth:
		return "Health"
	case CmdSwing:
		return "Swing"
	default:
		return "Unknown"
	}
}

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "AUTO"
	case ModeCool:
		return "COOL"
	case ModeHeat:
		return "HEAT"
	case ModeDry:
		return "DRY"
	case ModeFan:
		return "FAN"
	default:
		return "UNKNOWN"
	}
}

func (f Fan) String() string {
	switch f {
	case FanAuto:
		return "AUTO"
	case FanLow:
		return "LOW"
	case FanMed:
		return "MED"
	case FanHigh:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

func (s Swing) String() string {
	switch s {
	case SwingOff:
		return "Off"
	case SwingUp:
		return "Up"
	case SwingDown:
		return "Down"
	case SwingChg:
		return "Chg"
	default:
		return "Unknown"
	}
}

func (b Button) String() string {
	switch b {
	case ButtonPower:
		return "Power"
	case ButtonMode:
		return "Mode"
	case ButtonFan:
		return "Fan"
	case ButtonTempUp:
		return "Temp Up"
	case ButtonTempDown:
		return "Temp Down"
	case ButtonSleep:
		return "Sleep"
	case ButtonHealth:
		return "Health"
	case ButtonSwing:
		return "Swing"
	case ButtonTurbo:
		return "Turbo"
	default:
		return "Unknown"
	}
}

func (m YRW02Mode) String() string {
	switch m {
	case YRW02ModeAuto:
		return "Auto"
	case YRW02ModeCool:
		return "Cool"
	case YRW02ModeHeat:
		return "Heat"
	case YRW02ModeDry:
		return "Dry"
	case YRW02ModeFan:
		return "Fan"
	default:
		return "UNKNOWN"
	}
}

func (f YRW02Fan) String() string {
	switch f {
	case YRW02FanAuto:
		return "Auto"
	case YRW02FanHigh:
		return "High"
	case YRW02FanLow:
		return "Low"
	case YRW02FanMed:
		return "Med"
	default:
		return "Unknown"
	}
}

func (t Turbo) String() string {
	switch t {
	case TurboOff:
		return "Off"
	case TurboLow:
		return "Low"
	case TurboHigh:
		return "High"
	default:
		return "Unknown"
	}
}

func (s YRW02Swing) String() string {
	switch s {
	case YRW02SwingOff:
		return "Off"
	case YRW02SwingAuto:
		return "Auto"
	case YRW02SwingBottom:
		return "Bottom"
	case YRW02SwingDown:
		return "Down"
	case YRW02SwingTop:
		return "Top"
	case YRW02SwingMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// TimeString formats minutes as HH:MM
func TimeString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func timerString(minutes int) string {
	if minutes < 0 {
		return "Off"
	}
	return TimeString(minutes)
}

// String describes every field with its raw value and label. Debugging aid only.
func (ac *HSU07) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Command: %d (%s)", ac.Command(), ac.Command())
	fmt.Fprintf(&sb, ", Mode: %d (%s)", ac.Mode(), ac.Mode())
	fmt.Fprintf(&sb, ", Temp: %dC", ac.Temp())
	// wire value of the fan bits, which differs from the Fan constants
	fmt.Fprintf(&sb, ", Fan: %d (%s)", ac.state[5]&0x03, ac.Fan())
	fmt.Fprintf(&sb, ", Swing: %d (%s)", ac.Swing(), ac.Swing())
	fmt.Fprintf(&sb, ", Sleep: %s", onOff(ac.Sleep()))
	fmt.Fprintf(&sb, ", Health: %s", onOff(ac.Health()))
	fmt.Fprintf(&sb, ", Current Time: %s", TimeString(ac.CurrentTime()))
	fmt.Fprintf(&sb, ", On Timer: %s", timerString(ac.OnTimer()))
	fmt.Fprintf(&sb, ", Off Timer: %s", timerString(ac.OffTimer()))
	return sb.String()
}

// String describes every field with its raw value and label. Debugging aid only.
func (ac *YRW02) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Power: %s", onOff(ac.Power()))
	fmt.Fprintf(&sb, ", Button: %d (%s)", ac.Button(), ac.Button())
	fmt.Fprintf(&sb, ", Mode: %d (%s)", ac.Mode(), ac.Mode())
	fmt.Fprintf(&sb, ", Temp: %dC", ac.Temp())
	fmt.Fprintf(&sb, ", Fan: %d (%s)", ac.Fan(), ac.Fan())
	fmt.Fprintf(&sb, ", Turbo: %d (%s)", ac.Turbo(), ac.Turbo())
	fmt.Fprintf(&sb, ", Swing: %d (%s)", ac.Swing(), ac.Swing())
	fmt.Fprintf(&sb, ", Sleep: %s", onOff(ac.Sleep()))
	fmt.Fprintf(&sb, ", Health: %s", onOff(ac.Health()))
	return sb.String()
}
