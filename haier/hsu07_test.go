package haier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSU07Reset(t *testing.T) {
	ac := NewHSU07()

	assert.Equal(t, []byte{0xA5, 0x91, 0x20, 0x00, 0x00, 0x00, 0x00, 0x00, 0x56}, ac.Raw())
	assert.Equal(t, CmdOn, ac.Command())
	assert.Equal(t, DefaultTemp, ac.Temp())
	assert.Equal(t, FanAuto, ac.Fan())
	assert.Equal(t, ModeAuto, ac.Mode())
	assert.Equal(t, SwingOff, ac.Swing())
	assert.False(t, ac.Sleep())
	assert.False(t, ac.Health())
	assert.Equal(t, -1, ac.OnTimer())
	assert.Equal(t, -1, ac.OffTimer())

	assert.Equal(t,
		"Command: 1 (On), Mode: 0 (AUTO), Temp: 25C, Fan: 0 (AUTO), Swing: 0 (Off), "+
			"Sleep: Off, Health: Off, Current Time: 00:00, On Timer: Off, Off Timer: Off",
		ac.String())
}

func TestHSU07RawIsFinalizedCopy(t *testing.T) {
	ac := NewHSU07()
	ac.SetTemp(18)

	raw := ac.Raw()
	assert.True(t, ValidChecksum(raw, StateLength))
	assert.Equal(t, SumBytes(raw[:8]), raw[8])

	raw[1] = 0
	assert.Equal(t, 18, ac.Temp())
}

func TestHSU07SetRaw(t *testing.T) {
	ac := NewHSU07()

	err := ac.SetRaw([]byte{0xA5, 0x01})
	require.ErrorIs(t, err, ErrShortState)
	assert.Equal(t, DefaultTemp, ac.Temp())

	raw := []byte{0xA5, 0x66, 0x60, 0x00, 0x20, 0x02, 0x00, 0x60, 0x00}
	raw[8] = SumBytes(raw[:8])
	require.NoError(t, ac.SetRaw(raw))
	assert.Equal(t, raw, ac.Raw())
	assert.Equal(t, 22, ac.Temp())
	assert.Equal(t, CmdTempUp, ac.Command())
	assert.Equal(t, SwingUp, ac.Swing())
	assert.True(t, ac.Health())
	assert.True(t, ac.Sleep())
	// sleep shares bit 6 with the mode field
	assert.Equal(t, ModeHeat, ac.Mode())
	assert.Equal(t, FanHigh, ac.Fan())
}

func TestHSU07Temp(t *testing.T) {
	ac := NewHSU07()

	ac.SetTemp(MinTemp - 10)
	assert.Equal(t, MinTemp, ac.Temp())
	ac.SetTemp(-5)
	assert.Equal(t, MinTemp, ac.Temp())
	ac.SetTemp(MaxTemp + 1)
	assert.Equal(t, MaxTemp, ac.Temp())
	for temp := MinTemp; temp <= MaxTemp; temp++ {
		ac.SetTemp(temp)
		assert.Equal(t, temp, ac.Temp())
	}
}

func TestHSU07TempDirection(t *testing.T) {
	ac := NewHSU07()

	ac.SetTemp(20)
	assert.Equal(t, CmdTempDown, ac.Command())
	ac.SetTemp(22)
	assert.Equal(t, CmdTempUp, ac.Command())

	ac.SetCommand(CmdMode)
	ac.SetTemp(22)
	assert.Equal(t, CmdMode, ac.Command())

	// clamped to the current value is also a no-op
	ac.SetTemp(MaxTemp)
	ac.SetCommand(CmdSleep)
	ac.SetTemp(MaxTemp + 5)
	assert.Equal(t, CmdSleep, ac.Command())
}

func TestHSU07Command(t *testing.T) {
	ac := NewHSU07()
	temp := ac.Temp()

	for _, cmd := range []Command{CmdOff, CmdOn, CmdMode, CmdFan, CmdTempUp, CmdTempDown,
		CmdSleep, CmdTimerSet, CmdTimerCancel, CmdHealth, CmdSwing} {
		ac.SetCommand(cmd)
		assert.Equal(t, cmd, ac.Command())
	}

	ac.SetCommand(CmdHealth)
	ac.SetCommand(Command(0x5))
	assert.Equal(t, CmdHealth, ac.Command())
	ac.SetCommand(Command(0xFF))
	assert.Equal(t, CmdHealth, ac.Command())
	assert.Equal(t, temp, ac.Temp())
}

func TestHSU07Mode(t *testing.T) {
	ac := NewHSU07()

	for _, mode := range []Mode{ModeCool, ModeDry, ModeHeat, ModeFan, ModeAuto} {
		ac.SetCommand(CmdOn)
		ac.SetMode(mode)
		assert.Equal(t, mode, ac.Mode())
		assert.Equal(t, CmdMode, ac.Command())
	}

	ac.SetMode(ModeHeat)
	ac.SetCommand(CmdOn)
	ac.SetMode(Mode(7))
	assert.Equal(t, ModeAuto, ac.Mode())
	assert.Equal(t, CmdMode, ac.Command())
}

func TestHSU07Fan(t *testing.T) {
	ac := NewHSU07()

	wire := map[Fan]byte{FanAuto: 0, FanMed: 1, FanHigh: 2, FanLow: 3}
	for _, fan := range []Fan{FanLow, FanMed, FanHigh, FanAuto} {
		ac.SetFan(fan)
		assert.Equal(t, fan, ac.Fan())
		assert.Equal(t, wire[fan], ac.Raw()[5]&0x03)
	}

	ac.SetFan(FanHigh)
	ac.SetCommand(CmdOn)
	ac.SetFan(FanHigh)
	assert.Equal(t, CmdOn, ac.Command())

	ac.SetFan(Fan(9))
	assert.Equal(t, FanAuto, ac.Fan())
	assert.Equal(t, CmdFan, ac.Command())
}

func TestHSU07Swing(t *testing.T) {
	ac := NewHSU07()

	ac.SetSwing(SwingUp)
	assert.Equal(t, SwingUp, ac.Swing())
	assert.Equal(t, CmdSwing, ac.Command())
	assert.Equal(t, byte(0x20), ac.Raw()[2]&0x20)

	ac.SetCommand(CmdMode)
	ac.SetSwing(Swing(5))
	assert.Equal(t, SwingUp, ac.Swing())
	assert.Equal(t, CmdMode, ac.Command())

	ac.SetSwing(SwingUp)
	assert.Equal(t, CmdMode, ac.Command())

	for _, swing := range []Swing{SwingDown, SwingChg, SwingOff} {
		ac.SetSwing(swing)
		assert.Equal(t, swing, ac.Swing())
	}
}

func TestHSU07Flags(t *testing.T) {
	ac := NewHSU07()

	ac.SetHealth(true)
	assert.True(t, ac.Health())
	assert.Equal(t, CmdHealth, ac.Command())
	ac.SetSleep(true)
	assert.True(t, ac.Sleep())
	assert.Equal(t, CmdSleep, ac.Command())

	// timers share bytes 4 and 7 with health and sleep
	ac.SetOffTimer(23 * 60)
	ac.SetOnTimer(60)
	assert.True(t, ac.Health())
	assert.True(t, ac.Sleep())

	ac.SetHealth(false)
	ac.SetSleep(false)
	assert.False(t, ac.Health())
	assert.False(t, ac.Sleep())
	assert.Equal(t, 23*60, ac.OffTimer())
}

func TestHSU07Timers(t *testing.T) {
	ac := NewHSU07()

	ac.SetOnTimer(90)
	assert.Equal(t, 90, ac.OnTimer())
	assert.Equal(t, -1, ac.OffTimer())
	assert.Equal(t, CmdTimerSet, ac.Command())
	assert.NotZero(t, ac.Raw()[3]&0x80)

	ac.SetOffTimer(120)
	assert.Equal(t, 120, ac.OffTimer())
	assert.NotZero(t, ac.Raw()[3]&0x40)

	ac.CancelTimers()
	assert.Equal(t, -1, ac.OnTimer())
	assert.Equal(t, -1, ac.OffTimer())
	assert.Equal(t, CmdTimerCancel, ac.Command())
	assert.Zero(t, ac.Raw()[3]&0xC0)

	ac.SetOnTimer(5000)
	assert.Equal(t, MaxTime, ac.OnTimer())
	ac.SetOnTimer(-20)
	assert.Equal(t, 0, ac.OnTimer())
}

func TestHSU07CurrentTime(t *testing.T) {
	ac := NewHSU07()
	ac.SetSwing(SwingChg)
	ac.SetCommand(CmdOn)

	ac.SetCurrentTime(13*60 + 45)
	assert.Equal(t, 13*60+45, ac.CurrentTime())
	assert.Equal(t, SwingChg, ac.Swing())
	assert.Equal(t, CmdOn, ac.Command())
	assert.Equal(t, byte(0x20), ac.Raw()[2]&0x20)
	assert.Contains(t, ac.String(), "Current Time: 13:45")

	ac.SetOnTimer(90)
	assert.Equal(t, 13*60+45, ac.CurrentTime())
	assert.Contains(t, ac.String(), "On Timer: 01:30")
}

func TestHSU07Scenario(t *testing.T) {
	ac := NewHSU07()
	ac.SetTemp(25)
	ac.SetFan(FanHigh)

	raw := ac.Raw()
	assert.Equal(t, SumBytes(raw[:8]), raw[8])
	assert.Contains(t, ac.String(), "Temp: 25C")
	assert.Contains(t, ac.String(), "Fan: 2 (MAX)")
	assert.Contains(t, ac.String(), "Command: 3 (Fan)")
}

func TestValidChecksum(t *testing.T) {
	state := []byte{0xA5, 0x91, 0x20, 0x00, 0x00, 0x00, 0x00, 0x00, 0x56}
	assert.True(t, ValidChecksum(state, 9))

	state[8] = 0x57
	assert.False(t, ValidChecksum(state, 9))

	assert.True(t, ValidChecksum([]byte{0x10, 0x10}, 2))
	assert.True(t, ValidChecksum([]byte{0xFF, 0x02, 0x01}, 3))
	assert.False(t, ValidChecksum([]byte{0x10}, 1))
	assert.False(t, ValidChecksum(nil, 0))
	assert.False(t, ValidChecksum([]byte{0x10, 0x10}, 5))
}
