package haier

// HSU07 is the state of a Haier HSU07-HEA03 remote.
//
// Layout:
//
//	byte 0  prefix 0xA5
//	byte 1  temp-16 (7-4) | command (3-0)
//	byte 2  swing (7-6) | 0x20 | current time hours (4-0)
//	byte 3  on timer active (7) | off timer active (6) | current time minutes (5-0)
//	byte 4  health (5) | off timer hours (4-0)
//	byte 5  off timer minutes (5-0) | fan (1-0)
//	byte 6  on timer hours (4-0)
//	byte 7  mode (7-5) | sleep (6) | on timer minutes (5-0)
//	byte 8  checksum
//
// Some fields share bits; writers only touch their own masks, as the remote does.
// The checksum is refreshed by Raw, not by the setters.
type HSU07 struct {
	state [StateLength]byte
}

// NewHSU07 returns a remote state reset to defaults
func NewHSU07() *HSU07 {
	ac := &HSU07{}
	ac.Reset()
	return ac
}

// Reset restores power-on defaults through the normal setters
func (ac *HSU07) Reset() {
	ac.state = [StateLength]byte{}
	ac.state[0] = Prefix
	ac.state[2] = 0x20

	ac.SetTemp(DefaultTemp)
	ac.SetFan(FanAuto)
	ac.SetMode(ModeAuto)
	ac.SetCommand(CmdOn)
}

func (ac *HSU07) checksum() {
	ac.state[StateLength-1] = SumBytes(ac.state[:StateLength-1])
}

// Raw finalizes the checksum and returns a copy of the state ready to send
func (ac *HSU07) Raw() []byte {
	ac.checksum()
	raw := make([]byte, StateLength)
	copy(raw, ac.state[:])
	return raw
}

// SetRaw loads a full state, e.g. one just decoded
func (ac *HSU07) SetRaw(raw []byte) error {
	if len(raw) < StateLength {
		return ErrShortState
	}
	copy(ac.state[:], raw[:StateLength])
	return nil
}

func (ac *HSU07) Command() Command {
	return Command(ac.state[1] & 0x0F)
}

// SetCommand records the last action. Unknown commands are ignored.
func (ac *HSU07) SetCommand(cmd Command) {
	switch cmd {
	case CmdOff, CmdOn, CmdMode, CmdFan, CmdTempUp, CmdTempDown,
		CmdSleep, CmdTimerSet, CmdTimerCancel, CmdHealth, CmdSwing:
		ac.state[1] = ac.state[1]&0xF0 | byte(cmd)
	}
}

// Temp returns the target temperature in Celsius
func (ac *HSU07) Temp() int {
	return int(ac.state[1]>>4) + MinTemp
}

// SetTemp clamps celsius to [MinTemp, MaxTemp]. An actual change records
// CmdTempUp or CmdTempDown.
func (ac *HSU07) SetTemp(celsius int) {
	temp := clampTemp(celsius)
	old := ac.Temp()
	if old == temp {
		return
	}
	if old > temp {
		ac.SetCommand(CmdTempDown)
	} else {
		ac.SetCommand(CmdTempUp)
	}
	ac.state[1] = ac.state[1]&0x0F | byte(temp-MinTemp)<<4
}

func (ac *HSU07) Fan() Fan {
	switch ac.state[5] & 0x03 {
	case 1:
		return FanMed
	case 2:
		return FanHigh
	case 3:
		return FanLow
	default:
		return FanAuto
	}
}

// SetFan stores speed, substituting FanAuto for anything unknown
func (ac *HSU07) SetFan(speed Fan) {
	var raw byte
	switch speed {
	case FanLow:
		raw = 3
	case FanMed:
		raw = 1
	case FanHigh:
		raw = 2
	default:
		raw = 0
	}
	if speed != ac.Fan() {
		ac.SetCommand(CmdFan)
	}
	ac.state[5] = ac.state[5]&0xFC | raw
}

func (ac *HSU07) Mode() Mode {
	return Mode(ac.state[7] >> 5)
}

// SetMode stores mode, substituting ModeAuto for anything unknown
func (ac *HSU07) SetMode(mode Mode) {
	ac.SetCommand(CmdMode)
	if mode > ModeFan {
		mode = ModeAuto
	}
	ac.state[7] = ac.state[7]&0x1F | byte(mode)<<5
}

func (ac *HSU07) Swing() Swing {
	return Swing(ac.state[2] >> 6)
}

// SetSwing ignores unknown positions and no-op changes
func (ac *HSU07) SetSwing(swing Swing) {
	switch swing {
	case SwingOff, SwingUp, SwingDown, SwingChg:
	default:
		return
	}
	if swing == ac.Swing() {
		return
	}
	ac.SetCommand(CmdSwing)
	ac.state[2] = ac.state[2]&0x3F | byte(swing)<<6
}

func (ac *HSU07) Health() bool {
	return ac.state[4]&0x20 != 0
}

func (ac *HSU07) SetHealth(on bool) {
	ac.SetCommand(CmdHealth)
	ac.state[4] = setBits(ac.state[4], 0x20, on)
}

func (ac *HSU07) Sleep() bool {
	return ac.state[7]&0x40 != 0
}

func (ac *HSU07) SetSleep(on bool) {
	ac.SetCommand(CmdSleep)
	ac.state[7] = setBits(ac.state[7], 0x40, on)
}

// OnTimer returns the on timer in minutes, or -1 when it is not active
func (ac *HSU07) OnTimer() int {
	if ac.state[3]&0x80 == 0 {
		return -1
	}
	return ac.getTime(6)
}

// OffTimer returns the off timer in minutes, or -1 when it is not active
func (ac *HSU07) OffTimer() int {
	if ac.state[3]&0x40 == 0 {
		return -1
	}
	return ac.getTime(4)
}

// SetOnTimer arms the on timer. Minutes are clamped to [0, MaxTime].
func (ac *HSU07) SetOnTimer(minutes int) {
	ac.SetCommand(CmdTimerSet)
	ac.state[3] |= 0x80
	ac.setTime(6, minutes)
}

// SetOffTimer arms the off timer. Minutes are clamped to [0, MaxTime].
func (ac *HSU07) SetOffTimer(minutes int) {
	ac.SetCommand(CmdTimerSet)
	ac.state[3] |= 0x40
	ac.setTime(4, minutes)
}

// CancelTimers disarms both timers, leaving their stored times in place
func (ac *HSU07) CancelTimers() {
	ac.SetCommand(CmdTimerCancel)
	ac.state[3] &= 0x3F
}

// CurrentTime returns the remote's clock in minutes past midnight
func (ac *HSU07) CurrentTime() int {
	return ac.getTime(2)
}

func (ac *HSU07) SetCurrentTime(minutes int) {
	ac.setTime(2, minutes)
}

// getTime reads hours from the low 5 bits of state[i] and minutes from the low 6 bits of state[i+1]
func (ac *HSU07) getTime(i int) int {
	return int(ac.state[i]&0x1F)*60 + int(ac.state[i+1]&0x3F)
}

func (ac *HSU07) setTime(i int, minutes int) {
	if minutes < 0 {
		minutes = 0
	} else if minutes > MaxTime {
		minutes = MaxTime
	}
	ac.state[i] = ac.state[i]&0xE0 | byte(minutes/60)
	ac.state[i+1] = ac.state[i+1]&0xC0 | byte(minutes%60)
}

func clampTemp(celsius int) int {
	if celsius < MinTemp {
		return MinTemp
	}
	if celsius > MaxTemp {
		return MaxTemp
	}
	return celsius
}

func setBits(b byte, mask byte, on bool) byte {
	if on {
		return b | mask
	}
	return b &^ mask
}
