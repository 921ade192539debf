package haier

// YRW02 is the state of a Haier YR-W02 remote (HSU-09HMC203 unit).
//
// Layout:
//
//	byte 0   prefix 0xA6
//	byte 1   temp-16 (7-4) | swing (3-0)
//	byte 3   health (1)
//	byte 4   power (6)
//	byte 5   fan (7-4)
//	byte 6   turbo (7-6)
//	byte 7   mode (7-4)
//	byte 8   sleep (7)
//	byte 12  button (3-0)
//	byte 13  checksum
type YRW02 struct {
	state [StateLengthYRW02]byte
}

func NewYRW02() *YRW02 {
	ac := &YRW02{}
	ac.Reset()
	return ac
}

// Reset restores power-on defaults through the normal setters
func (ac *YRW02) Reset() {
	ac.state = [StateLengthYRW02]byte{}
	ac.state[0] = PrefixYRW02

	ac.SetTemp(DefaultTemp)
	ac.SetHealth(true)
	ac.SetTurbo(TurboOff)
	ac.SetSleep(false)
	ac.SetFan(YRW02FanAuto)
	ac.SetSwing(YRW02SwingOff)
	ac.SetMode(YRW02ModeAuto)
	ac.SetPower(true)
}

func (ac *YRW02) checksum() {
	ac.state[StateLengthYRW02-1] = SumBytes(ac.state[:StateLengthYRW02-1])
}

// Raw finalizes the checksum and returns a copy of the state ready to send
func (ac *YRW02) Raw() []byte {
	ac.checksum()
	raw := make([]byte, StateLengthYRW02)
	copy(raw, ac.state[:])
	return raw
}

func (ac *YRW02) SetRaw(raw []byte) error {
	if len(raw) < StateLengthYRW02 {
		return ErrShortState
	}
	copy(ac.state[:], raw[:StateLengthYRW02])
	return nil
}

func (ac *YRW02) Button() Button {
	return Button(ac.state[12] & 0x0F)
}

// SetButton records the last button pressed. Unknown buttons are ignored.
func (ac *YRW02) SetButton(button Button) {
	switch button {
	case ButtonTempUp, ButtonTempDown, ButtonSwing, ButtonFan, ButtonPower,
		ButtonMode, ButtonHealth, ButtonTurbo, ButtonSleep:
		ac.state[12] = ac.state[12]&0xF0 | byte(button)
	}
}

func (ac *YRW02) Mode() YRW02Mode {
	return YRW02Mode(ac.state[7] >> 4)
}

// SetMode stores mode, substituting YRW02ModeAuto for anything unknown
func (ac *YRW02) SetMode(mode YRW02Mode) {
	ac.SetButton(ButtonMode)
	switch mode {
	case YRW02ModeAuto, YRW02ModeCool, YRW02ModeDry, YRW02ModeHeat, YRW02ModeFan:
	default:
		mode = YRW02ModeAuto
	}
	ac.state[7] = ac.state[7]&0x0F | byte(mode)<<4
}

func (ac *YRW02) Temp() int {
	return int(ac.state[1]>>4) + MinTemp
}

// SetTemp clamps celsius to [MinTemp, MaxTemp]. An actual change records
// ButtonTempUp or ButtonTempDown.
func (ac *YRW02) SetTemp(celsius int) {
	temp := clampTemp(celsius)
	old := ac.Temp()
	if old == temp {
		return
	}
	if old > temp {
		ac.SetButton(ButtonTempDown)
	} else {
		ac.SetButton(ButtonTempUp)
	}
	ac.state[1] = ac.state[1]&0x0F | byte(temp-MinTemp)<<4
}

func (ac *YRW02) Health() bool {
	return ac.state[3]&0x02 != 0
}

func (ac *YRW02) SetHealth(on bool) {
	ac.SetButton(ButtonHealth)
	ac.state[3] = setBits(ac.state[3], 0x02, on)
}

func (ac *YRW02) Power() bool {
	return ac.state[4]&yrw02Power != 0
}

func (ac *YRW02) SetPower(on bool) {
	ac.SetButton(ButtonPower)
	ac.state[4] = setBits(ac.state[4], yrw02Power, on)
}

func (ac *YRW02) On() {
	ac.SetPower(true)
}

func (ac *YRW02) Off() {
	ac.SetPower(false)
}

func (ac *YRW02) Sleep() bool {
	return ac.state[8]&yrw02Sleep != 0
}

func (ac *YRW02) SetSleep(on bool) {
	ac.SetButton(ButtonSleep)
	ac.state[8] = setBits(ac.state[8], yrw02Sleep, on)
}

func (ac *YRW02) Turbo() Turbo {
	return Turbo(ac.state[6] >> 6)
}

// SetTurbo ignores unknown levels
func (ac *YRW02) SetTurbo(turbo Turbo) {
	switch turbo {
	case TurboOff, TurboLow, TurboHigh:
		ac.state[6] = ac.state[6]&0x3F | byte(turbo)<<6
		ac.SetButton(ButtonTurbo)
	}
}

func (ac *YRW02) Fan() YRW02Fan {
	return YRW02Fan(ac.state[5] >> 4)
}

// SetFan ignores unknown speeds
func (ac *YRW02) SetFan(speed YRW02Fan) {
	switch speed {
	case YRW02FanLow, YRW02FanMed, YRW02FanHigh, YRW02FanAuto:
		ac.state[5] = ac.state[5]&0x0F | byte(speed)<<4
		ac.SetButton(ButtonFan)
	}
}

func (ac *YRW02) Swing() YRW02Swing {
	return YRW02Swing(ac.state[1] & 0x0F)
}

// SetSwing ignores unknown positions. Middle is swapped for Bottom in heat
// mode and Bottom for Middle outside it.
func (ac *YRW02) SetSwing(swing YRW02Swing) {
	switch swing {
	case YRW02SwingOff, YRW02SwingAuto, YRW02SwingTop, YRW02SwingMiddle,
		YRW02SwingBottom, YRW02SwingDown:
		ac.SetButton(ButtonSwing)
	default:
		return
	}

	heat := ac.Mode() == YRW02ModeHeat
	if swing == YRW02SwingMiddle && heat {
		swing = YRW02SwingBottom
	} else if swing == YRW02SwingBottom && !heat {
		swing = YRW02SwingMiddle
	}
	ac.state[1] = ac.state[1]&0xF0 | byte(swing)
}
