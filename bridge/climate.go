package bridge

import (
	"sort"
	"time"

	"haier2mqtt/bimap"
	"haier2mqtt/haier"
	"haier2mqtt/irprotocol"
)

// climate is the view of a remote state model the bridge works with
type climate interface {
	Protocol() string
	Bits() int

	Temp() int
	SetTemp(temp int)
	HvacMode() string
	SetHvacMode(mode string) error
	FanMode() string
	SetFanMode(mode string) error
	SwingMode() string
	SetSwingMode(mode string) error
	Sleep() bool
	SetSleep(on bool)
	Health() bool
	SetHealth(on bool)
	LastAction() string

	HvacModes() []string
	FanModes() []string
	SwingModes() []string

	Raw() []byte
	Load(raw []byte) error
	Send(codec *haier.Codec, tx irprotocol.Transmitter, repeat int) error
	Decode(codec *haier.Codec, samples []time.Duration) ([]byte, error)
	String() string
}

// turboClimate is implemented by remotes with a turbo button
type turboClimate interface {
	TurboMode() string
	SetTurboMode(mode string) error
	TurboModes() []string
}

func newClimate(variant string) (climate, error) {
	switch variant {
	case VARIANT_HSU07:
		return &hsu07{HSU07: haier.NewHSU07()}, nil
	case VARIANT_YRW02:
		return &yrw02{haier.NewYRW02()}, nil
	}
	return nil, ErrUnknownVariant
}

func names[V comparable](m *bimap.BiMap[string, V]) []string {
	keys := m.Keys()
	sort.Strings(keys)
	return keys
}

func name[V comparable](m *bimap.BiMap[string, V], v V) string {
	if n, ok := m.GetInverse(v); ok {
		return n
	}
	return UNKNOWN
}

// hsu07 has no power bit. The unit stays off from an Off command until
// the next On, whatever commands are sent in between.
type hsu07 struct {
	*haier.HSU07
	off bool
}

func (h *hsu07) Protocol() string { return haier.ProtocolHSU07 }
func (h *hsu07) Bits() int        { return haier.Bits }

func (h *hsu07) HvacMode() string {
	if h.off {
		return HVAC_MODE_OFF
	}
	return name(hsu07Modes, h.Mode())
}

func (h *hsu07) SetHvacMode(mode string) error {
	if mode == HVAC_MODE_OFF {
		h.SetCommand(haier.CmdOff)
		h.off = true
		return nil
	}
	m, ok := hsu07Modes.Get(mode)
	if !ok {
		return ErrUnknownHvacMode
	}
	h.SetMode(m)
	if h.off {
		h.SetCommand(haier.CmdOn)
		h.off = false
	}
	return nil
}

func (h *hsu07) FanMode() string { return name(hsu07Fans, h.Fan()) }

func (h *hsu07) SetFanMode(mode string) error {
	f, ok := hsu07Fans.Get(mode)
	if !ok {
		return ErrUnknownFanMode
	}
	h.SetFan(f)
	return nil
}

func (h *hsu07) SwingMode() string { return name(hsu07Swings, h.Swing()) }

func (h *hsu07) SetSwingMode(mode string) error {
	s, ok := hsu07Swings.Get(mode)
	if !ok {
		return ErrUnknownSwingMode
	}
	h.SetSwing(s)
	return nil
}

func (h *hsu07) LastAction() string { return h.Command().String() }

func (h *hsu07) HvacModes() []string {
	return append([]string{HVAC_MODE_OFF}, names(hsu07Modes)...)
}
func (h *hsu07) FanModes() []string   { return names(hsu07Fans) }
func (h *hsu07) SwingModes() []string { return names(hsu07Swings) }

func (h *hsu07) Load(raw []byte) error {
	if err := h.SetRaw(raw); err != nil {
		return err
	}
	switch h.Command() {
	case haier.CmdOff:
		h.off = true
	case haier.CmdOn:
		h.off = false
	}
	return nil
}

func (h *hsu07) Send(codec *haier.Codec, tx irprotocol.Transmitter, repeat int) error {
	return codec.SendHSU07(tx, h.Raw(), repeat)
}

func (h *hsu07) Decode(codec *haier.Codec, samples []time.Duration) ([]byte, error) {
	result, err := codec.DecodeHSU07(samples, 0, haier.Bits, true)
	if err != nil {
		return nil, err
	}
	return result.State, nil
}

type yrw02 struct {
	*haier.YRW02
}

func (y *yrw02) Protocol() string { return haier.ProtocolYRW02 }
func (y *yrw02) Bits() int        { return haier.BitsYRW02 }

func (y *yrw02) HvacMode() string {
	if !y.Power() {
		return HVAC_MODE_OFF
	}
	return name(yrw02Modes, y.Mode())
}

func (y *yrw02) SetHvacMode(mode string) error {
	if mode == HVAC_MODE_OFF {
		y.Off()
		return nil
	}
	m, ok := yrw02Modes.Get(mode)
	if !ok {
		return ErrUnknownHvacMode
	}
	if !y.Power() {
		y.On()
	}
	y.SetMode(m)
	return nil
}

func (y *yrw02) FanMode() string { return name(yrw02Fans, y.Fan()) }

func (y *yrw02) SetFanMode(mode string) error {
	f, ok := yrw02Fans.Get(mode)
	if !ok {
		return ErrUnknownFanMode
	}
	y.SetFan(f)
	return nil
}

func (y *yrw02) SwingMode() string { return name(yrw02Swings, y.Swing()) }

func (y *yrw02) SetSwingMode(mode string) error {
	s, ok := yrw02Swings.Get(mode)
	if !ok {
		return ErrUnknownSwingMode
	}
	y.SetSwing(s)
	return nil
}

func (y *yrw02) TurboMode() string { return name(yrw02Turbos, y.Turbo()) }

func (y *yrw02) SetTurboMode(mode string) error {
	t, ok := yrw02Turbos.Get(mode)
	if !ok {
		return ErrUnknownTurboMode
	}
	y.SetTurbo(t)
	return nil
}

func (y *yrw02) LastAction() string { return y.Button().String() }

func (y *yrw02) HvacModes() []string {
	return append([]string{HVAC_MODE_OFF}, names(yrw02Modes)...)
}
func (y *yrw02) FanModes() []string   { return names(yrw02Fans) }
func (y *yrw02) SwingModes() []string { return names(yrw02Swings) }
func (y *yrw02) TurboModes() []string { return names(yrw02Turbos) }

func (y *yrw02) Load(raw []byte) error { return y.SetRaw(raw) }

func (y *yrw02) Send(codec *haier.Codec, tx irprotocol.Transmitter, repeat int) error {
	return codec.SendYRW02(tx, y.Raw(), repeat)
}

func (y *yrw02) Decode(codec *haier.Codec, samples []time.Duration) ([]byte, error) {
	result, err := codec.DecodeYRW02(samples, 0, haier.BitsYRW02, true)
	if err != nil {
		return nil, err
	}
	return result.State, nil
}
