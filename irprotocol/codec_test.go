package irprotocol

import (
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

const us = time.Microsecond

var testTiming = Timing{
	CarrierHz:   38_000,
	LeadMark:    3000 * us,
	LeadSpace:   3000 * us,
	HeaderMark:  3000 * us,
	HeaderSpace: 4300 * us,
	BitMark:     520 * us,
	OneSpace:    1650 * us,
	ZeroSpace:   650 * us,
	FooterMark:  520 * us,
	MinGap:      150000 * us,
	MSBFirst:    true,
}

type recorder struct {
	frames   [][]Pulse
	carriers []int
}

func (r *recorder) Emit(pulses []Pulse, carrierHz int) error {
	r.frames = append(r.frames, pulses)
	r.carriers = append(r.carriers, carrierHz)
	return nil
}

type MatchTestData struct {
	Measured time.Duration
	Desired  time.Duration
	Expected bool
}

func TestMatch(t *testing.T) {
	c := qt.New(t)
	tol := Tolerance{Percent: 25}

	tests := []MatchTestData{
		{Measured: 1000 * us, Desired: 1000 * us, Expected: true},
		{Measured: 750 * us, Desired: 1000 * us, Expected: true},
		{Measured: 1250 * us, Desired: 1000 * us, Expected: true},
		{Measured: 749 * us, Desired: 1000 * us, Expected: false},
		{Measured: 1251 * us, Desired: 1000 * us, Expected: false},
		{Measured: 0, Desired: 1000 * us, Expected: false},
	}
	for _, data := range tests {
		name := fmt.Sprintf("Match:%v~%v", data.Measured, data.Desired)
		c.Run(name, func(c *qt.C) {
			c.Assert(tol.Match(data.Measured, data.Desired), qt.Equals, data.Expected)
		})
	}
}

func TestMatchAtLeast(t *testing.T) {
	c := qt.New(t)
	tol := Tolerance{Percent: 25}

	c.Assert(tol.MatchAtLeast(150000*us, 150000*us), qt.IsTrue)
	c.Assert(tol.MatchAtLeast(112500*us, 150000*us), qt.IsTrue)
	c.Assert(tol.MatchAtLeast(time.Second, 150000*us), qt.IsTrue)
	c.Assert(tol.MatchAtLeast(112499*us, 150000*us), qt.IsFalse)

	// a receiver that times out after 15ms reports at most 15ms
	tol.MaxGap = 15000 * us
	c.Assert(tol.MatchAtLeast(15000*us, 150000*us), qt.IsTrue)
	c.Assert(tol.MatchAtLeast(11250*us, 150000*us), qt.IsTrue)
	c.Assert(tol.MatchAtLeast(11249*us, 150000*us), qt.IsFalse)
	// shorter gaps are unaffected
	c.Assert(tol.MatchAtLeast(7499*us, 10000*us), qt.IsFalse)
	c.Assert(tol.MatchAtLeast(7500*us, 10000*us), qt.IsTrue)
}

func TestMatchMarkSpaceExcess(t *testing.T) {
	c := qt.New(t)
	tol := DefaultTolerance

	// marks are expected 50us long: 570us +/-25% = [427.5us, 712.5us]
	c.Assert(tol.MatchMark(520*us, 520*us), qt.IsTrue)
	c.Assert(tol.MatchMark(712*us, 520*us), qt.IsTrue)
	c.Assert(tol.MatchMark(713*us, 520*us), qt.IsFalse)
	c.Assert(tol.MatchMark(427*us, 520*us), qt.IsFalse)

	// spaces are expected 50us short: 600us +/-25% = [450us, 750us]
	c.Assert(tol.MatchSpace(650*us, 650*us), qt.IsTrue)
	c.Assert(tol.MatchSpace(450*us, 650*us), qt.IsTrue)
	c.Assert(tol.MatchSpace(751*us, 650*us), qt.IsFalse)
}

func byteSamples(b byte) []time.Duration {
	var samples []time.Duration
	for i := 7; i >= 0; i-- {
		samples = append(samples, 520*us)
		if b&(1<<i) != 0 {
			samples = append(samples, 1650*us)
		} else {
			samples = append(samples, 650*us)
		}
	}
	return samples
}

func TestMatchData(t *testing.T) {
	c := qt.New(t)
	tol := DefaultTolerance

	for _, b := range []byte{0x00, 0xFF, 0xA5, 0x5A, 0x01, 0x80} {
		c.Run(fmt.Sprintf("MSB:%02x", b), func(c *qt.C) {
			data, used, ok := tol.MatchData(byteSamples(b), 8, 520*us, 1650*us, 650*us, true)
			c.Assert(ok, qt.IsTrue)
			c.Assert(used, qt.Equals, 16)
			c.Assert(data, qt.Equals, uint64(b))
		})
	}

	c.Run("LSB", func(c *qt.C) {
		// MSB-first samples of 0x01 read LSB-first are 0x80
		data, _, ok := tol.MatchData(byteSamples(0x01), 8, 520*us, 1650*us, 650*us, false)
		c.Assert(ok, qt.IsTrue)
		c.Assert(data, qt.Equals, uint64(0x80))
	})

	c.Run("Short", func(c *qt.C) {
		_, _, ok := tol.MatchData(byteSamples(0xA5)[:15], 8, 520*us, 1650*us, 650*us, true)
		c.Assert(ok, qt.IsFalse)
	})

	c.Run("BadSpace", func(c *qt.C) {
		samples := byteSamples(0xA5)
		samples[5] = 1000 * us // neither a one nor a zero space
		_, used, ok := tol.MatchData(samples, 8, 520*us, 1650*us, 650*us, true)
		c.Assert(ok, qt.IsFalse)
		c.Assert(used, qt.Equals, 4)
	})

	c.Run("BadMark", func(c *qt.C) {
		samples := byteSamples(0xA5)
		samples[0] = 2000 * us
		_, _, ok := tol.MatchData(samples, 8, 520*us, 1650*us, 650*us, true)
		c.Assert(ok, qt.IsFalse)
	})
}

func TestEncode(t *testing.T) {
	c := qt.New(t)
	codec := NewCodec(testTiming, DefaultTolerance)

	pulses := codec.Encode([]byte{0x81})
	c.Assert(pulses, qt.HasLen, 2+8+1)
	c.Assert(pulses[0], qt.Equals, Pulse{3000 * us, 3000 * us})
	c.Assert(pulses[1], qt.Equals, Pulse{3000 * us, 4300 * us})
	c.Assert(pulses[2], qt.Equals, Pulse{520 * us, 1650 * us})
	for i := 3; i < 9; i++ {
		c.Assert(pulses[i], qt.Equals, Pulse{520 * us, 650 * us})
	}
	c.Assert(pulses[9], qt.Equals, Pulse{520 * us, 1650 * us})
	c.Assert(pulses[10], qt.Equals, Pulse{520 * us, 150000 * us})
}

func TestSendRepeats(t *testing.T) {
	c := qt.New(t)
	codec := NewCodec(testTiming, DefaultTolerance)
	tx := &recorder{}

	err := codec.Send(tx, []byte{1, 2, 3}, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(tx.frames, qt.HasLen, 3)
	c.Assert(tx.carriers, qt.DeepEquals, []int{38_000, 38_000, 38_000})
	c.Assert(tx.frames[2], qt.DeepEquals, tx.frames[0])
}

func TestDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)
	codec := NewCodec(testTiming, DefaultTolerance)

	data := []byte{0xA5, 0x91, 0x20, 0x00, 0x0C, 0x00, 0x00, 0x00, 0x62}
	samples := Flatten(codec.Encode(data))

	state, err := codec.Decode(samples, 0, 72)
	c.Assert(err, qt.IsNil)
	c.Assert(state, qt.DeepEquals, data)

	// a capture that stops right after the footer mark is still accepted
	state, err = codec.Decode(samples[:len(samples)-1], 0, 72)
	c.Assert(err, qt.IsNil)
	c.Assert(state, qt.DeepEquals, data)

	// leading samples are skipped with offset
	padded := append([]time.Duration{42 * time.Millisecond}, samples...)
	state, err = codec.Decode(padded, 1, 72)
	c.Assert(err, qt.IsNil)
	c.Assert(state, qt.DeepEquals, data)
}

func TestDecodeFailures(t *testing.T) {
	c := qt.New(t)
	codec := NewCodec(testTiming, DefaultTolerance)
	data := []byte{0xA5, 0x00, 0xFF}
	good := Flatten(codec.Encode(data))

	mutate := func(i int, d time.Duration) []time.Duration {
		s := append([]time.Duration(nil), good...)
		s[i] = d
		return s
	}

	tests := []struct {
		name    string
		samples []time.Duration
		nbits   int
		err     error
	}{
		{"BitCount", good, 23, ErrBitCount},
		{"ZeroBits", good, 0, ErrBitCount},
		{"TooShort", good[:10], 24, ErrTooShort},
		{"TooManyBits", good, 32, ErrTooShort},
		{"LeadMark", mutate(0, 1000*us), 24, ErrHeader},
		{"HeaderSpace", mutate(3, 3000*us), 24, ErrHeader},
		{"Data", mutate(9, 5000*us), 24, ErrData},
		{"FooterMark", mutate(len(good)-2, 3000*us), 24, ErrFooter},
		{"FooterGap", mutate(len(good)-1, 1000*us), 24, ErrFooter},
	}
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			state, err := codec.Decode(test.samples, 0, test.nbits)
			c.Assert(err, qt.ErrorIs, test.err)
			c.Assert(err, qt.ErrorIs, ErrFraming)
			c.Assert(state, qt.IsNil)
		})
	}
}
