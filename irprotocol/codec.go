// Package irprotocol implements pulse distance coding of byte frames as used
// by most consumer IR remotes: a header, one fixed mark per bit followed by
// a short (0) or long (1) space, and a footer mark with a trailing gap.
package irprotocol

import (
	"errors"
	"fmt"
	"time"
)

// Pulse is one carrier-on period followed by one carrier-off period
type Pulse struct {
	Mark  time.Duration
	Space time.Duration
}

// Transmitter emits a pulse train modulated at carrierHz
type Transmitter interface {
	Emit(pulses []Pulse, carrierHz int) error
}

// CaptureSource supplies one captured transmission as alternating mark/space durations
type CaptureSource interface {
	Capture() ([]time.Duration, error)
}

// Timing holds the fixed durations of a protocol's wire format
type Timing struct {
	CarrierHz int

	// optional pair sent before the header. Zero LeadMark disables it.
	LeadMark  time.Duration
	LeadSpace time.Duration

	HeaderMark  time.Duration
	HeaderSpace time.Duration

	BitMark   time.Duration
	OneSpace  time.Duration
	ZeroSpace time.Duration

	FooterMark time.Duration
	MinGap     time.Duration

	MSBFirst bool
}

func (t *Timing) headerSamples() int {
	if t.LeadMark > 0 {
		return 4
	}
	return 2
}

// Result is a successfully decoded frame
type Result struct {
	Protocol string
	State    []byte
	Bits     int
}

var ErrFraming = errors.New("IR framing mismatch")
var ErrCompliance = errors.New("IR frame not compliant")

var ErrBitCount = fmt.Errorf("%w: unexpected bit count", ErrFraming)
var ErrTooShort = fmt.Errorf("%w: not enough samples", ErrFraming)
var ErrHeader = fmt.Errorf("%w: header", ErrFraming)
var ErrData = fmt.Errorf("%w: data", ErrFraming)
var ErrFooter = fmt.Errorf("%w: footer", ErrFraming)

var ErrPrefix = fmt.Errorf("%w: wrong prefix", ErrCompliance)
var ErrChecksum = fmt.Errorf("%w: bad checksum", ErrCompliance)

// Codec encodes and decodes frames for one Timing
type Codec struct {
	Timing    Timing
	Tolerance Tolerance
}

// NewCodec returns a codec matching with the given tolerance
func NewCodec(timing Timing, tolerance Tolerance) *Codec {
	return &Codec{
		Timing:    timing,
		Tolerance: tolerance,
	}
}

// Encode converts data to the pulse train of a single transmission
func (c *Codec) Encode(data []byte) []Pulse {
	t := &c.Timing
	pulses := make([]Pulse, 0, len(data)*8+3)
	if t.LeadMark > 0 {
		pulses = append(pulses, Pulse{t.LeadMark, t.LeadSpace})
	}
	pulses = append(pulses, Pulse{t.HeaderMark, t.HeaderSpace})
	for _, b := range data {
		for i := 0; i < 8; i++ {
			var mask byte
			if t.MSBFirst {
				mask = 0x80 >> i
			} else {
				mask = 1 << i
			}
			if b&mask == 0 {
				pulses = append(pulses, Pulse{t.BitMark, t.ZeroSpace})
			} else {
				pulses = append(pulses, Pulse{t.BitMark, t.OneSpace})
			}
		}
	}
	return append(pulses, Pulse{t.FooterMark, t.MinGap})
}

// Send emits data once plus repeat more times
func (c *Codec) Send(tx Transmitter, data []byte, repeat int) error {
	pulses := c.Encode(data)
	for r := 0; r <= repeat; r++ {
		if err := tx.Emit(pulses, c.Timing.CarrierHz); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads nbits of data from samples starting at offset.
// No partial result is returned on failure.
func (c *Codec) Decode(samples []time.Duration, offset int, nbits int) ([]byte, error) {
	t := &c.Timing
	tol := c.Tolerance

	if nbits <= 0 || nbits%8 != 0 {
		return nil, ErrBitCount
	}
	if offset < 0 || len(samples)-offset < t.headerSamples()+2*nbits+1 {
		return nil, ErrTooShort
	}

	if t.LeadMark > 0 {
		if !tol.MatchMark(samples[offset], t.LeadMark) || !tol.MatchSpace(samples[offset+1], t.LeadSpace) {
			return nil, ErrHeader
		}
		offset += 2
	}
	if !tol.MatchMark(samples[offset], t.HeaderMark) || !tol.MatchSpace(samples[offset+1], t.HeaderSpace) {
		return nil, ErrHeader
	}
	offset += 2

	state := make([]byte, nbits/8)
	for i := range state {
		data, used, ok := tol.MatchData(samples[offset:], 8, t.BitMark, t.OneSpace, t.ZeroSpace, t.MSBFirst)
		if !ok {
			return nil, fmt.Errorf("%w: byte %d", ErrData, i)
		}
		offset += used
		state[i] = byte(data)
	}

	if !tol.MatchMark(samples[offset], t.FooterMark) {
		return nil, ErrFooter
	}
	offset++
	// end of capture is an acceptable stand-in for the trailing gap
	if offset < len(samples) && !tol.MatchAtLeast(samples[offset], t.MinGap) {
		return nil, ErrFooter
	}
	return state, nil
}

// Flatten turns pulses into alternating mark/space durations, the shape a capture comes in
func Flatten(pulses []Pulse) []time.Duration {
	samples := make([]time.Duration, 0, len(pulses)*2)
	for _, p := range pulses {
		samples = append(samples, p.Mark, p.Space)
	}
	return samples
}
