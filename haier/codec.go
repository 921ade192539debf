// Package haier encodes, decodes and models the state of Haier A/C remotes:
// the HSU07-HEA03 (9 byte state) and the YR-W02 (14 byte state).
// Both share one pulse distance wire format and differ only in length,
// prefix and field layout.
package haier

import (
	"errors"
	"fmt"
	"time"

	"haier2mqtt/irprotocol"
)

const ProtocolHSU07 = "HAIER_AC"
const ProtocolYRW02 = "HAIER_AC_YRW02"

// Timing is the wire format. MinGap is an estimate, not a measured value.
var Timing = irprotocol.Timing{
	CarrierHz:   38_000,
	LeadMark:    3000 * time.Microsecond,
	LeadSpace:   3000 * time.Microsecond,
	HeaderMark:  3000 * time.Microsecond,
	HeaderSpace: 4300 * time.Microsecond,
	BitMark:     520 * time.Microsecond,
	OneSpace:    1650 * time.Microsecond,
	ZeroSpace:   650 * time.Microsecond,
	FooterMark:  520 * time.Microsecond,
	MinGap:      150000 * time.Microsecond,
	MSBFirst:    true,
}

var ErrShortState = errors.New("state shorter than the protocol requires")

// SumBytes is the 8 bit sum of data
func SumBytes(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// ValidChecksum reports whether state[length-1] is the sum of the bytes before it
func ValidChecksum(state []byte, length int) bool {
	if length < 2 || length > len(state) {
		return false
	}
	return state[length-1] == SumBytes(state[:length-1])
}

type variant struct {
	name   string
	length int
	prefix byte
}

var hsu07 = variant{name: ProtocolHSU07, length: StateLength, prefix: Prefix}
var yrw02 = variant{name: ProtocolYRW02, length: StateLengthYRW02, prefix: PrefixYRW02}

func (v variant) comply(state []byte) error {
	if state[0] != v.prefix {
		return fmt.Errorf("%s: %w", v.name, irprotocol.ErrPrefix)
	}
	if !ValidChecksum(state, len(state)) {
		return fmt.Errorf("%s: %w", v.name, irprotocol.ErrChecksum)
	}
	return nil
}

// Codec sends and decodes both remote variants
type Codec struct {
	ir *irprotocol.Codec
}

// NewCodec builds a codec. Use a copy of Timing to tune MinGap.
func NewCodec(timing irprotocol.Timing, tolerance irprotocol.Tolerance) *Codec {
	return &Codec{ir: irprotocol.NewCodec(timing, tolerance)}
}

// DefaultCodec uses Timing and irprotocol.DefaultTolerance
var DefaultCodec = NewCodec(Timing, irprotocol.DefaultTolerance)

// Encode returns the pulses of one transmission of data, which must hold
// at least a HSU07 state
func (c *Codec) Encode(data []byte) ([]irprotocol.Pulse, error) {
	if len(data) < StateLength {
		return nil, ErrShortState
	}
	return c.ir.Encode(data), nil
}

// SendHSU07 transmits data (at least StateLength bytes) repeat+1 times
func (c *Codec) SendHSU07(tx irprotocol.Transmitter, data []byte, repeat int) error {
	if len(data) < StateLength {
		return ErrShortState
	}
	return c.ir.Send(tx, data, repeat)
}

// SendYRW02 transmits data (at least StateLengthYRW02 bytes) with the same framing as SendHSU07
func (c *Codec) SendYRW02(tx irprotocol.Transmitter, data []byte, repeat int) error {
	if len(data) < StateLengthYRW02 {
		return ErrShortState
	}
	return c.SendHSU07(tx, data, repeat)
}

// DecodeHSU07 decodes nbits (normally Bits) from samples starting at offset.
// strict additionally requires nbits == Bits, the HSU07 prefix and a valid checksum.
func (c *Codec) DecodeHSU07(samples []time.Duration, offset int, nbits int, strict bool) (*irprotocol.Result, error) {
	if strict && nbits != Bits {
		return nil, irprotocol.ErrBitCount
	}
	state, err := c.ir.Decode(samples, offset, nbits)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := hsu07.comply(state); err != nil {
			return nil, err
		}
	}
	return &irprotocol.Result{
		Protocol: ProtocolHSU07,
		State:    state,
		Bits:     nbits,
	}, nil
}

// DecodeYRW02 runs the non-strict HSU07 decode, then applies the YR-W02
// prefix and checksum checks when strict.
func (c *Codec) DecodeYRW02(samples []time.Duration, offset int, nbits int, strict bool) (*irprotocol.Result, error) {
	if strict && nbits != BitsYRW02 {
		return nil, irprotocol.ErrBitCount
	}
	result, err := c.DecodeHSU07(samples, offset, nbits, false)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := yrw02.comply(result.State); err != nil {
			return nil, err
		}
	}
	result.Protocol = ProtocolYRW02
	return result, nil
}
