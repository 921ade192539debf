package irprotocol

import "time"

// Tolerance describes how far a measured duration may stray from the
// expected one and still match.
type Tolerance struct {
	// Percent is the allowed deviation either side of the expected value
	Percent int
	// MarkExcess is how much longer receivers report marks than they really
	// were (and spaces correspondingly shorter)
	MarkExcess time.Duration
	// MaxGap is the receiver timeout. Gaps are never measured longer than
	// it, so MatchAtLeast expects no more. Zero means no cap.
	MaxGap time.Duration
}

// DefaultTolerance is the usual IR receiver convention: +/-25% with a 50us mark excess
var DefaultTolerance = Tolerance{
	Percent:    25,
	MarkExcess: 50 * time.Microsecond,
}

func (t Tolerance) low(desired time.Duration) time.Duration {
	return desired * time.Duration(100-t.Percent) / 100
}

func (t Tolerance) high(desired time.Duration) time.Duration {
	return desired * time.Duration(100+t.Percent) / 100
}

// Match reports whether measured is within Percent of desired
func (t Tolerance) Match(measured, desired time.Duration) bool {
	return measured >= t.low(desired) && measured <= t.high(desired)
}

// MatchAtLeast reports whether measured is no shorter than desired minus
// the tolerance. desired is capped at MaxGap when one is set.
func (t Tolerance) MatchAtLeast(measured, desired time.Duration) bool {
	if t.MaxGap > 0 && desired > t.MaxGap {
		desired = t.MaxGap
	}
	return measured >= t.low(desired)
}

// MatchMark matches a carrier-on duration
func (t Tolerance) MatchMark(measured, desired time.Duration) bool {
	return t.Match(measured, desired+t.MarkExcess)
}

// MatchSpace matches a carrier-off duration
func (t Tolerance) MatchSpace(measured, desired time.Duration) bool {
	return t.Match(measured, desired-t.MarkExcess)
}

// MatchData decodes nbits bits from samples, each bit being one mark of
// bitMark followed by a space of oneSpace (1) or zeroSpace (0).
// It returns the value, the number of samples consumed and whether every
// bit matched. Running out of samples is a failed match.
func (t Tolerance) MatchData(samples []time.Duration, nbits int, bitMark, oneSpace, zeroSpace time.Duration, msbFirst bool) (data uint64, used int, ok bool) {
	for i := 0; i < nbits; i++ {
		if used+1 >= len(samples) {
			return 0, used, false
		}
		mark, space := samples[used], samples[used+1]
		if !t.MatchMark(mark, bitMark) {
			return 0, used, false
		}
		var bit uint64
		switch {
		case t.MatchSpace(space, oneSpace):
			bit = 1
		case t.MatchSpace(space, zeroSpace):
			bit = 0
		default:
			return 0, used, false
		}
		if msbFirst {
			data = data<<1 | bit
		} else {
			data |= bit << i
		}
		used += 2
	}
	return data, used, true
}
