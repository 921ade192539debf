// Package remo uses a Nature Remo on the local network as IR transmitter and receiver
package remo

import (
	"context"
	"slices"
	"time"

	"github.com/tenntenn/natureremo"

	"haier2mqtt/irprotocol"
)

// Format is the only signal format the local API understands
const Format = "us"

// Local is the part of the Nature Remo local API in use
type Local interface {
	Fetch(ctx context.Context) (*natureremo.IRSignal, error)
	Emit(ctx context.Context, signal *natureremo.IRSignal) error
}

type Config struct {
	Address string
	Timeout time.Duration
	// Local overrides the API client built from Address
	Local Local
}

type Device struct {
	Config
	last []int64
}

func New(config *Config) *Device {
	d := &Device{Config: *config}
	if d.Local == nil {
		d.Local = natureremo.NewLocalClient(config.Address)
	}
	if d.Timeout == 0 {
		d.Timeout = 5 * time.Second
	}
	return d
}

// Emit sends the pulse train. The device only accepts kHz resolution.
func (d *Device) Emit(pulses []irprotocol.Pulse, carrierHz int) error {
	samples := irprotocol.Flatten(pulses)
	data := make([]int64, len(samples))
	for i, s := range samples {
		data[i] = s.Microseconds()
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()
	return d.Local.Emit(ctx, &natureremo.IRSignal{
		Freq:   int64(carrierHz / 1000),
		Format: Format,
		Data:   data,
	})
}

// Capture fetches the last signal the device received. Returns nil if it is the
// same signal as in the previous call.
func (d *Device) Capture() ([]time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()
	signal, err := d.Local.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if signal == nil || len(signal.Data) == 0 || slices.Equal(signal.Data, d.last) {
		return nil, nil
	}
	d.last = signal.Data
	samples := make([]time.Duration, len(signal.Data))
	for i, v := range signal.Data {
		samples[i] = time.Duration(v) * time.Microsecond
	}
	return samples, nil
}
