// Package transceiver drives an IR transmitter/receiver module that exposes its
// sample buffers as modbus holding registers
package transceiver

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"haier2mqtt/irprotocol"
	"haier2mqtt/modbus"
	"haier2mqtt/watcher"
)

// Modbus is the modbus line the module hangs from
type Modbus interface {
	ReadRegister(slaveID byte, address uint16, quantity uint16) (results []uint16, err error)
	WriteRegister(slaveID byte, address uint16, value uint16) (results []uint16, err error)
	WriteRegisters(slaveID byte, address uint16, values []uint16) error
}

type Config struct {
	SlaveID byte
	Modbus  Modbus
}

type Transceiver struct {
	Config
	rx      *watcher.Watcher
	lock    sync.Mutex
	primed  bool
	pending []time.Duration
	// OnCapture is called from Poll for every new capture
	OnCapture func(samples []time.Duration)
}

var ErrFrameTooLong = errors.New("Frame does not fit in the transmit buffer")
var ErrBadSampleCount = errors.New("Receive buffer reports an invalid sample count")

func New(config *Config) *Transceiver {
	t := &Transceiver{
		Config: *config,
		rx: watcher.New(&watcher.Config{
			Address:  REG_RX_SEQ,
			Quantity: rxWindow,
			SlaveID:  config.SlaveID,
			Modbus:   config.Modbus,
		}),
	}
	t.rx.RegisterCallback(REG_RX_SEQ, t.onSeqChange)
	return t
}

func toUnits(d time.Duration) uint16 {
	units := (d + Unit/2) / Unit
	if units > 0xFFFF {
		return 0xFFFF
	}
	if units < 0 {
		return 0
	}
	return uint16(units)
}

// Emit loads the frame into the transmit buffer and fires it
func (t *Transceiver) Emit(pulses []irprotocol.Pulse, carrierHz int) error {
	samples := irprotocol.Flatten(pulses)
	if len(samples) > MaxSamples {
		return ErrFrameTooLong
	}
	values := make([]uint16, 1+len(samples))
	values[0] = uint16(len(samples))
	for i, d := range samples {
		values[i+1] = toUnits(d)
	}
	if _, err := t.Modbus.WriteRegister(t.SlaveID, REG_TX_CARRIER, uint16(carrierHz/1000)); err != nil {
		return err
	}
	if err := t.Modbus.WriteRegisters(t.SlaveID, REG_TX_COUNT, values); err != nil {
		return err
	}
	_, err := t.Modbus.WriteRegister(t.SlaveID, REG_TX_TRIGGER, 1)
	return err
}

func (t *Transceiver) onSeqChange(address uint16) {
	t.lock.Lock()
	primed := t.primed
	t.primed = true
	t.lock.Unlock()
	// whatever sits in the buffer at startup was received before we were listening
	if !primed {
		return
	}

	samples, err := t.readCapture()
	if err != nil {
		log.WithError(err).Warn("Cannot read capture buffer")
		return
	}
	t.lock.Lock()
	t.pending = samples
	t.lock.Unlock()
	if t.OnCapture != nil {
		t.OnCapture(samples)
	}
}

func (t *Transceiver) readCapture() ([]time.Duration, error) {
	count, err := t.rx.ReadRegister(REG_RX_COUNT)
	if err != nil {
		return nil, err
	}
	if count > MaxSamples {
		return nil, ErrBadSampleCount
	}
	values, err := t.rx.ReadRange(REG_RX_SAMPLES, count)
	if err != nil {
		return nil, err
	}
	samples := make([]time.Duration, count)
	for i, v := range values {
		samples[i] = time.Duration(v) * Unit
	}
	return samples, nil
}

// Poll refreshes the receive buffer
func (t *Transceiver) Poll() error {
	return t.rx.Poll()
}

// Capture polls the module and returns the capture received since the last call,
// or nil if there is none
func (t *Transceiver) Capture() ([]time.Duration, error) {
	if err := t.Poll(); err != nil {
		return nil, err
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	samples := t.pending
	t.pending = nil
	return samples, nil
}

// Loopback turns a modbus mock into a transceiver that receives everything it sends
func Loopback(mock *modbus.Mock) {
	mock.OnWrite = func(slaveID byte, address uint16) {
		if address != REG_TX_TRIGGER {
			return
		}
		state := mock.State[slaveID]
		count := state[REG_TX_COUNT-1]
		if count > MaxSamples {
			count = MaxSamples
		}
		copy(state[REG_RX_SAMPLES-1:], state[REG_TX_SAMPLES-1:REG_TX_SAMPLES-1+int(count)])
		state[REG_RX_COUNT-1] = count
		state[REG_RX_SEQ-1]++
		state[REG_TX_TRIGGER-1] = 0
	}
}
