// Package watcher represents a cache of a range of modbus registers in a device
// Can fire events if a watched register changes
package watcher

import (
	"errors"
	"sync"
)

// Modbus is the subset of a modbus line a Watcher needs
type Modbus interface {
	ReadRegister(slaveID byte, address uint16, quantity uint16) (results []uint16, err error)
	WriteRegister(slaveID byte, address uint16, value uint16) (results []uint16, err error)
}

// Config contains the configuration parameters for a new Watcher instance
type Config struct {
	Address  uint16 // Start address
	Quantity uint16 // Number of registers to watch
	SlaveID  byte   // SlaveID to watch
	Modbus   Modbus
}

// Watcher represents a cache of modbus registers in a device
type Watcher struct {
	Config
	state     []uint16                        // current view of the modbus register states
	callbacks map[uint16]func(address uint16) // set of callbacks
	lock      *sync.RWMutex
}

var ErrAddressOutOfRange = errors.New("Register address out of range")
var ErrUninitialized = errors.New("State uninitialized. Call Poll() first.")
var ErrIncorrectResultSize = errors.New("Incorrect number of registers returned")

// New returns a new Watcher instance
func New(config *Config) *Watcher {
	return &Watcher{
		Config:    *config,
		callbacks: make(map[uint16]func(address uint16)),
		lock:      &sync.RWMutex{},
	}
}

// RegisterCallback registers a new callback that will be fired when the specific register address changes values
func (w *Watcher) RegisterCallback(address uint16, callback func(address uint16)) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.callbacks[address] = callback
}

// Poll refreshes the cache by reading the watched register range from the slave device.
// The first successful poll fires every callback.
func (w *Watcher) Poll() error {
	w.lock.Lock()
	newState, err := w.Modbus.ReadRegister(w.SlaveID, w.Address, w.Quantity)
	if err != nil {
		w.lock.Unlock()
		return err
	}
	if len(newState) != int(w.Quantity) {
		w.lock.Unlock()
		return ErrIncorrectResultSize
	}

	oldState := w.state
	w.state = newState
	var fire []func(address uint16)
	var fireAddresses []uint16

	first := len(oldState) != len(newState)
	for n := 0; n < len(newState); n++ {
		address := uint16(n) + w.Address
		callback := w.callbacks[address]
		if callback == nil {
			continue
		}
		if first || oldState[n] != newState[n] {
			fire = append(fire, callback)
			fireAddresses = append(fireAddresses, address)
		}
	}
	w.lock.Unlock()
	for i, callback := range fire {
		callback(fireAddresses[i])
	}
	return nil
}

func (w *Watcher) inRange(address, quantity uint16) bool {
	return address >= w.Address && int(address)+int(quantity) <= int(w.Address)+int(w.Quantity)
}

// ReadRegister reads one register from the cache
func (w *Watcher) ReadRegister(address uint16) (value uint16, err error) {
	values, err := w.ReadRange(address, 1)
	if err != nil {
		return 0, err
	}
	return values[0], nil
}

// ReadRange returns a copy of quantity cached registers starting at address
func (w *Watcher) ReadRange(address, quantity uint16) ([]uint16, error) {
	w.lock.RLock()
	defer w.lock.RUnlock()
	if !w.inRange(address, quantity) {
		return nil, ErrAddressOutOfRange
	}
	if w.state == nil {
		return nil, ErrUninitialized
	}
	start := int(address - w.Address)
	values := make([]uint16, quantity)
	copy(values, w.state[start:start+int(quantity)])
	return values, nil
}

// WriteRegister writes the value to the slave device and updates the cache if successful
func (w *Watcher) WriteRegister(address uint16, value uint16) error {
	if !w.inRange(address, 1) {
		return ErrAddressOutOfRange
	}
	w.lock.Lock()
	results, err := w.Modbus.WriteRegister(w.SlaveID, address, value)
	if err != nil {
		w.lock.Unlock()
		return err
	}
	if w.state != nil && len(results) > 0 {
		w.state[int(address-w.Address)] = results[0]
	}
	callback := w.callbacks[address]
	w.lock.Unlock()
	if callback != nil {
		callback(address)
	}
	return nil
}

// TriggerCallbacks calls all callbacks
func (w *Watcher) TriggerCallbacks() {
	w.lock.RLock()
	callbacks := make(map[uint16]func(address uint16), len(w.callbacks))
	for address, callback := range w.callbacks {
		callbacks[address] = callback
	}
	w.lock.RUnlock()
	for address, callback := range callbacks {
		callback(address)
	}
}
