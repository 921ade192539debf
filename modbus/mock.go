package modbus

import (
	"errors"
	"sync"
)

// MockRegisters is the size of the register bank of each mocked slave
const MockRegisters = 1024

var ErrUnknownSlave = errors.New("Unknown slave")

// Mock is an in-memory register bank standing in for a modbus line
type Mock struct {
	State map[byte][]uint16
	// OnWrite runs after every write that lands, with the lock released
	OnWrite func(slaveID byte, address uint16)
	lock    sync.Mutex
}

// NewMock returns a Mock with an empty register bank for every slave
func NewMock(slaveIDs ...byte) *Mock {
	ms := &Mock{
		State: make(map[byte][]uint16),
	}
	for _, id := range slaveIDs {
		ms.State[id] = make([]uint16, MockRegisters)
	}
	return ms
}

func (ms *Mock) ReadRegister(slaveID byte, address uint16, quantity uint16) (results []uint16, err error) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	state, ok := ms.State[slaveID]
	if !ok {
		return nil, ErrUnknownSlave
	}
	address--
	if int(address)+int(quantity) > len(state) {
		return nil, ErrIncorrectResultSize
	}
	results = make([]uint16, quantity)
	copy(results, state[address:address+quantity])
	return results, nil
}

func (ms *Mock) WriteRegister(slaveID byte, address uint16, value uint16) (results []uint16, err error) {
	if err := ms.WriteRegisters(slaveID, address, []uint16{value}); err != nil {
		return nil, err
	}
	return []uint16{value}, nil
}

func (ms *Mock) WriteRegisters(slaveID byte, address uint16, values []uint16) error {
	ms.lock.Lock()
	state, ok := ms.State[slaveID]
	if !ok {
		ms.lock.Unlock()
		return ErrUnknownSlave
	}
	if int(address)-1+len(values) > len(state) {
		ms.lock.Unlock()
		return ErrIncorrectResultSize
	}
	copy(state[address-1:], values)
	onWrite := ms.OnWrite
	ms.lock.Unlock()

	if onWrite != nil {
		onWrite(slaveID, address)
	}
	return nil
}

func (ms *Mock) Close() error { return nil }
