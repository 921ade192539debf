package modbus

import (
	"encoding/binary"
	"errors"
	"strings"
	"sync"
	"time"

	bmodbus "github.com/goburrow/modbus"
	log "github.com/sirupsen/logrus"
	gmodbus "github.com/wz2b/modbus"
)

// Config selects a serial RTU line, or a modbus TCP gateway when Port is tcp://host:port
type Config struct {
	Port     string
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
	Timeout  time.Duration
}

// max registers per request allowed by the modbus PDU size
const maxReadQuantity = 125
const maxWriteQuantity = 123

type handler interface {
	Connect() error
	Close() error
	setSlaveID(slaveID byte)
}

type rtuHandler struct {
	*gmodbus.RTUClientHandler
}

func (h rtuHandler) setSlaveID(slaveID byte) {
	h.SlaveId = slaveID
}

type tcpHandler struct {
	*bmodbus.TCPClientHandler
}

func (h tcpHandler) setSlaveID(slaveID byte) {
	h.SlaveId = slaveID
}

type client interface {
	ReadHoldingRegisters(address, quantity uint16) (results []byte, err error)
	WriteSingleRegister(address, value uint16) (results []byte, err error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) (results []byte, err error)
}

type Modbus struct {
	handler handler
	client  client
	lock    sync.RWMutex
}

func throttle(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

var ErrIncorrectResultSize = errors.New("Incorrect number of results returned")

func New(config *Config) (*Modbus, error) {
	if strings.HasPrefix(config.Port, "tcp://") {
		h := bmodbus.NewTCPClientHandler(strings.TrimPrefix(config.Port, "tcp://"))
		h.Timeout = config.Timeout
		return &Modbus{
			handler: tcpHandler{h},
			client:  bmodbus.NewClient(h),
		}, h.Connect()
	}

	h := gmodbus.NewRTUClientHandler(config.Port)
	h.BaudRate = config.BaudRate
	h.DataBits = config.DataBits
	h.Parity = config.Parity
	h.StopBits = config.StopBits
	h.Timeout = config.Timeout

	return &Modbus{
		handler: rtuHandler{h},
		client:  gmodbus.NewClient(h),
	}, h.Connect()
}

func (mb *Modbus) Close() error {
	return mb.handler.Close()
}

func parseResults(r []byte, quantity uint16) ([]uint16, error) {
	if len(r) != int(quantity*2) {
		return nil, ErrIncorrectResultSize
	}
	results := make([]uint16, quantity)
	for n := uint16(0); n < quantity; n++ {
		results[n] = binary.BigEndian.Uint16(r[n*2 : n*2+2])
	}
	return results, nil
}

// ReadRegister reads quantity holding registers from 1-based address, splitting
// the range over as many requests as needed
func (mb *Modbus) ReadRegister(slaveID byte, address uint16, quantity uint16) (results []uint16, err error) {
	for quantity > 0 {
		n := quantity
		if n > maxReadQuantity {
			n = maxReadQuantity
		}
		var chunk []uint16
		err = mb.try(slaveID, func() (err error) {
			r, err := mb.client.ReadHoldingRegisters(address-1, n)
			if err != nil {
				return err
			}
			chunk, err = parseResults(r, n)
			return err
		})
		if err != nil {
			return nil, err
		}
		results = append(results, chunk...)
		address += n
		quantity -= n
	}
	return results, nil
}

func (mb *Modbus) WriteRegister(slaveID byte, address uint16, value uint16) (results []uint16, err error) {
	err = mb.try(slaveID, func() (err error) {
		r, err := mb.client.WriteSingleRegister(address-1, value)
		if err != nil {
			return err
		}
		results, err = parseResults(r, 1)
		return err
	})
	return results, err
}

// WriteRegisters writes consecutive holding registers starting at 1-based address
func (mb *Modbus) WriteRegisters(slaveID byte, address uint16, values []uint16) error {
	for len(values) > 0 {
		n := len(values)
		if n > maxWriteQuantity {
			n = maxWriteQuantity
		}
		payload := make([]byte, n*2)
		for i, v := range values[:n] {
			binary.BigEndian.PutUint16(payload[i*2:], v)
		}
		err := mb.try(slaveID, func() error {
			_, err := mb.client.WriteMultipleRegisters(address-1, uint16(n), payload)
			return err
		})
		if err != nil {
			return err
		}
		address += uint16(n)
		values = values[n:]
	}
	return nil
}

func (mb *Modbus) try(slaveID byte, f func() error) (err error) {
	mb.lock.Lock()
	defer mb.lock.Unlock()
	defer throttle(20)
	mb.handler.setSlaveID(slaveID)
	retries := 5
	delay := 100
	for retries > 0 {
		err = f()
		if err == nil {
			return nil
		}
		log.WithField("slave", slaveID).Warnf("Retried modbus operation due to %s. %d retries left", err, retries)
		mb.handler.Close()
		throttle(100)
		connectErr := mb.handler.Connect()
		if connectErr != nil {
			return connectErr
		}
		retries--
		throttle(delay)
		delay *= 2
	}
	return err
}
