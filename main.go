package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"haier2mqtt/bridge"
	"haier2mqtt/irprotocol"
	"haier2mqtt/logger"
	"haier2mqtt/modbus"
	"haier2mqtt/mqtt"
	"haier2mqtt/remo"
	"haier2mqtt/transceiver"
)

var ErrUnknownTransmitter = errors.New("Unknown transmitter")

type ir interface {
	irprotocol.Transmitter
	irprotocol.CaptureSource
}

// NewIR opens the configured IR hardware. The returned func releases it.
func NewIR(config *Config) (ir, func() error, error) {
	switch config.Transmitter {
	case TRANSMITTER_MODBUS:
		mb, err := modbus.New(&modbus.Config{
			Port:     config.Modbus.Port,
			BaudRate: config.Modbus.BaudRate,
			DataBits: config.Modbus.DataBits,
			Parity:   config.Modbus.Parity,
			StopBits: config.Modbus.StopBits,
			Timeout:  time.Duration(config.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		tr := transceiver.New(&transceiver.Config{
			SlaveID: byte(config.Modbus.SlaveID),
			Modbus:  mb,
		})
		return tr, mb.Close, nil
	case TRANSMITTER_REMO:
		d := remo.New(&remo.Config{
			Address: config.Remo.Address,
			Timeout: time.Duration(config.Remo.TimeoutMs) * time.Millisecond,
		})
		return d, func() error { return nil }, nil
	}
	return nil, nil, ErrUnknownTransmitter
}

func main() {

	ctrlC := make(chan os.Signal, 1)
	signal.Notify(ctrlC, os.Interrupt, syscall.SIGTERM)

	config, err := ParseCommandLine(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing configuration: %s", err)
	}
	if err := logger.Init(&config.Log); err != nil {
		log.Fatalf("Error initializing logger: %s", err)
	}

	device, closeDevice, err := NewIR(config)
	if err != nil {
		log.Fatalf("Error initializing IR hardware: %s", err)
	}
	defer closeDevice()

	mqttClient := mqtt.New(&config.Mqtt)
	bridgeConfig := &bridge.Config{
		ModuleName:  config.Name,
		Variant:     config.Variant,
		TopicPrefix: config.Prefix,
		HassPrefix:  config.HassPrefix,
		Publish:     mqttClient.Publish,
		Subscribe:   mqttClient.Subscribe,
		Transmitter: device,
		Receiver:    device,
		Codec:       config.Codec.NewCodec(),
		Repeat:      config.Codec.Repeat,
	}
	b, err := bridge.NewBridge(bridgeConfig)
	if err != nil {
		log.Fatalf("Error creating bridge: %s", err)
	}

	log.WithField("name", config.Name).WithField("variant", config.Variant).Info("haier2mqtt started")

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		var sessionID int
		for range ticker.C {
			newSessionID := mqttClient.ID()
			if newSessionID == 0 {
				continue
			}
			if sessionID != newSessionID {
				// a new broker session lost the subscriptions
				if err := b.Start(); err != nil {
					log.WithError(err).Error("Error starting bridge")
					continue
				}
				sessionID = newSessionID
			} else {
				b.Tick()
			}
		}
	}()

	<-ctrlC

	mqttClient.Close()

}
