// Package bridge exposes a Haier A/C, driven through an IR transmitter, as a
// Home Assistant climate entity over MQTT
package bridge

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	average "github.com/RobinUS2/golang-moving-average"
	log "github.com/sirupsen/logrus"

	"haier2mqtt/haier"
	"haier2mqtt/irprotocol"
)

type Publish func(topic string, qos byte, retained bool, payload string) error
type Subscribe func(topic string, callback func(message string)) error

type Config struct {
	ModuleName  string
	Variant     string
	TopicPrefix string
	HassPrefix  string
	Publish     Publish
	Subscribe   Subscribe
	Transmitter irprotocol.Transmitter
	Receiver    irprotocol.CaptureSource // optional
	Codec       *haier.Codec
	Repeat      int
}

type Bridge struct {
	Config
	ac      climate
	bitMark *average.MovingAverage
	lock    sync.Mutex
}

func NewBridge(config *Config) (*Bridge, error) {
	ac, err := newClimate(config.Variant)
	if err != nil {
		return nil, err
	}
	b := &Bridge{
		Config:  *config,
		ac:      ac,
		bitMark: average.New(bitMarkWindow),
	}
	if b.Codec == nil {
		b.Codec = haier.DefaultCodec
	}
	return b, nil
}

type handler func(message string) error

func (b *Bridge) handlers() map[string]handler {
	h := map[string]handler{
		"targetTemp": func(message string) error {
			temp, err := strconv.ParseFloat(message, 64)
			if err != nil {
				return err
			}
			b.ac.SetTemp(int(math.Round(temp)))
			return nil
		},
		"hvacMode":  b.ac.SetHvacMode,
		"fanMode":   b.ac.SetFanMode,
		"swingMode": b.ac.SetSwingMode,
		"sleep": func(message string) error {
			on, err := Str2OnOff(message)
			if err != nil {
				return err
			}
			b.ac.SetSleep(on)
			return nil
		},
		"health": func(message string) error {
			on, err := Str2OnOff(message)
			if err != nil {
				return err
			}
			b.ac.SetHealth(on)
			return nil
		},
		"raw": func(message string) error {
			raw, err := hex.DecodeString(message)
			if err != nil {
				return err
			}
			return b.ac.Load(raw)
		},
	}
	if t, ok := b.ac.(turboClimate); ok {
		h["turbo"] = t.SetTurboMode
	}
	return h
}

// Start subscribes to the command topics and publishes the discovery configuration
// and the current state
func (b *Bridge) Start() error {
	for subtopic, h := range b.handlers() {
		subtopic, h := subtopic, h
		setTopic := b.getTopic(subtopic) + "/set"
		err := b.Subscribe(setTopic, func(message string) {
			b.lock.Lock()
			defer b.lock.Unlock()
			if err := h(message); err != nil {
				log.WithError(err).WithField("topic", setTopic).Warnf("Ignoring command %q", message)
				return
			}
			if err := b.ac.Send(b.Codec, b.Transmitter, b.Repeat); err != nil {
				log.WithError(err).WithField("protocol", b.ac.Protocol()).Error("Cannot transmit state")
			}
			b.publishState()
		})
		if err != nil {
			return err
		}
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	b.publishDiscovery()
	b.publishState()
	return nil
}

// Tick checks the receiver for a capture and adopts the state it carries
func (b *Bridge) Tick() {
	if b.Receiver == nil {
		return
	}
	samples, err := b.Receiver.Capture()
	if err != nil {
		log.WithError(err).Warn("Cannot read IR receiver")
		return
	}
	if samples == nil {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.receive(samples)
}

func (b *Bridge) receive(samples []time.Duration) {
	raw, err := b.ac.Decode(b.Codec, samples)
	if err != nil {
		log.WithError(err).WithField("protocol", b.ac.Protocol()).Debug("Capture is not for this protocol")
		return
	}
	if err := b.ac.Load(raw); err != nil {
		log.WithError(err).Warn("Cannot load received state")
		return
	}
	for i := 0; i < b.ac.Bits(); i++ {
		b.bitMark.Add(float64(samples[headerSamples+2*i].Microseconds()))
	}
	b.publish("rx/bitMark", fmt.Sprintf("%.0f", b.bitMark.Avg()))
	b.publishState()
}

func (b *Bridge) publish(subtopic string, payload string) {
	topic := b.getTopic(subtopic)
	if err := b.Publish(topic, 0, true, payload); err != nil {
		log.WithError(err).WithField("topic", topic).Warn("Cannot publish")
	}
}

func (b *Bridge) publishState() {
	b.publish("targetTemp", strconv.Itoa(b.ac.Temp()))
	b.publish("hvacMode", b.ac.HvacMode())
	b.publish("fanMode", b.ac.FanMode())
	b.publish("swingMode", b.ac.SwingMode())
	b.publish("sleep", OnOff2Str(b.ac.Sleep()))
	b.publish("health", OnOff2Str(b.ac.Health()))
	if t, ok := b.ac.(turboClimate); ok {
		b.publish("turbo", t.TurboMode())
	}
	b.publish("lastAction", b.ac.LastAction())
	b.publish("raw", hex.EncodeToString(b.ac.Raw()))
	b.publish("state", b.ac.String())
}

func (b *Bridge) publishConfig(component, objectID string, config map[string]interface{}) {
	configJSON, _ := json.Marshal(config)
	// <discovery_prefix>/<component>/[<node_id>/]<object_id>/config
	topic := fmt.Sprintf("%s/%s/%s/%s/config", b.HassPrefix, component, b.ModuleName, objectID)
	if err := b.Publish(topic, 0, true, string(configJSON)); err != nil {
		log.WithError(err).WithField("topic", topic).Warn("Cannot publish discovery config")
	}
}

func (b *Bridge) publishDiscovery() {
	config := map[string]interface{}{
		"name":                      b.ModuleName,
		"unique_id":                 b.ModuleName,
		"precision":                 1.0,
		"temperature_state_topic":   b.getTopic("targetTemp"),
		"temperature_command_topic": b.getTopic("targetTemp") + "/set",
		"temperature_unit":          "C",
		"temp_step":                 1,
		"min_temp":                  haier.MinTemp,
		"max_temp":                  haier.MaxTemp,
		"modes":                     b.ac.HvacModes(),
		"mode_state_topic":          b.getTopic("hvacMode"),
		"mode_command_topic":        b.getTopic("hvacMode") + "/set",
		"fan_modes":                 b.ac.FanModes(),
		"fan_mode_state_topic":      b.getTopic("fanMode"),
		"fan_mode_command_topic":    b.getTopic("fanMode") + "/set",
		"swing_modes":               b.ac.SwingModes(),
		"swing_mode_state_topic":    b.getTopic("swingMode"),
		"swing_mode_command_topic":  b.getTopic("swingMode") + "/set",
	}
	b.publishConfig(HA_COMPONENT_CLIMATE, "climate", config)

	for _, sw := range []string{"sleep", "health"} {
		b.publishConfig(HA_COMPONENT_SWITCH, sw, map[string]interface{}{
			"name":          fmt.Sprintf("%s %s", b.ModuleName, sw),
			"unique_id":     fmt.Sprintf("%s_%s", b.ModuleName, sw),
			"state_topic":   b.getTopic(sw),
			"command_topic": b.getTopic(sw) + "/set",
			"payload_on":    PAYLOAD_ON,
			"payload_off":   PAYLOAD_OFF,
		})
	}

	b.publishConfig(HA_COMPONENT_SENSOR, "bitMark", map[string]interface{}{
		"name":                fmt.Sprintf("%s IR bit mark", b.ModuleName),
		"unique_id":           fmt.Sprintf("%s_bitMark", b.ModuleName),
		"state_topic":         b.getTopic("rx/bitMark"),
		"unit_of_measurement": "µs",
	})
}

func (b *Bridge) getTopic(subtopic string) string {
	return fmt.Sprintf("%s/%s/%s", b.TopicPrefix, b.ModuleName, subtopic)
}
