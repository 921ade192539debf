package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"haier2mqtt/bridge"
	"haier2mqtt/haier"
	"haier2mqtt/irprotocol"
	"haier2mqtt/logger"
	"haier2mqtt/mqtt"
)

const TRANSMITTER_MODBUS = "modbus"
const TRANSMITTER_REMO = "remo"

type ModbusConfig struct {
	Port      string `mapstructure:"port"`
	BaudRate  int    `mapstructure:"baudRate"`
	DataBits  int    `mapstructure:"dataBits"`
	Parity    string `mapstructure:"parity"`
	StopBits  int    `mapstructure:"stopBits"`
	SlaveID   int    `mapstructure:"slaveID"`
	TimeoutMs int    `mapstructure:"timeoutMs"`
}

type RemoConfig struct {
	Address   string `mapstructure:"address"`
	TimeoutMs int    `mapstructure:"timeoutMs"`
}

type CodecConfig struct {
	MinGapUs          int `mapstructure:"minGapUs"`
	TolerancePercent  int `mapstructure:"tolerancePercent"`
	MarkExcessUs      int `mapstructure:"markExcessUs"`
	// ReceiverTimeoutUs caps the trailing gap a capture must show. 0 disables it.
	ReceiverTimeoutUs int `mapstructure:"receiverTimeoutUs"`
	Repeat            int `mapstructure:"repeat"`
}

type Config struct {
	Mqtt        mqtt.Config   `mapstructure:"mqtt"`
	Prefix      string        `mapstructure:"prefix"`
	HassPrefix  string        `mapstructure:"hassPrefix"`
	Name        string        `mapstructure:"name"`
	Variant     string        `mapstructure:"variant"`
	Transmitter string        `mapstructure:"transmitter"`
	Modbus      ModbusConfig  `mapstructure:"modbus"`
	Remo        RemoConfig    `mapstructure:"remo"`
	Codec       CodecConfig   `mapstructure:"codec"`
	Log         logger.Config `mapstructure:"log"`
}

func generateNodeName(variant string) string {
	reg := regexp.MustCompile("[^a-zA-Z0-9]+")
	hostname, _ := os.Hostname()
	hostname = reg.ReplaceAllString(hostname, "")
	return strings.ToLower(fmt.Sprintf("%s_haier_%s", hostname, variant))
}

// ParseCommandLine reads the flags in args. Settings in the -config file or
// in HAIER2MQTT_* environment variables override them.
func ParseCommandLine(fs *flag.FlagSet, args []string) (*Config, error) {
	config := &Config{}

	fs.StringVar(&config.Mqtt.Server, "server", "tcp://127.0.0.1:1883", "The full url of the MQTT server to connect to ex: tcp://127.0.0.1:1883")
	fs.StringVar(&config.Mqtt.ClientID, "clientid", "", "A clientid for the connection. Defaults to hostname plus a random suffix")
	fs.StringVar(&config.Mqtt.Username, "username", "", "A username to authenticate to the MQTT server")
	fs.StringVar(&config.Mqtt.Password, "password", "", "Password to match username")
	fs.StringVar(&config.Prefix, "prefix", "haier2mqtt", "MQTT topic root where to publish/read topics")
	fs.StringVar(&config.HassPrefix, "hassPrefix", "homeassistant", "Home assistant discovery prefix")
	fs.StringVar(&config.Name, "name", "", "Device name used in topics. Defaults to hostname_haier_variant")
	fs.StringVar(&config.Variant, "variant", bridge.VARIANT_HSU07, "Remote model: hsu07 or yrw02")
	fs.StringVar(&config.Transmitter, "transmitter", TRANSMITTER_MODBUS, "IR hardware: modbus or remo")
	fs.StringVar(&config.Modbus.Port, "modbusPort", "/dev/ttyUSB0", "Serial port where modbus hardware is connected, or tcp://host:port for a modbus TCP gateway")
	fs.IntVar(&config.Modbus.BaudRate, "modbusRate", 9600, "Modbus port data rate")
	fs.IntVar(&config.Modbus.DataBits, "modbusDataBits", 8, "Modbus port data bits")
	fs.StringVar(&config.Modbus.Parity, "modbusParity", "E", "N - None, E - Even, O - Odd (default E) (The use of no parity requires 2 stop bits.)")
	fs.IntVar(&config.Modbus.StopBits, "modbusStopBits", 1, "Modbus port stop bits")
	fs.IntVar(&config.Modbus.SlaveID, "modbusSlaveID", 1, "Modbus slave ID of the IR transceiver")
	fs.StringVar(&config.Remo.Address, "remoAddr", "", "Address of the Nature Remo on the local network")
	logLevel := fs.String("logLevel", "info", "Log level: debug, info, warn or error")
	logFormat := fs.String("logFormat", "text", "Log format: text or json")
	logFile := fs.String("logFile", "", "Write logs to this file, rotated, instead of stdout")
	configFile := fs.String("config", "", "YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config.Modbus.TimeoutMs = 200
	config.Remo.TimeoutMs = 5000
	config.Codec = CodecConfig{
		MinGapUs:         int(haier.Timing.MinGap / time.Microsecond),
		TolerancePercent: irprotocol.DefaultTolerance.Percent,
		MarkExcessUs:     int(irprotocol.DefaultTolerance.MarkExcess / time.Microsecond),
	}
	config.Log = logger.Config{
		Level:      *logLevel,
		Format:     *logFormat,
		FilePath:   *logFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}

	if err := LoadFile(*configFile, config); err != nil {
		return nil, err
	}

	if config.Name == "" {
		config.Name = generateNodeName(config.Variant)
	}
	return config, nil
}

// LoadFile overlays the YAML file at path, if any, and the environment on config
func LoadFile(path string, config *Config) error {
	v := viper.New()
	v.SetEnvPrefix("HAIER2MQTT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// the environment is only consulted for known keys
	for key, value := range settings(config) {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func settings(config *Config) map[string]interface{} {
	return map[string]interface{}{
		"mqtt.server":             config.Mqtt.Server,
		"mqtt.clientid":           config.Mqtt.ClientID,
		"mqtt.username":           config.Mqtt.Username,
		"mqtt.password":           config.Mqtt.Password,
		"prefix":                  config.Prefix,
		"hassPrefix":              config.HassPrefix,
		"name":                    config.Name,
		"variant":                 config.Variant,
		"transmitter":             config.Transmitter,
		"modbus.port":             config.Modbus.Port,
		"modbus.baudRate":         config.Modbus.BaudRate,
		"modbus.dataBits":         config.Modbus.DataBits,
		"modbus.parity":           config.Modbus.Parity,
		"modbus.stopBits":         config.Modbus.StopBits,
		"modbus.slaveID":          config.Modbus.SlaveID,
		"modbus.timeoutMs":        config.Modbus.TimeoutMs,
		"remo.address":            config.Remo.Address,
		"remo.timeoutMs":          config.Remo.TimeoutMs,
		"codec.minGapUs":          config.Codec.MinGapUs,
		"codec.tolerancePercent":  config.Codec.TolerancePercent,
		"codec.markExcessUs":      config.Codec.MarkExcessUs,
		"codec.receiverTimeoutUs": config.Codec.ReceiverTimeoutUs,
		"codec.repeat":            config.Codec.Repeat,
		"log.level":               config.Log.Level,
		"log.format":              config.Log.Format,
		"log.filePath":            config.Log.FilePath,
		"log.maxSizeMB":           config.Log.MaxSizeMB,
		"log.maxBackups":          config.Log.MaxBackups,
		"log.maxAgeDays":          config.Log.MaxAgeDays,
		"log.compress":            config.Log.Compress,
		"log.console":             config.Log.Console,
	}
}

// NewCodec builds the Haier codec with the configured timing
func (c *CodecConfig) NewCodec() *haier.Codec {
	timing := haier.Timing
	timing.MinGap = time.Duration(c.MinGapUs) * time.Microsecond
	return haier.NewCodec(timing, irprotocol.Tolerance{
		Percent:    c.TolerancePercent,
		MarkExcess: time.Duration(c.MarkExcessUs) * time.Microsecond,
		MaxGap:     time.Duration(c.ReceiverTimeoutUs) * time.Microsecond,
	})
}
