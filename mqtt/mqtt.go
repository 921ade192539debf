package mqtt

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Server   string
	ClientID string
	Username string
	Password string
}

type Client struct {
	client MQTT.Client
	id     int
	closed bool
	lock   sync.RWMutex
}

var ErrNotConnected = errors.New("MQTT client not connected")

// DefaultClientID is the hostname plus a random suffix, so that two bridges on one
// host do not kick each other off the broker
func DefaultClientID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%s", hostname, uuid.New().String()[:8])
}

func New(config *Config) *Client {
	m := &Client{}

	clientID := config.ClientID
	if clientID == "" {
		clientID = DefaultClientID()
	}

	connOpts := MQTT.NewClientOptions().
		AddBroker(config.Server).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(false)

	if config.Username != "" {
		connOpts.SetUsername(config.Username)
		if config.Password != "" {
			connOpts.SetPassword(config.Password)
		}
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: true, ClientAuth: tls.NoClientCert}
	connOpts.SetTLSConfig(tlsConfig)

	connOpts.OnConnectionLost = func(c MQTT.Client, err error) {
		log.WithError(err).Warn("MQTT disconnected")
	}

	connect := func() {
		log.WithField("server", config.Server).Info("Trying to connect to MQTT")
		newClient := MQTT.NewClient(connOpts)
		token := newClient.Connect()
		token.Wait()
		if err := token.Error(); err != nil {
			log.WithError(err).Warn("Cannot connect to MQTT")
			return
		}
		m.lock.Lock()
		m.client = newClient
		m.id++
		id := m.id
		m.lock.Unlock()
		log.WithField("session", id).Info("Connected to MQTT")
	}

	connect()
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			m.lock.RLock()
			closed, client := m.closed, m.client
			m.lock.RUnlock()
			if closed {
				if client != nil {
					client.Disconnect(100)
				}
				return
			}
			if client == nil || !client.IsConnectionOpen() {
				connect()
			}
		}
	}()
	return m
}

// ID identifies the current broker session. It changes on every reconnection.
func (m *Client) ID() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.id
}

func (m *Client) current() MQTT.Client {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.client
}

func (m *Client) Publish(topic string, qos byte, retained bool, payload string) error {
	client := m.current()
	if client == nil {
		return ErrNotConnected
	}
	token := client.Publish(topic, qos, retained, payload)
	token.Wait()
	return token.Error()
}

func (m *Client) Subscribe(topic string, callback func(message string)) error {
	client := m.current()
	if client == nil {
		return ErrNotConnected
	}
	token := client.Subscribe(topic, 0, func(c MQTT.Client, m MQTT.Message) {
		callback(string(m.Payload()))
	})
	token.Wait()
	return token.Error()
}

func (m *Client) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.closed = true
	return nil
}
