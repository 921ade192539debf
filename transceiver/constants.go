package transceiver

import "time"

// Register map of the modbus IR transceiver. Durations are stored in Unit steps.
const REG_RX_SEQ = 1
const REG_RX_COUNT = 2
const REG_RX_SAMPLES = 3

const REG_TX_CARRIER = 301
const REG_TX_COUNT = 302
const REG_TX_SAMPLES = 303
const REG_TX_TRIGGER = 600

// MaxSamples is the size of each sample buffer
const MaxSamples = 240

const Unit = 10 * time.Microsecond

const rxWindow = REG_RX_SAMPLES - REG_RX_SEQ + MaxSamples
