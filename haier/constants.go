package haier

// HSU07-HEA03 remote

const StateLength = 9
const Bits = StateLength * 8
const Prefix = 0xA5

const MinTemp = 16
const DefaultTemp = 25
const MaxTemp = 30

// MaxTime is the longest timer that fits in the hours/minutes fields: 23:59
const MaxTime = 23*60 + 59

// Command is the "last action" of an HSU07 remote
type Command byte

const CmdOff Command = 0x0
const CmdOn Command = 0x1
const CmdMode Command = 0x2
const CmdFan Command = 0x3
const CmdTempUp Command = 0x6
const CmdTempDown Command = 0x7
const CmdSleep Command = 0x8
const CmdTimerSet Command = 0x9
const CmdTimerCancel Command = 0xA
const CmdHealth Command = 0xC
const CmdSwing Command = 0xD

type Mode byte

const ModeAuto Mode = 0
const ModeCool Mode = 1
const ModeDry Mode = 2
const ModeHeat Mode = 3
const ModeFan Mode = 4

type Fan byte

const FanAuto Fan = 0
const FanLow Fan = 1
const FanMed Fan = 2
const FanHigh Fan = 3

type Swing byte

const SwingOff Swing = 0x0
const SwingUp Swing = 0x1
const SwingDown Swing = 0x2
const SwingChg Swing = 0x3

// YR-W02 remote

const StateLengthYRW02 = 14
const BitsYRW02 = StateLengthYRW02 * 8
const PrefixYRW02 = 0xA6

// Button is the "last action" of a YR-W02 remote
type Button byte

const ButtonTempUp Button = 0x0
const ButtonTempDown Button = 0x1
const ButtonSwing Button = 0x2
const ButtonFan Button = 0x4
const ButtonPower Button = 0x5
const ButtonMode Button = 0x6
const ButtonHealth Button = 0x7
const ButtonTurbo Button = 0x8
const ButtonSleep Button = 0xB

type YRW02Mode byte

const YRW02ModeAuto YRW02Mode = 0x0
const YRW02ModeCool YRW02Mode = 0x2
const YRW02ModeDry YRW02Mode = 0x4
const YRW02ModeHeat YRW02Mode = 0x8
const YRW02ModeFan YRW02Mode = 0xC

type YRW02Fan byte

const YRW02FanHigh YRW02Fan = 0x1
const YRW02FanMed YRW02Fan = 0x2
const YRW02FanLow YRW02Fan = 0x3
const YRW02FanAuto YRW02Fan = 0x5

type YRW02Swing byte

const YRW02SwingOff YRW02Swing = 0x0
const YRW02SwingTop YRW02Swing = 0x1
const YRW02SwingMiddle YRW02Swing = 0x2 // not available in heat mode
const YRW02SwingBottom YRW02Swing = 0x3 // heat mode only
const YRW02SwingDown YRW02Swing = 0xA
const YRW02SwingAuto YRW02Swing = 0xC

type Turbo byte

const TurboOff Turbo = 0x0
const TurboHigh Turbo = 0x1
const TurboLow Turbo = 0x2

const yrw02Power = 0x40 // byte 4
const yrw02Sleep = 0x80 // byte 8
