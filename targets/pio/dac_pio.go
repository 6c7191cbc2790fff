//go:build rp2040 || rp2350

package pio

// PIO DAC backend using tinygo-org/pio package
// Writes all 8 ladder bits in the same PIO cycle, so the output never
// passes through intermediate codes the way sequential pin writes do.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO program for the parallel DAC
// Each FIFO word carries one code in its low byte.
//
// Program flow:
//  1. Pull 32-bit word from FIFO (blocks the state machine, not the CPU)
//  2. Shift 8 bits onto the OUT pins
//
// buildDACProgram creates the DAC PIO program using AssemblerV0
func buildDACProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 8).Encode(), // 1: out pins, 8
		// .wrap
	}
}

const (
	dacBits      = 8
	dacPIOOrigin = -1 // No jumps, any free offset
)

// DAC drives an 8-bit resistor ladder from a PIO state machine.
// It implements core.ParallelPort.
type DAC struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	lsb    machine.Pin
	offset uint8
}

// NewDAC creates a PIO DAC backend
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewDAC(pioNum, smNum uint8) *DAC {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &DAC{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the program and claims 8 consecutive pins starting at lsb
func (d *DAC) Init(lsb uint8) error {
	d.lsb = machine.Pin(lsb)

	// Claim the state machine first
	d.sm.TryClaim()

	program := buildDACProgram()
	offset, err := d.pio.AddProgram(program, dacPIOOrigin)
	if err != nil {
		return err
	}
	d.offset = offset

	for i := machine.Pin(0); i < dacBits; i++ {
		(d.lsb + i).Configure(machine.PinConfig{Mode: d.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(d.lsb, dacBits)

	// Shift right so bit 0 lands on the LSB pin, explicit PULL
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Full speed; the CPU paces samples
	cfg.SetClkDivIntFrac(1, 0)

	// Initialize state machine before setting pin directions
	d.sm.Init(offset, cfg)
	d.sm.SetPindirsConsecutive(d.lsb, dacBits, true)
	d.sm.SetPinsConsecutive(d.lsb, dacBits, false)

	d.sm.SetEnabled(true)
	return nil
}

// WriteCode queues one code. It never waits: a full FIFO drops the sample.
func (d *DAC) WriteCode(code uint8) bool {
	if d.sm.IsTxFIFOFull() {
		return false
	}
	d.sm.TxPut(uint32(code))
	return true
}

// Stop halts the state machine and clears queued codes
func (d *DAC) Stop() {
	d.sm.SetEnabled(false)
	d.sm.ClearFIFOs()
	d.sm.Restart()
}
