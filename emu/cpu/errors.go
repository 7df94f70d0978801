package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrInvalidKey        = errors.New("invalid key")
	ErrSizeMismatch      = errors.New("data size does not match requested size")
)

// OpcodeError describes an instruction the machine could not execute.
type OpcodeError struct {
	Opcode  uint16
	Address uint16
	Err     error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("opcode %04X at %03X: %v", e.Opcode, e.Address, e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}

func (emu *EMU) opCodeError(opcode, addr uint16, err error) error {
	return &OpcodeError{Opcode: opcode, Address: addr, Err: err}
}

func checkRange(addr uint16, size int) error {
	if int(addr) >= MemorySize || size < 0 || int(addr)+size > MemorySize {
		return fmt.Errorf("%w: start %#04x size %d", ErrAddressOutOfRange, addr, size)
	}
	return nil
}
