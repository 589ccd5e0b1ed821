package recipient

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingAddress indicates a row resolved to no address.
	ErrMissingAddress = errors.New("recipient: missing address")

	// ErrDuplicateAddress indicates two rows resolved to the same address.
	ErrDuplicateAddress = errors.New("recipient: duplicate address")
)

// MissingAddressError carries the row that failed address resolution.
type MissingAddressError struct {
	Record Fields
	Row    int // zero-based position in the input
}

func (e *MissingAddressError) Error() string {
	return fmt.Sprintf("recipient: missing address in row %d: %s", e.Row+1, e.Record)
}

func (e *MissingAddressError) Is(target error) bool {
	return target == ErrMissingAddress
}

// DuplicateAddressError lists every address seen more than once.
type DuplicateAddressError struct {
	Addresses []string
}

func (e *DuplicateAddressError) Error() string {
	return "recipient: duplicate address: " + strings.Join(e.Addresses, ", ")
}

func (e *DuplicateAddressError) Is(target error) bool {
	return target == ErrDuplicateAddress
}
