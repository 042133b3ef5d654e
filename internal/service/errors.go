package service

import "errors"

var (
	// ErrAlreadyRegistered is returned by Slot.Register when the slot already
	// holds a value; the first registrant wins and is never overwritten.
	ErrAlreadyRegistered = errors.New("service: slot already registered")

	// ErrNotOwner is returned by Slot.Unregister when the caller does not
	// hold the current binding.
	ErrNotOwner = errors.New("service: caller does not own this slot")
)
