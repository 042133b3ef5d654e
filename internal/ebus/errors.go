package ebus

import "errors"

// Sentinel errors returned by Bus connect/disconnect/dispatch operations.
var (
	// ErrHandlerAlreadyConnected is returned when a handler is connected
	// twice to the same address without an intervening disconnect.
	ErrHandlerAlreadyConnected = errors.New("ebus: handler already connected")

	// ErrHandlerNotConnected is returned when disconnecting a handler that
	// was never connected at that address.
	ErrHandlerNotConnected = errors.New("ebus: handler not connected")

	// ErrSingleHandlerOccupied is returned when Connect targets an address
	// under HandlerSingle policy that already has a handler.
	ErrSingleHandlerOccupied = errors.New("ebus: address already has a handler (HandlerSingle policy)")

	// ErrIDRequired is returned when Connect/Disconnect is called without an
	// id on a bus using AddressByID or AddressByIDOrdered.
	ErrIDRequired = errors.New("ebus: bus id required for this address policy")

	// ErrIDNotAllowed is returned when Connect, Disconnect or Event is called
	// with an id on a bus using AddressSingle.
	ErrIDNotAllowed = errors.New("ebus: bus id not allowed for AddressSingle policy")

	// ErrQueueDisabled is returned when queue operations are used on a bus
	// whose Traits did not enable queueing, or whose queue is currently
	// inactive.
	ErrQueueDisabled = errors.New("ebus: event queue is not enabled for this bus")

	// ErrNilHandler is returned when a nil handler is passed to Connect.
	ErrNilHandler = errors.New("ebus: handler must not be nil")

	// ErrMissingOrderComparator is returned when constructing a bus with an
	// ordered policy but no comparator supplied in Traits.
	ErrMissingOrderComparator = errors.New("ebus: ordered policy requires a comparator")

	// ErrIDReassignRequiresDisconnect is returned by IdHandler.Connect when
	// the handler is already bound to a different id.
	ErrIDReassignRequiresDisconnect = errors.New("ebus: handler already bound to a different id; disconnect first")
)
