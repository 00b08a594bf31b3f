package transport

import "errors"

var (
	// ErrNotConnected is returned by Emit when no socket is open.
	ErrNotConnected = errors.New("transport: not connected")

	// ErrConnectInProgress is returned by Connect while another handshake is running.
	ErrConnectInProgress = errors.New("transport: connect already in progress")

	// ErrConnectAborted is returned by Connect when Disconnect interrupts the handshake.
	ErrConnectAborted = errors.New("transport: connect aborted by disconnect")

	// ErrClosed is returned after the client has been closed.
	ErrClosed = errors.New("transport: client closed")

	// ErrDialFailed wraps handshake failures.
	ErrDialFailed = errors.New("transport: dial failed")
)
