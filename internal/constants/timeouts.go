package constants

import "time"

const (
	// DefaultRequestTimeout bounds a single upstream attempt.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultDialTimeout bounds TCP connection establishment.
	DefaultDialTimeout = 10 * time.Second
	// DefaultTLSHandshakeTimeout bounds the TLS handshake.
	DefaultTLSHandshakeTimeout = 10 * time.Second
	// DefaultAttachmentTimeout bounds downloading one chat attachment.
	DefaultAttachmentTimeout = 30 * time.Second
	// ShutdownTimeout bounds graceful shutdown of the health server.
	ShutdownTimeout = 10 * time.Second
	// ReadHeaderTimeout protects the health server from slow clients.
	ReadHeaderTimeout = 10 * time.Second
)
