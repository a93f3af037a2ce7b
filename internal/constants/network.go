package constants

import "time"

// HTTP client connection pool settings for the upstream transport.
const (
	BaseMaxIdleConns        = 64
	BaseMaxIdleConnsPerHost = 16
	BaseIdleConnTimeout     = 90 * time.Second
	BaseKeepAlive           = 30 * time.Second
)

// MaxAttachmentBytes caps a single user image download.
const MaxAttachmentBytes = 20 << 20
