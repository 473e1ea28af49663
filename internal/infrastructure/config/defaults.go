package config

import "time"

const (
	DefaultHTTPPort          = "8080"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWSWriteTimeout    = 5 * time.Second
	DefaultWSClientBuffer    = 32
)
