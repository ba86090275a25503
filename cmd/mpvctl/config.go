package main

import (
	"os"
	"strconv"
)

const (
	DefaultSocketPath  = "/tmp/mpvsocket"
	DefaultQueueSize   = 100
	DefaultEventBuffer = 100
)

type Config struct {
	SocketPath  string
	Debug       bool
	QueueSize   int
	EventBuffer int
}

func Load() Config {
	cfg := Config{
		SocketPath:  envVar("MPVCTL_SOCKET", DefaultSocketPath),
		Debug:       envVar("MPVCTL_DEBUG", false),
		QueueSize:   envVar("MPVCTL_QUEUE_SIZE", DefaultQueueSize),
		EventBuffer: envVar("MPVCTL_EVENT_BUFFER", DefaultEventBuffer),
	}

	cfg.validate()

	return cfg
}

func envVar[T ~string | ~bool | ~int](key string, def T) T {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	switch any(def).(type) {
	case string:
		return any(v).(T)
	case bool:
		if b, err := strconv.ParseBool(v); err == nil {
			return any(b).(T)
		}
	case int:
		if i, err := strconv.Atoi(v); err == nil {
			return any(i).(T)
		}
	}
	return def
}

// validate performs validation on configuration values
func (c *Config) validate() {
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath
	}
	if c.QueueSize < 1 {
		c.QueueSize = DefaultQueueSize
	}
	if c.EventBuffer < 1 {
		c.EventBuffer = DefaultEventBuffer
	}
}
