// Package config abstracts configuration access behind a typed getter
// interface so the rest of the app never touches the backing store directly.
package config

import (
	"io"
	"time"
)

// Config retrieves configuration values by key, converting them to the
// requested type. Implementations return the type's zero value when the key
// is missing or the value cannot be converted.
type Config interface {
	io.Closer

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetUint32 returns the value for key as a uint32.
	GetUint32(key string) uint32

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond returns the integer value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the integer value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetHour returns the integer value for key as a duration in hours.
	GetHour(key string) time.Duration

	// GetBinary returns the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray returns the comma-separated value for key as a string slice.
	GetArray(key string) []string
}
