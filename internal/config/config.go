package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an integer. Unparseable values fall back with a log line.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: key=%s value=%q not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetFloat parses key as a float.
func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: key=%s value=%q not a number, using %g", key, v, fallback)
		return fallback
	}
	return f
}

// GetDuration parses key with time.ParseDuration (e.g. "24h").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: key=%s value=%q not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}
