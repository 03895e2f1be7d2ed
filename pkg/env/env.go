// Package env reads raw environment values during bootstrap, before the
// typed KAMALSITE_ config is loaded.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// An empty value counts as unset, so a blank entry in a dotenv file does
// not shadow the fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
