package utils

import "os"

// Getenv reads an environment variable, falling back to the given default
// when it is unset or empty. Config loading treats empty and missing alike.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
