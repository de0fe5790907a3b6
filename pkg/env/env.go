package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when the variable is not set.
func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvSecret behaves like GetEnvString but never echoes the value.
func GetEnvSecret(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		fmt.Printf("Environment variable %s not set\n", key)
	}
	return value
}

func GetEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Printf("Environment variable %s is not a bool, using default value: %t\n", key, defaultValue)
			return defaultValue
		}
		return boolValue
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err != nil {
			fmt.Printf("Environment variable %s is not an int, using default value: %d\n", key, defaultValue)
			return defaultValue
		}
		return intValue
	}
	return defaultValue
}

func GetEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return defaultValue
		}
		return intValue
	}
	return defaultValue
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err != nil {
			fmt.Printf("Environment variable %s is not a duration, using default value: %v\n", key, defaultValue)
			return defaultValue
		}
		return duration
	}
	return defaultValue
}

// GetEnvStringSlice splits a comma separated variable, dropping empty entries.
func GetEnvStringSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
