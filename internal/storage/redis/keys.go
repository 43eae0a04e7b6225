package redis

import "fmt"

// Key prefix for all connectn data
const keyPrefix = "connectn"

// presetKey returns the Redis key for a Preset
func presetKey(name string) string {
	return fmt.Sprintf("%s:preset:%s", keyPrefix, name)
}

// presetIndexKey returns the Redis key for the SET of saved preset keys
func presetIndexKey() string {
	return fmt.Sprintf("%s:idx:presets", keyPrefix)
}
