package redis

import "fmt"

// Key prefix for all zonehunt data
const keyPrefix = "zonehunt"

// accountKey returns the Redis key for a RegisteredPlayer
func accountKey(username string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, username)
}

// accountsIndexKey returns the Redis key for the SET of registered usernames
func accountsIndexKey() string {
	return fmt.Sprintf("%s:idx:accounts", keyPrefix)
}
