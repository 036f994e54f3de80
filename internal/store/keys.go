package store

import "strings"

// Partition keys. Resources live in two independently-written
// partitions; responses live in one partition per user.
const (
	KeyResourceRequests = "resourceRequests"
	KeyResources        = "resources"
	ResponseKeyPrefix   = "responses_"
)

// ResponseKey returns the partition key for a user's responses.
func ResponseKey(userID string) string {
	return ResponseKeyPrefix + userID
}

// WatchedKey reports whether a change to the named key should trigger
// a reload of the store.
func WatchedKey(key string) bool {
	return key == KeyResourceRequests ||
		key == KeyResources ||
		strings.HasPrefix(key, ResponseKeyPrefix)
}
