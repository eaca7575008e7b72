package cache

import "strings"

const (
	GlobalKeyPrefix = "kviss"
)

// QuizKey builds the cache key for a persisted quiz.
func QuizKey(quizID string) string {
	return GenerateCacheKey("quiz", "byid", quizID)
}

// GenerateCacheKey generates a cache key for a given service, object type,
// and identifier.
func GenerateCacheKey(serviceName, objectType, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
}
