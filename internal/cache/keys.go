package cache

import "strings"

const (
	GlobalKeyPrefix = "topicquiz"

	ServiceAttempt = "attempt"
	ServiceContent = "content"
)

// GenerateCacheKey builds "<prefix>:<service>:<object>:<id>[:<p1_p2...>]".
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// AttemptHistoryKey is the cache entry holding a user's formatted history.
func AttemptHistoryKey(userID string) string {
	return GenerateCacheKey(ServiceAttempt, "history", userID)
}

// ContentKey caches a generated content payload (articles, documentation, search answers).
func ContentKey(kind, topic, subtopic string) string {
	return GenerateCacheKey(ServiceContent, kind, normalizeKeyPart(topic), normalizeKeyPart(subtopic))
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
