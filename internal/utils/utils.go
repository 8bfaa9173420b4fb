package utils

import "strings"

// CalculateEntries calculates giveaway entries earned for a purchase amount
// in gems. Brackets reward bigger purchases more than linearly.
func CalculateEntries(amount float64) int {
	switch {
	case amount >= 2500:
		return 40
	case amount >= 1000:
		return 15
	case amount >= 500:
		return 6
	case amount >= 250:
		return 3
	case amount >= 100:
		return 1
	default:
		return 0
	}
}

// NormalizeUsername canonicalizes a community username for storage and
// lookups. Usernames are case-insensitive; surrounding whitespace and a
// leading @ are noise.
func NormalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	username = strings.TrimPrefix(username, "@")
	return strings.ToLower(username)
}
