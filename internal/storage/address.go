package storage

import "strings"

// NormalizeAddress - canonical form of an address: lower-cased
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// SameAddress - case-insensitive address comparison
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
