package utils

import "strings"

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NormalizePlate normalizes a vehicle plate for lookup and storage:
// surrounding whitespace is removed and letters are upper-cased, so
// "abc1234 " and "ABC1234" refer to the same vehicle.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// NormalizeCategoryName trims a vehicle category name. Categories are matched
// by name string (not by foreign key), so the stored form must be stable.
func NormalizeCategoryName(name string) string {
	return strings.TrimSpace(name)
}

// ContainsFold reports whether substr occurs within s, case-insensitively.
// Used by the list endpoints' substring search over display fields.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
