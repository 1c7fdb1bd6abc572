package utils

// StringOrEmpty dereferences an optional string, returning "" for nil.
// Used when rendering nullable columns into export rows.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
