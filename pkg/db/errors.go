package db

import "strings"

// IsUniqueViolation reports whether err is a Postgres unique violation.
// Passing a constraintName (e.g. "likes_user_product_key") narrows the
// check to that constraint; without one any duplicate-key failure matches.
// Matching is by message text so the helper also works against the sqlite
// driver the tests run on.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
