package core

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NewID returns a new document ID (24 hex characters).
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsID reports whether s looks like a document ID.
func IsID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// Now returns the current UTC time truncated to milliseconds, the precision of the document store.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// UniqueStrings returns the distinct values of ss, keeping their first-seen order.
func UniqueStrings(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// DBOrdering is one "field ASC|DESC" sort clause.
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
