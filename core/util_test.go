package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsID(t *testing.T) {
	assert.True(t, IsID(NewID()))
	assert.False(t, IsID(""))
	assert.False(t, IsID("42"))
	assert.False(t, IsID("zzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, UniqueStrings([]string{"b", "a", "b", "c", "a"}))
	assert.Equal(t, []string{}, UniqueStrings(nil))
}

func TestNow(t *testing.T) {
	now := Now()
	assert.Equal(t, "UTC", now.Location().String())
	assert.Zero(t, now.Nanosecond()%1e6, "millisecond precision")
}

func TestErrors(t *testing.T) {
	notFound := NewNotFoundError("course")
	assert.Equal(t, "course not found", notFound.Error())
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(NewFieldError("code", "code is required")))

	fErr := NewFieldError("code", "code is required")
	vErr, ok := fErr.(*ValidationError)
	if assert.True(t, ok) {
		assert.Equal(t, "code is required", vErr.Error())
		assert.Equal(t, []FieldError{{Field: "code", Error: "code is required"}}, vErr.Fields)
	}
}
