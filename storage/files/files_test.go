package files

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("http://files.test/")

	url, err := store.Put(context.Background(), "uploads/notes.pdf", strings.NewReader("%PDF"), 4, "")
	require.NoError(t, err)
	assert.Equal(t, "http://files.test/uploads/notes.pdf", url)

	data, ok := store.Get("uploads/notes.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("%PDF"), data)

	_, ok = store.Get("uploads/other.pdf")
	assert.False(t, ok)
}

func TestContentType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "uploads/notes.pdf", want: "application/pdf"},
		{key: "uploads/cover.png", want: "image/png"},
		{key: "uploads/archive", want: "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.key))
		})
	}
}
