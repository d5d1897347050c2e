package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"WHAT time\tis   it", "what time is it"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("jarvis what time is it", "jarvis"))
	assert.True(t, ContainsWord("hey jarvis", "jarvis"))
	assert.False(t, ContainsWord("jarvisse open notepad", "jarvis"))
	assert.False(t, ContainsWord("open notepad", "jarvis"))
	assert.True(t, ContainsWord("anything", ""))
}

func TestStripWord(t *testing.T) {
	assert.Equal(t, "what time is it", StripWord("jarvis what time is it", "jarvis"))
	assert.Equal(t, "open notepad", StripWord("open notepad", "jarvis"))
	assert.Equal(t, "", StripWord("jarvis", "jarvis"))
	// only the first occurrence is removed
	assert.Equal(t, "say jarvis", StripWord("jarvis say jarvis", "jarvis"))
}
