package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuizID_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{24}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, NewQuizID())
	}
}

func TestNewQuizID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewQuizID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	assert.Len(t, id, 26)
	assert.NotEqual(t, id, NewRequestID())
}
