package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		ok       bool
	}{
		{name: "plain number", raw: "200", expected: 200, ok: true},
		{name: "currency prefix", raw: "$150", expected: 150, ok: true},
		{name: "free text around the amount", raw: "around 300 dollars", expected: 300, ok: true},
		{name: "thousands separator", raw: "1,500", expected: 1500, ok: true},
		{name: "no digits at all", raw: "whatever it takes", ok: false},
		{name: "empty string", raw: "", ok: false},
		{name: "absurdly large amount", raw: "99999999999999999999", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := ParseBudget(tt.raw)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, amount)
		})
	}
}

func TestValidActivityStatus(t *testing.T) {
	for _, status := range []string{
		ActivityStatusDeciding,
		ActivityStatusPendingReview,
		ActivityStatusApproved,
		ActivityStatusRejected,
		ActivityStatusActive,
		ActivityStatusCompleted,
		ActivityStatusCancelled,
	} {
		assert.True(t, ValidActivityStatus(status), status)
	}

	assert.False(t, ValidActivityStatus("archived"))
	assert.False(t, ValidActivityStatus(""))
}
