package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserID(t *testing.T) {
	a := NewUserID()
	b := NewUserID()

	assert.NotEqual(t, a, b)
	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"user_1b4e28ba-2fa1-41d2-883f-0016d3cca427", true},
		{"1b4e28ba-2fa1-41d2-883f-0016d3cca427", false},
		{"user_", false},
		{"user_not-a-uuid", false},
		{"user_{1b4e28ba-2fa1-41d2-883f-0016d3cca427}", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id))
		})
	}
}
