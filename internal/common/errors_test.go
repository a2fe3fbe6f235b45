package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		other    error
	}{
		{"validation", ErrValidation, ErrAddressNotFound},
		{"address not found", ErrAddressNotFound, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("context: %w", tt.sentinel)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.False(t, errors.Is(err, tt.other))
		})
	}
}
