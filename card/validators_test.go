package card

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	v := NewFieldValidator(4, Numeric())

	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"empty is valid", "", nil},
		{"digits are valid", "1234", nil},
		{"letters fail", "12a4", ErrNotNumeric},
		{"spaces fail", "12 4", ErrNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.text)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExpirationRules(t *testing.T) {
	now := time.Now()
	futureYY := (now.Year() + 2) % 100
	pastYY := (now.Year() - 1) % 100

	v := NewFieldValidator(expirationLength, Numeric(), ExpirationMonth(), NotExpired())

	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"single digit is still valid", "1", nil},
		{"month thirteen fails", fmt.Sprintf("13%02d", futureYY), ErrBadMonth},
		{"month zero fails", fmt.Sprintf("00%02d", futureYY), ErrBadMonth},
		{"future date passes", fmt.Sprintf("12%02d", futureYY), nil},
		{"past year fails", fmt.Sprintf("12%02d", pastYY), ErrExpired},
		{"current month is not expired", fmt.Sprintf("%02d%02d", int(now.Month()), now.Year()%100), nil},
		{"non numeric fails before date rules", "ab25", ErrNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.text)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFieldValidatorComplete(t *testing.T) {
	v := NewFieldValidator(4, Numeric())

	assert.False(t, v.Complete(""), "empty is incomplete")
	assert.False(t, v.Complete("123"), "short is incomplete")
	assert.True(t, v.Complete("1234"))
	assert.False(t, v.Complete("12a4"), "invalid can never be complete")
	assert.Equal(t, 4, v.TargetLength())
}
