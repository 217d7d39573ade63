package card

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"forage/model"
)

func TestPINField(t *testing.T) {
	t.Run("initial state", func(t *testing.T) {
		f := NewPINField()
		state := f.State()
		assert.True(t, state.IsEmpty)
		assert.True(t, state.IsValid)
		assert.False(t, state.IsComplete)
	})

	t.Run("non digits are dropped", func(t *testing.T) {
		f := NewPINField()
		state := f.SetText("1a2b")
		assert.Equal(t, "12", state.RawDigits)
		assert.True(t, state.IsValid)
		assert.False(t, state.IsComplete)
	})

	t.Run("clamped to four digits", func(t *testing.T) {
		f := NewPINField()
		state := f.SetText("123456")
		assert.Equal(t, "1234", state.RawDigits)
		assert.True(t, state.IsComplete)
	})

	t.Run("complete implies valid", func(t *testing.T) {
		f := NewPINField()
		state := f.SetText("1234")
		assert.True(t, state.IsComplete)
		assert.True(t, state.IsValid)
		assert.Equal(t, "1234", f.PlainText())
	})

	t.Run("clear preserves focus", func(t *testing.T) {
		f := NewPINField()
		f.Focus()
		f.SetText("1234")
		state := f.Clear()
		assert.True(t, state.IsEmpty)
		assert.True(t, state.IsFirstResponder)
		assert.Empty(t, f.PlainText())
	})
}

func TestPANField(t *testing.T) {
	t.Run("short input is valid but incomplete", func(t *testing.T) {
		f := NewPANField()
		state := f.SetText("50768")
		assert.True(t, state.IsValid)
		assert.False(t, state.IsComplete)
		assert.Equal(t, "50768", f.MaskedText())
	})

	t.Run("known issuer at expected length is complete", func(t *testing.T) {
		f := NewPANField()
		state := f.SetText("5076801234567890")
		assert.True(t, state.IsValid)
		assert.True(t, state.IsComplete)
		assert.Equal(t, "ALABAMA", f.USState())
		assert.Equal(t, "5076 8012 3456 7890", f.MaskedText())
	})

	t.Run("unknown prefix is invalid", func(t *testing.T) {
		f := NewPANField()
		state := f.SetText("111111")
		assert.False(t, state.IsValid)
		assert.False(t, state.IsComplete)
		assert.ErrorIs(t, state.Err, ErrUnknownIssuer)
	})

	t.Run("input trimmed to issuer length", func(t *testing.T) {
		f := NewPANField()
		state := f.SetText("50768012345678901234")
		assert.Equal(t, "5076801234567890", state.RawDigits)
		assert.True(t, state.IsComplete)
	})

	t.Run("unknown prefix trimmed to sixteen", func(t *testing.T) {
		f := NewPANField()
		state := f.SetText("11111111111111111111")
		assert.Len(t, state.RawDigits, 16)
		assert.False(t, state.IsValid)
	})

	t.Run("nineteen digit issuer uses its grouping", func(t *testing.T) {
		f := NewPANField()
		f.SetText("5077031234567890123")
		assert.Equal(t, "507703 1234 5678 901 23", f.MaskedText())
		assert.Equal(t, "MAINE", f.USState())
	})

	t.Run("classification matches the acceptance contract", func(t *testing.T) {
		f := NewPANField()
		f.SetText("5076801234567890")
		// The live field is complete at the expected length while the
		// classifier accepts one digit past it.
		assert.True(t, f.State().IsComplete)
		assert.Equal(t, StatusIdentifying, f.Classification().Status)
	})

	t.Run("clear keeps the environment binding", func(t *testing.T) {
		f := NewPANFieldInEnvironment(model.EnvProd)
		f.SetText("9999000000000000")
		f.Clear()
		state := f.SetText("9999000000000000")
		assert.False(t, state.IsValid, "prod binding must survive Clear")
	})

	t.Run("clear resets everything but focus", func(t *testing.T) {
		f := NewPANField()
		f.Focus()
		f.SetText("5076801234567890")
		state := f.Clear()
		assert.True(t, state.IsEmpty)
		assert.True(t, state.IsFirstResponder)
		assert.Empty(t, f.MaskedText())
		assert.Empty(t, f.USState())
	})
}

func TestPANFieldTestCards(t *testing.T) {
	tests := []struct {
		name         string
		env          model.Environment
		digits       string
		wantValid    bool
		wantComplete bool
	}{
		{
			name: "9999 card complete at sixteen in sandbox",
			env:  model.EnvSandbox, digits: "9999" + strings.Repeat("0", 12),
			wantValid: true, wantComplete: true,
		},
		{
			name: "9999 card complete at nineteen in sandbox",
			env:  model.EnvSandbox, digits: "9999" + strings.Repeat("0", 15),
			wantValid: true, wantComplete: true,
		},
		{
			name: "9999 card below sixteen is valid but incomplete",
			env:  model.EnvSandbox, digits: "9999" + strings.Repeat("0", 11),
			wantValid: true, wantComplete: false,
		},
		{
			name: "capture error card accepted in dev",
			env:  model.EnvDev, digits: "44444444444444" + strings.Repeat("4", 2),
			wantValid: true, wantComplete: true,
		},
		{
			name: "balance error card accepted in cert",
			env:  model.EnvCert, digits: "55555555555555" + strings.Repeat("5", 2),
			wantValid: true, wantComplete: true,
		},
		{
			name: "654321 card accepted in staging",
			env:  model.EnvStaging, digits: "654321" + strings.Repeat("0", 10),
			wantValid: true, wantComplete: true,
		},
		{
			name: "test cards get no bypass in prod",
			env:  model.EnvProd, digits: "9999" + strings.Repeat("0", 12),
			wantValid: false, wantComplete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPANFieldInEnvironment(tt.env)
			state := f.SetText(tt.digits)
			assert.Equal(t, tt.wantValid, state.IsValid)
			assert.Equal(t, tt.wantComplete, state.IsComplete)
			assert.Empty(t, f.USState(), "test cards never map to an issuer")
		})
	}

	t.Run("test card input is trimmed at nineteen", func(t *testing.T) {
		f := NewPANFieldInEnvironment(model.EnvSandbox)
		state := f.SetText("9999" + strings.Repeat("0", 20))
		assert.Len(t, state.RawDigits, 19)
		assert.True(t, state.IsComplete)
	})
}

func TestExpirationField(t *testing.T) {
	future := fmt.Sprintf("12%02d", (time.Now().Year()+2)%100)

	t.Run("masks as MM slash YY", func(t *testing.T) {
		f := NewExpirationField()
		state := f.SetText(future)
		assert.True(t, state.IsComplete)
		assert.Equal(t, future[:2]+"/"+future[2:], f.MaskedText())
		assert.Equal(t, 12, f.Month())
		assert.Equal(t, time.Now().Year()+2, f.Year())
	})

	t.Run("accepts already masked input", func(t *testing.T) {
		f := NewExpirationField()
		state := f.SetText(future[:2] + "/" + future[2:])
		assert.True(t, state.IsComplete)
		assert.Equal(t, future, state.RawDigits)
	})

	t.Run("incomplete reports zero month and year", func(t *testing.T) {
		f := NewExpirationField()
		f.SetText("12")
		assert.Equal(t, 0, f.Month())
		assert.Equal(t, 0, f.Year())
	})

	t.Run("invalid month", func(t *testing.T) {
		f := NewExpirationField()
		state := f.SetText("13" + future[2:])
		assert.False(t, state.IsValid)
		assert.ErrorIs(t, state.Err, ErrBadMonth)
	})

	t.Run("expired date", func(t *testing.T) {
		f := NewExpirationField()
		past := fmt.Sprintf("01%02d", (time.Now().Year()-1)%100)
		state := f.SetText(past)
		assert.False(t, state.IsValid)
		assert.ErrorIs(t, state.Err, ErrExpired)
	})
}
