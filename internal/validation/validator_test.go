package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m4log/yard-ledger/internal/validation"
)

// Check digits below were computed with the stated algorithm:
//   CSQU3054383 -> weighted sum 6185, 6185 mod 11 = 3
//   HLXU1234561 -> weighted sum 5600, 5600 mod 11 = 1
//   MSKU3000000 -> weighted sum 472, 472 mod 11 = 10, which collapses to 0
func TestValidateContainerNumber_KnownValid(t *testing.T) {
	valid := []string{
		"CSQU3054383",
		"HLXU1234561",
		"MSKU3000000", // exercises the 10 -> 0 collapse
	}
	for _, num := range valid {
		assert.True(t, validation.ValidateContainerNumber(num), num)
	}
}

func TestValidateContainerNumber_NormalizesBeforeChecking(t *testing.T) {
	// Lowercase, separators and whitespace are stripped before validation.
	assert.True(t, validation.ValidateContainerNumber("csqu 305.438-3"))
	assert.Equal(t, "CSQU3054383", validation.NormalizeContainerNumber("csqu 305.438-3"))
}

func TestValidateContainerNumber_SingleCharacterMutationFlips(t *testing.T) {
	base := "CSQU3054383"
	for i := 0; i < len(base); i++ {
		mutated := []byte(base)
		if mutated[i] == '9' {
			mutated[i] = '1'
		} else {
			mutated[i] = '9'
		}
		assert.False(t, validation.ValidateContainerNumber(string(mutated)),
			"mutation at index %d should invalidate", i)
	}
}

func TestValidateContainerNumber_FailsClosed(t *testing.T) {
	invalid := []string{
		"",
		"MSKU",            // too short
		"12345678901",     // no owner letters
		"MSKU12345678",    // too long after normalization
		"MSK13000000",     // three letters
		"MSKU3000001",     // wrong check digit
		"!!!!???",         // normalizes to empty
		"CSQU305438",      // check digit missing
	}
	for _, num := range invalid {
		assert.False(t, validation.ValidateContainerNumber(num), num)
	}
}

func TestValidateNationalID_KnownValid(t *testing.T) {
	assert.True(t, validation.ValidateNationalID("52998224725"))
	assert.True(t, validation.ValidateNationalID("111.444.777-35"), "punctuated input")
}

func TestValidateNationalID_AllIdenticalDigitsRejected(t *testing.T) {
	for d := byte('0'); d <= '9'; d++ {
		id := string(make([]byte, 0, 11))
		for i := 0; i < 11; i++ {
			id += string(d)
		}
		assert.False(t, validation.ValidateNationalID(id), id)
	}
}

func TestValidateNationalID_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"1234567890",  // ten digits
		"12345678901", // stage 2 check digit wrong
		"52998224726", // last digit mutated
		"abc",         // no digits at all
	}
	for _, id := range invalid {
		assert.False(t, validation.ValidateNationalID(id), id)
	}
}

func TestFormatNationalID(t *testing.T) {
	assert.Equal(t, "529.982.247-25", validation.FormatNationalID("52998224725"))
	assert.Equal(t, "529.982.247-25", validation.FormatNationalID("529.982.247-25"))
	assert.Equal(t, "12345", validation.FormatNationalID("12345"), "short input returned as bare digits")
}
