package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumber(t *testing.T) {
	n := GenerateNumber("ORD")
	parts := strings.Split(n, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 4)

	assert.NotEqual(t, GenerateNumber("ORD"), GenerateNumber("ORD"))
}

func TestDayRange(t *testing.T) {
	at := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	start, end := DayRange(at)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
	}

	assert.NoError(t, ValidateStruct(&input{Name: "Theta"}))

	err := ValidateStruct(&input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")

	err = ValidateStruct(&input{Name: "Theta", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
}
