package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("price", 0.01))
	assert.NoError(t, ValidateAmount("price", 100))

	err := ValidateAmount("price", 0)
	assert.ErrorContains(t, err, "price")
	err = ValidateAmount("amount", -5)
	assert.ErrorContains(t, err, "amount")
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2025-01-31"))
	assert.NoError(t, ValidateDate("2024-02-29")) // leap day

	for _, bad := range []string{"", "31-01-2025", "2025/01/31", "2025-13-01", "2025-02-30", "yesterday"} {
		assert.Error(t, ValidateDate(bad), "date=%q", bad)
	}
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("title", "Lunch"))

	err := ValidateRequired("title", "")
	assert.ErrorContains(t, err, "title")
	err = ValidateRequired("name", "   ")
	assert.ErrorContains(t, err, "name")
}
