package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCUILValidation(t *testing.T) {
	InitValidator()

	assert.Nil(t, Validate.Var("20304050607", "cuil"))

	// ten digits fails before any network or database call happens
	assert.NotNil(t, Validate.Var("1234567890", "cuil"))
	assert.NotNil(t, Validate.Var("123456789012", "cuil"))
	assert.NotNil(t, Validate.Var("2030405060a", "cuil"))
	assert.NotNil(t, Validate.Var("", "cuil"))
}

func TestPeriodValidation(t *testing.T) {
	InitValidator()

	assert.Nil(t, Validate.Var("2024-01", "period"))
	assert.Nil(t, Validate.Var("2024-12", "period"))

	assert.NotNil(t, Validate.Var("2024-13", "period"))
	assert.NotNil(t, Validate.Var("2024-00", "period"))
	assert.NotNil(t, Validate.Var("2024-1", "period"))
	assert.NotNil(t, Validate.Var("01-2024", "period"))
	assert.NotNil(t, Validate.Var("", "period"))
}
