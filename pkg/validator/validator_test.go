package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemBody struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"required,gte=1"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(addItemBody{ProductID: "p1", Quantity: 2}))
}

func TestValidate_MissingField(t *testing.T) {
	err := Validate(addItemBody{Quantity: 1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "ProductID")
	assert.Equal(t, "is required", valErr.Fields()["ProductID"])
}

func TestValidate_RangeViolation(t *testing.T) {
	err := Validate(addItemBody{ProductID: "p1", Quantity: -3})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "Quantity")
}
