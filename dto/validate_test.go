package dto

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBarnRequest(t *testing.T) {
	require.NoError(t, Validate(BarnRequest{Name: "Trại A"}))

	err := Validate(BarnRequest{})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "Name (required)")
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, Validate(SupplierRequest{Code: "S1", Name: "Nhà cung cấp", Phone: "0912345678"}))
	assert.NoError(t, Validate(SupplierRequest{Code: "S1", Name: "Nhà cung cấp", Phone: "+84912345678"}))
	assert.NoError(t, Validate(SupplierRequest{Code: "S1", Name: "Nhà cung cấp"}))

	err := Validate(SupplierRequest{Code: "S1", Name: "Nhà cung cấp", Phone: "12ab"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Phone (phone)")
}

func TestValidateNestedDetails(t *testing.T) {
	req := ProcurementRequest{
		Name:    "Gói thầu bò",
		Details: []ProcurementDetailRequest{{SpeciesID: 1, RequiredQuantity: 0}},
	}
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RequiredQuantity (gt=0)")

	req.Details[0].RequiredQuantity = 3
	assert.NoError(t, Validate(req))
}

func TestValidateStatusOneOf(t *testing.T) {
	assert.NoError(t, Validate(OrderStatusRequest{Status: "PREPARING"}))
	assert.Error(t, Validate(OrderStatusRequest{Status: "NEW"}))
}
