package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Total    float64 `json:"total" validate:"gte=0"`
}

func TestDecodeAndValidate_Success(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"email": "jane@example.com", "quantity": 2, "total": 9.5}`,
	))

	var req sampleRequest
	err := DecodeAndValidate(r, &req)

	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", req.Email)
	assert.Equal(t, 2, req.Quantity)
}

func TestDecodeAndValidate_MalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

	var req sampleRequest
	err := DecodeAndValidate(r, &req)

	assert.EqualError(t, err, "invalid request body")
}

func TestDecodeAndValidate_FieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"email": "not-an-email", "quantity": 0, "total": -1}`,
	))

	var req sampleRequest
	err := DecodeAndValidate(r, &req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "quantity is required")
	assert.Contains(t, err.Error(), "total must be at least 0")
}

func TestStruct_GreaterThan(t *testing.T) {
	err := Struct(&sampleRequest{Email: "jane@example.com", Quantity: -3, Total: 1})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be greater than 0")
}
