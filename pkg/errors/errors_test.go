package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	base := New(CodeNotFound, "order not found")
	wrapped := fmt.Errorf("handling request: %w", base)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
	assert.Equal(t, "order not found", typed.Message())

	assert.Nil(t, As(fmt.Errorf("plain failure")))
	assert.Nil(t, As(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "redis unavailable")
	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, cause, err.Unwrap())

	// Wrapping nil degrades to a plain error.
	assert.Nil(t, Wrap(CodeInternal, nil, "no cause").Unwrap())
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NO_SUCH_CODE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)

	meta = MetadataFor(CodeValidation)
	assert.Equal(t, http.StatusBadRequest, meta.HTTPStatus)
	assert.True(t, meta.DetailsAllowed)
}

func TestFieldErrorsExtraction(t *testing.T) {
	err := NewFieldError("quantity", FieldCodeTooLow, "below minimum", map[string]any{"min": "5"})

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "quantity", fields[0].Field)
	assert.Equal(t, FieldCodeTooLow, fields[0].Code)
	assert.Equal(t, "5", fields[0].Params["min"])

	// Survives an fmt wrap on the way up.
	fields = FieldErrors(fmt.Errorf("validating: %w", err))
	require.Len(t, fields, 1)

	assert.Nil(t, FieldErrors(fmt.Errorf("plain failure")))
	assert.Nil(t, FieldErrors(New(CodeValidation, "no details attached")))
}

func TestNewFieldErrorsCollectsAll(t *testing.T) {
	err := NewFieldErrors("form is incomplete", []FieldError{
		{Field: "purchaser", Code: FieldCodeEmptyPurchaser},
		{Field: "receiver", Code: FieldCodeEmptyReceiver},
	})
	assert.Equal(t, CodeValidation, err.Code())
	assert.Len(t, FieldErrors(err), 2)
}
