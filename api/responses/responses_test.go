package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
	"github.com/kamalsite/backend/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "chair"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "chair", data["name"])
}

func TestWriteSuccessStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteSuccessMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessMeta(rec, []string{"a", "b"}, pagination.Meta{Page: 1, Size: 4, TotalItems: 2, TotalPages: 1})

	body := decodeBody(t, rec)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 1, meta["page"])
	assert.EqualValues(t, 2, meta["total_items"])
}

func TestWriteErrorValidationExposesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.NewFieldError("quantity", pkgerrors.FieldCodeNonPositive,
		"quantity must be positive", nil)
	WriteError(context.Background(), testLogger(), rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	payload := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])
	assert.Equal(t, "quantity must be positive", payload["message"])

	details := payload["details"].([]any)
	require.Len(t, details, 1)
	field := details[0].(map[string]any)
	assert.Equal(t, "quantity", field["field"])
	assert.Equal(t, pkgerrors.FieldCodeNonPositive, field["code"])
}

func TestWriteErrorInternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec,
		pkgerrors.New(pkgerrors.CodeInternal, "pq: column exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	payload := body["error"].(map[string]any)
	assert.Equal(t, "internal server error", payload["message"])
}

func TestWriteErrorPlainErrorBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	payload := body["error"].(map[string]any)
	assert.Equal(t, "INTERNAL_ERROR", payload["code"])
}

func TestWriteErrorNotFoundUsesOwnMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec,
		pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	payload := body["error"].(map[string]any)
	assert.Equal(t, "product not found", payload["message"])
}
