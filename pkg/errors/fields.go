package errors

// Stable machine codes for field-scoped validation failures. The renderer
// keys translated messages off these, so they never change once shipped.
const (
	FieldCodeMinGtMax             = "min_gt_max"
	FieldCodeTooLow               = "too_low"
	FieldCodeNonPositive          = "non_positive"
	FieldCodeExceedsStock         = "exceeds_stock"
	FieldCodeEmptyPurchaser       = "empty_purchaser"
	FieldCodeEmptyPurchaserEmail  = "empty_purchaser_email"
	FieldCodeEmptyReceiver        = "empty_receiver"
	FieldCodeEmptyShipmentAddress = "empty_shipment_address"
	FieldCodePercentOutOfRange    = "percent_out_of_range"
)

// FieldError scopes a validation failure to a single input field. Params
// carries values the renderer interpolates into the human-readable message
// (e.g. the minimum order quantity and its unit of measure).
type FieldError struct {
	Field  string         `json:"field"`
	Code   string         `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

// NewFieldError builds a single-field validation error with the stable
// machine code attached as details.
func NewFieldError(field, fieldCode, message string, params map[string]any) *Error {
	return New(CodeValidation, message).WithDetails([]FieldError{{
		Field:  field,
		Code:   fieldCode,
		Params: params,
	}})
}

// NewFieldErrors wraps a set of field failures in one validation error.
func NewFieldErrors(message string, fields []FieldError) *Error {
	return New(CodeValidation, message).WithDetails(fields)
}

// FieldErrors extracts field-scoped details from err, or nil when err is not
// a validation error carrying them.
func FieldErrors(err error) []FieldError {
	typed := As(err)
	if typed == nil {
		return nil
	}
	fields, ok := typed.Details().([]FieldError)
	if !ok {
		return nil
	}
	return fields
}
