package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
)

// Survey / Validation Error Codes
const (
	ErrCodeMissingField    ErrorCode = "SRV_001"
	ErrCodeInvalidInput    ErrorCode = "SRV_002"
	ErrCodeUnknownPriority ErrorCode = "SRV_003"
	ErrCodeUnknownBudget   ErrorCode = "SRV_004"
)

// Catalog Error Codes
const (
	ErrCodeCatalogMalformed   ErrorCode = "CAT_001"
	ErrCodeCatalogEmpty       ErrorCode = "CAT_002"
	ErrCodeCatalogUnavailable ErrorCode = "CAT_003"
	ErrCodeCatalogDuplicate   ErrorCode = "CAT_004"
)

// Recommendation Engine Error Codes
const (
	ErrCodeComputationFailed ErrorCode = "ENG_001"
	ErrCodePricingFailed     ErrorCode = "ENG_002"
	ErrCodeClimateInvalid    ErrorCode = "ENG_003"
)

// Messaging Error Codes
const (
	ErrCodePublishFailed  ErrorCode = "MSG_001"
	ErrCodeProducerClosed ErrorCode = "MSG_002"
)

// Short aliases used at call sites throughout the codebase.
const (
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict

	CodeMissingField     = ErrCodeMissingField
	CodeInvalidInput     = ErrCodeInvalidInput
	CodeCatalogMalformed = ErrCodeCatalogMalformed
	CodeComputation      = ErrCodeComputationFailed
	CodeDatabaseError    = ErrCodeDatabaseError
	CodeCacheError       = ErrCodeCacheError
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeMissingField:    http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeUnknownPriority: http.StatusBadRequest,
	ErrCodeUnknownBudget:   http.StatusBadRequest,

	ErrCodeCatalogMalformed:   http.StatusInternalServerError,
	ErrCodeCatalogEmpty:       http.StatusInternalServerError,
	ErrCodeCatalogUnavailable: http.StatusServiceUnavailable,
	ErrCodeCatalogDuplicate:   http.StatusInternalServerError,

	ErrCodeComputationFailed: http.StatusInternalServerError,
	ErrCodePricingFailed:     http.StatusInternalServerError,
	ErrCodeClimateInvalid:    http.StatusBadRequest,

	ErrCodePublishFailed:  http.StatusInternalServerError,
	ErrCodeProducerClosed: http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
// Unmapped codes default to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the code maps to a 4xx status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the code maps to a 5xx status.
func IsServerError(code ErrorCode) bool {
	return HTTPStatusForCode(code) >= 500
}
