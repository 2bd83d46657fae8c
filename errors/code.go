package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_HTTP_OK           ErrorCode = 0
	ErrorCode_INTERNAL          ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 2
	ErrorCode_NOT_FOUND         ErrorCode = 3
	ErrorCode_ALREADY_EXISTS    ErrorCode = 4
	ErrorCode_PERMISSION_DENIED ErrorCode = 5
	ErrorCode_UNAUTHENTICATED   ErrorCode = 6
	ErrorCode_FORBIDDEN         ErrorCode = 7

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 100
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 101

	// Query pipeline
	ErrorCode_QUERY_INVALID_UTTERANCE  ErrorCode = 200
	ErrorCode_QUERY_TRANSLATION_FAILED ErrorCode = 201
	ErrorCode_QUERY_NEEDS_CLARIFY      ErrorCode = 202
	ErrorCode_QUERY_EXECUTION_FAILED   ErrorCode = 203
	ErrorCode_QUERY_UNSUPPORTED        ErrorCode = 204

	// Datasets / import
	ErrorCode_DATASET_INVALID_DESCRIPTOR ErrorCode = 300
	ErrorCode_DATASET_FETCH_FAILED       ErrorCode = 301
	ErrorCode_DATASET_IMPORT_FAILED      ErrorCode = 302

	// Export
	ErrorCode_EXPORT_FAILED ErrorCode = 400
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:           "OK",
	ErrorCode_INTERNAL:          "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:  "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:         "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:    "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED: "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:   "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:         "FORBIDDEN",

	ErrorCode_AUTH_INVALID_TOKEN: "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED: "AUTH_TOKEN_EXPIRED",

	ErrorCode_QUERY_INVALID_UTTERANCE:  "QUERY_INVALID_UTTERANCE",
	ErrorCode_QUERY_TRANSLATION_FAILED: "QUERY_TRANSLATION_FAILED",
	ErrorCode_QUERY_NEEDS_CLARIFY:      "QUERY_NEEDS_CLARIFY",
	ErrorCode_QUERY_EXECUTION_FAILED:   "QUERY_EXECUTION_FAILED",
	ErrorCode_QUERY_UNSUPPORTED:        "QUERY_UNSUPPORTED",

	ErrorCode_DATASET_INVALID_DESCRIPTOR: "DATASET_INVALID_DESCRIPTOR",
	ErrorCode_DATASET_FETCH_FAILED:       "DATASET_FETCH_FAILED",
	ErrorCode_DATASET_IMPORT_FAILED:      "DATASET_IMPORT_FAILED",

	ErrorCode_EXPORT_FAILED: "EXPORT_FAILED",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
