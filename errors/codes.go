package errors

// ErrorCode identifies an application error class in API responses.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_CONFLICT          ErrorCode = 1006

	// Configuration
	ErrorCode_CONFIG_MISSING ErrorCode = 2000

	// Lookup
	ErrorCode_RECORDING_NOT_FOUND    ErrorCode = 3000
	ErrorCode_MEETING_TYPE_NOT_FOUND ErrorCode = 3001
	ErrorCode_CASE_NOT_FOUND         ErrorCode = 3002
	ErrorCode_ACTION_ITEM_NOT_FOUND  ErrorCode = 3003

	// Provider
	ErrorCode_PROVIDER_UPLOAD_FAILED  ErrorCode = 4000
	ErrorCode_PROVIDER_FILE_FAILED    ErrorCode = 4001
	ErrorCode_PROVIDER_FILE_TIMEOUT   ErrorCode = 4002
	ErrorCode_PROVIDER_REQUEST_FAILED ErrorCode = 4003

	// Parse
	ErrorCode_RESPONSE_PARSE_FAILED ErrorCode = 5000

	// Pipeline
	ErrorCode_PROCESSING_FAILED     ErrorCode = 6000
	ErrorCode_NO_TRANSCRIPT         ErrorCode = 6001
	ErrorCode_PROCESSING_IN_FLIGHT  ErrorCode = 6002
	ErrorCode_REPORT_RENDER_FAILED  ErrorCode = 6003
	ErrorCode_INVALID_TASK_TYPE     ErrorCode = 6004
	ErrorCode_MISSING_MEDIA         ErrorCode = 6005
	ErrorCode_EXPORT_FORMAT_INVALID ErrorCode = 6006

	// Infrastructure
	ErrorCode_STORAGE_FAILED ErrorCode = 7000
	ErrorCode_DB_FAILED      ErrorCode = 7001
	ErrorCode_CACHE_FAILED   ErrorCode = 7002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                "OK",
	ErrorCode_INTERNAL:               "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:       "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:              "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:         "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:      "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:        "UNAUTHENTICATED",
	ErrorCode_CONFLICT:               "CONFLICT",
	ErrorCode_CONFIG_MISSING:         "CONFIG_MISSING",
	ErrorCode_RECORDING_NOT_FOUND:    "RECORDING_NOT_FOUND",
	ErrorCode_MEETING_TYPE_NOT_FOUND: "MEETING_TYPE_NOT_FOUND",
	ErrorCode_CASE_NOT_FOUND:         "CASE_NOT_FOUND",
	ErrorCode_ACTION_ITEM_NOT_FOUND:  "ACTION_ITEM_NOT_FOUND",
	ErrorCode_PROVIDER_UPLOAD_FAILED: "PROVIDER_UPLOAD_FAILED",
	ErrorCode_PROVIDER_FILE_FAILED:   "PROVIDER_FILE_FAILED",
	ErrorCode_PROVIDER_FILE_TIMEOUT:  "PROVIDER_FILE_TIMEOUT",
	ErrorCode_PROVIDER_REQUEST_FAILED: "PROVIDER_REQUEST_FAILED",
	ErrorCode_RESPONSE_PARSE_FAILED:  "RESPONSE_PARSE_FAILED",
	ErrorCode_PROCESSING_FAILED:      "PROCESSING_FAILED",
	ErrorCode_NO_TRANSCRIPT:          "NO_TRANSCRIPT",
	ErrorCode_PROCESSING_IN_FLIGHT:   "PROCESSING_IN_FLIGHT",
	ErrorCode_REPORT_RENDER_FAILED:   "REPORT_RENDER_FAILED",
	ErrorCode_INVALID_TASK_TYPE:      "INVALID_TASK_TYPE",
	ErrorCode_MISSING_MEDIA:          "MISSING_MEDIA",
	ErrorCode_EXPORT_FORMAT_INVALID:  "EXPORT_FORMAT_INVALID",
	ErrorCode_STORAGE_FAILED:         "STORAGE_FAILED",
	ErrorCode_DB_FAILED:              "DB_FAILED",
	ErrorCode_CACHE_FAILED:           "CACHE_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
