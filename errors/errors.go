package errors

import (
	"fmt"
	"net/http"
)

// AppError is the application error type. Handlers translate it into a JSON
// error response using HTTPCode; everything else becomes a 500.
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements the error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

// Configuration errors: missing environment credentials are fatal to the
// request and never retried.

func ErrConfigMissing(key string) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CONFIG_MISSING,
		Message:  fmt.Sprintf("%s is required", key),
	}
}

// Lookup errors

func ErrRecordingNotFound(recordingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RECORDING_NOT_FOUND,
		Message:  "Recording not found",
	}.WithDetail("recording_id", recordingID)
}

func ErrMeetingTypeNotFound(meetingTypeID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_TYPE_NOT_FOUND,
		Message:  "Meeting type not found",
	}.WithDetail("meeting_type_id", meetingTypeID)
}

func ErrCaseNotFound(caseID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_CASE_NOT_FOUND,
		Message:  "Case not found",
	}.WithDetail("case_id", caseID)
}

func ErrActionItemNotFound(actionItemID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ACTION_ITEM_NOT_FOUND,
		Message:  "Action item not found",
	}.WithDetail("action_item_id", actionItemID)
}

// Provider errors: failures talking to the generative-AI backend. Caught at
// the stage boundary and recorded on the recording, not propagated raw.

func ErrProviderUploadFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROVIDER_UPLOAD_FAILED,
		Message:  "Failed to upload media to AI provider",
	}
}

func ErrProviderFileFailed(detail string) AppError {
	return AppError{
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROVIDER_FILE_FAILED,
		Message:  "AI provider reported a failed file state",
	}.WithDetail("provider_detail", detail)
}

func ErrProviderFileTimeout(attempts int) AppError {
	return AppError{
		HTTPCode: http.StatusGatewayTimeout,
		Code:     ErrorCode_PROVIDER_FILE_TIMEOUT,
		Message:  fmt.Sprintf("provider file not ready after %d attempts", attempts),
	}
}

func ErrProviderRequestFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROVIDER_REQUEST_FAILED,
		Message:  "AI provider request failed",
	}
}

// Parse errors: the model response did not match the declared output format.

func ErrResponseParseFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_RESPONSE_PARSE_FAILED,
		Message:  "Failed to parse AI provider response",
	}
}

// Pipeline errors

func ErrProcessingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROCESSING_FAILED,
		Message:  "Processing failed",
	}
}

func ErrNoTranscript(recordingID string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_NO_TRANSCRIPT,
		Message:  "no transcript available",
	}.WithDetail("recording_id", recordingID)
}

func ErrProcessingInFlight(recordingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PROCESSING_IN_FLIGHT,
		Message:  "Recording is already being processed",
	}.WithDetail("recording_id", recordingID)
}

func ErrInvalidTaskType(task string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_TASK_TYPE,
		Message:  "Invalid processing task type",
	}.WithDetail("task", task)
}

func ErrMissingMedia(recordingID string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_MEDIA,
		Message:  "Recording has no stored media",
	}.WithDetail("recording_id", recordingID)
}

func ErrExportFormatInvalid(format string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EXPORT_FORMAT_INVALID,
		Message:  "Unsupported export format",
	}.WithDetail("format", format)
}

// Infrastructure errors

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrDBFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_FAILED,
		Message:  fmt.Sprintf("Database operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}
