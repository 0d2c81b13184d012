package entities

import "errors"

// Sentinel errors for best-effort assignee resolution. Callers must handle
// both explicitly; neither is ever fatal to processing.
var (
	ErrAssigneeNotFound  = errors.New("assignee not found")
	ErrAssigneeAmbiguous = errors.New("assignee name matches multiple active members")
)
