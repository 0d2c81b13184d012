package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// ReplaceForRecording deletes all participants of a recording and inserts
	// the given rows in one transaction
	ReplaceForRecording(ctx context.Context, recordingID uuid.UUID, participants []*entities.Participant) error

	// FindByRecording retrieves all participants of a recording
	FindByRecording(ctx context.Context, recordingID uuid.UUID) ([]*entities.Participant, error)
}
