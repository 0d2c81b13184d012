package processing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
)

// InsightsService derives task suggestions from action items when a recording
// resolves to a case context.
type InsightsService struct {
	memberRepo repositories.MemberRepository
	caseRepo   repositories.CaseRepository
	logger     *zap.Logger
}

// NewInsightsService creates an insights service
func NewInsightsService(memberRepo repositories.MemberRepository, caseRepo repositories.CaseRepository, logger *zap.Logger) *InsightsService {
	return &InsightsService{
		memberRepo: memberRepo,
		caseRepo:   caseRepo,
		logger:     logger,
	}
}

// FindUserIDByName resolves a member full name within an organization.
// Returns ErrAssigneeNotFound when no active member matches and
// ErrAssigneeAmbiguous when more than one does: the resolver never guesses
// between same-named members.
func (s *InsightsService) FindUserIDByName(ctx context.Context, organizationID uuid.UUID, fullName string) (uuid.UUID, error) {
	if fullName == "" {
		return uuid.Nil, entities.ErrAssigneeNotFound
	}

	members, err := s.memberRepo.FindActiveByName(ctx, organizationID, fullName)
	if err != nil {
		return uuid.Nil, err
	}
	switch len(members) {
	case 0:
		return uuid.Nil, entities.ErrAssigneeNotFound
	case 1:
		return members[0].ID, nil
	default:
		return uuid.Nil, entities.ErrAssigneeAmbiguous
	}
}

// ResolveCase picks the case context for a recording: an explicit case
// reference wins; otherwise the analysis-extracted case identifier is looked
// up. Returns uuid.Nil when no case context exists.
func (s *InsightsService) ResolveCase(ctx context.Context, recording *entities.Recording, caseIdentifier *string) uuid.UUID {
	if recording.CaseID != nil {
		return *recording.CaseID
	}
	if caseIdentifier == nil || *caseIdentifier == "" {
		return uuid.Nil
	}

	legalCase, err := s.caseRepo.FindByCaseNumber(ctx, recording.OrganizationID, *caseIdentifier)
	if err != nil || legalCase == nil {
		if err != nil && s.logger != nil {
			s.logger.Warn("case identifier lookup failed",
				zap.String("case_identifier", *caseIdentifier),
				zap.Error(err),
			)
		}
		return uuid.Nil
	}
	return legalCase.ID
}

// BuildTaskInsights produces one suggestion per action item. Assignee
// resolution is best-effort: ambiguous or missing names simply leave the
// suggested assignee empty and lower the confidence.
func (s *InsightsService) BuildTaskInsights(ctx context.Context, recording *entities.Recording, caseID uuid.UUID, actionItems []*entities.ActionItem) []*entities.TaskInsight {
	if caseID == uuid.Nil {
		return nil
	}

	insights := make([]*entities.TaskInsight, 0, len(actionItems))
	for _, item := range actionItems {
		insight := &entities.TaskInsight{
			ID:                uuid.New(),
			RecordingID:       recording.ID,
			ActionItemID:      item.ID,
			CaseID:            caseID,
			SuggestedTitle:    item.Task,
			SuggestedPriority: item.Priority,
			SuggestedDueDate:  item.DueDate,
			Confidence:        0.5,
		}
		if item.Context != nil && *item.Context != "" {
			insight.SuggestedDescription = item.Context
			insight.Confidence += 0.2
		}

		if item.Assignee != nil && *item.Assignee != "" {
			memberID, err := s.FindUserIDByName(ctx, recording.OrganizationID, *item.Assignee)
			switch {
			case err == nil:
				insight.SuggestedAssigneeID = &memberID
				insight.Confidence += 0.3
			case errors.Is(err, entities.ErrAssigneeNotFound), errors.Is(err, entities.ErrAssigneeAmbiguous):
				if s.logger != nil {
					s.logger.Info("assignee not resolved",
						zap.String("assignee", *item.Assignee),
						zap.String("reason", err.Error()),
					)
				}
			default:
				if s.logger != nil {
					s.logger.Warn("assignee lookup failed", zap.Error(err))
				}
			}
		}

		insights = append(insights, insight)
	}
	return insights
}
