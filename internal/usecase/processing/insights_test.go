package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

func TestFindUserIDByNameAmbiguous(t *testing.T) {
	orgID := uuid.New()
	members := newFakeMemberRepo()
	members.add(&entities.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, FullName: "Alex Kim", IsActive: true})
	members.add(&entities.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, FullName: "Alex Kim", IsActive: true})

	svc := NewInsightsService(members, newFakeCaseRepo(), nil)

	_, err := svc.FindUserIDByName(context.Background(), orgID, "Alex Kim")
	if !errors.Is(err, entities.ErrAssigneeAmbiguous) {
		t.Errorf("expected ErrAssigneeAmbiguous, got %v", err)
	}
}

func TestFindUserIDByNameNotFound(t *testing.T) {
	svc := NewInsightsService(newFakeMemberRepo(), newFakeCaseRepo(), nil)

	_, err := svc.FindUserIDByName(context.Background(), uuid.New(), "Nobody Here")
	if !errors.Is(err, entities.ErrAssigneeNotFound) {
		t.Errorf("expected ErrAssigneeNotFound, got %v", err)
	}
}

func TestFindUserIDByNameUnique(t *testing.T) {
	orgID := uuid.New()
	member := &entities.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, FullName: "Dana Reyes", IsActive: true}
	members := newFakeMemberRepo()
	members.add(member)

	svc := NewInsightsService(members, newFakeCaseRepo(), nil)

	id, err := svc.FindUserIDByName(context.Background(), orgID, "Dana Reyes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != member.ID {
		t.Errorf("resolved wrong member: %s", id)
	}
}

func TestBuildTaskInsightsNoCaseContext(t *testing.T) {
	svc := NewInsightsService(newFakeMemberRepo(), newFakeCaseRepo(), nil)
	recording := &entities.Recording{ID: uuid.New(), OrganizationID: uuid.New()}

	insights := svc.BuildTaskInsights(context.Background(), recording, uuid.Nil, []*entities.ActionItem{
		{ID: uuid.New(), Task: "do something"},
	})
	if insights != nil {
		t.Errorf("expected no insights without a case context, got %d", len(insights))
	}
}

func TestBuildTaskInsightsResolvesAssignee(t *testing.T) {
	orgID := uuid.New()
	member := &entities.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, FullName: "Dana Reyes", IsActive: true}
	members := newFakeMemberRepo()
	members.add(member)
	// a second, ambiguous name
	members.add(&entities.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, FullName: "Alex Kim", IsActive: true})
	members.add(&entities.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, FullName: "Alex Kim", IsActive: true})

	svc := NewInsightsService(members, newFakeCaseRepo(), nil)

	recording := &entities.Recording{ID: uuid.New(), OrganizationID: orgID}
	caseID := uuid.New()
	resolved := "Dana Reyes"
	ambiguous := "Alex Kim"
	items := []*entities.ActionItem{
		{ID: uuid.New(), Task: "file motion", Assignee: &resolved, Priority: "high"},
		{ID: uuid.New(), Task: "call client", Assignee: &ambiguous, Priority: "medium"},
		{ID: uuid.New(), Task: "unassigned task", Priority: "low"},
	}

	insights := svc.BuildTaskInsights(context.Background(), recording, caseID, items)
	if len(insights) != 3 {
		t.Fatalf("expected one insight per action item, got %d", len(insights))
	}
	if insights[0].SuggestedAssigneeID == nil || *insights[0].SuggestedAssigneeID != member.ID {
		t.Error("unique assignee should resolve")
	}
	if insights[1].SuggestedAssigneeID != nil {
		t.Error("ambiguous assignee must not be guessed")
	}
	if insights[2].SuggestedAssigneeID != nil {
		t.Error("missing assignee must stay unresolved")
	}
	for _, insight := range insights {
		if insight.CaseID != caseID {
			t.Error("insight missing case provenance")
		}
	}
}

func TestResolveCaseExplicitReferenceWins(t *testing.T) {
	caseRepo := newFakeCaseRepo()
	svc := NewInsightsService(newFakeMemberRepo(), caseRepo, nil)

	explicit := uuid.New()
	identifier := "CV-2024-118"
	recording := &entities.Recording{ID: uuid.New(), OrganizationID: uuid.New(), CaseID: &explicit}

	if got := svc.ResolveCase(context.Background(), recording, &identifier); got != explicit {
		t.Errorf("explicit case reference must win, got %s", got)
	}
}

func TestResolveCaseByIdentifier(t *testing.T) {
	orgID := uuid.New()
	legalCase := &entities.LegalCase{ID: uuid.New(), OrganizationID: orgID, CaseNumber: "CV-2024-118", Title: "Smith v. Jones"}
	caseRepo := newFakeCaseRepo()
	caseRepo.cases[legalCase.ID] = legalCase

	svc := NewInsightsService(newFakeMemberRepo(), caseRepo, nil)

	identifier := "CV-2024-118"
	recording := &entities.Recording{ID: uuid.New(), OrganizationID: orgID}
	if got := svc.ResolveCase(context.Background(), recording, &identifier); got != legalCase.ID {
		t.Errorf("identifier lookup failed, got %s", got)
	}

	unknown := "CV-0000-000"
	if got := svc.ResolveCase(context.Background(), recording, &unknown); got != uuid.Nil {
		t.Errorf("unknown identifier must yield no case, got %s", got)
	}
}
