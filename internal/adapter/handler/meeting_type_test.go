package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/infrastructure/http/middleware"
	"github.com/callcaps/callcaps-server/pkg/jwt"
	pkgvalidator "github.com/callcaps/callcaps-server/pkg/validator"
)

type stubMeetingTypeRepo struct {
	types map[uuid.UUID]*entities.MeetingType
}

func newStubMeetingTypeRepo() *stubMeetingTypeRepo {
	return &stubMeetingTypeRepo{types: make(map[uuid.UUID]*entities.MeetingType)}
}

func (r *stubMeetingTypeRepo) Create(_ context.Context, mt *entities.MeetingType) error {
	r.types[mt.ID] = mt
	return nil
}

func (r *stubMeetingTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.MeetingType, error) {
	return r.types[id], nil
}

func (r *stubMeetingTypeRepo) FindByName(_ context.Context, memberID uuid.UUID, name string) (*entities.MeetingType, error) {
	for _, mt := range r.types {
		if mt.MemberID == memberID && mt.Name == name && mt.IsActive {
			return mt, nil
		}
	}
	return nil, nil
}

func (r *stubMeetingTypeRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]*entities.MeetingType, error) {
	var out []*entities.MeetingType
	for _, mt := range r.types {
		if mt.MemberID == memberID && mt.IsActive {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (r *stubMeetingTypeRepo) Update(_ context.Context, mt *entities.MeetingType) error {
	r.types[mt.ID] = mt
	return nil
}

func (r *stubMeetingTypeRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if mt, ok := r.types[id]; ok {
		mt.IsActive = false
	}
	return nil
}

func authedContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder, *jwt.Claims) {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	claims := &jwt.Claims{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		MemberID:       uuid.New(),
	}
	c.Set(middleware.ClaimsContextKey, claims)
	return c, rec, claims
}

func TestMeetingTypeCreate(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, claims := authedContext(t, http.MethodPost, "/v1/call-recordings/meeting-types",
		`{"name":"client_update","system_prompt":"Summarize for the client file."}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	created, _ := repo.FindByName(context.Background(), claims.MemberID, "client_update")
	if created == nil {
		t.Fatal("meeting type not persisted")
	}
	if created.OutputFormat != entities.MeetingTypeOutputJSON {
		t.Errorf("output format should default to json, got %q", created.OutputFormat)
	}
	if created.DisplayName != "client_update" {
		t.Errorf("display name should default to name, got %q", created.DisplayName)
	}
}

func TestMeetingTypeCreateRejectsBadName(t *testing.T) {
	h := NewMeetingTypeHandler(newStubMeetingTypeRepo(), nil)

	c, rec, _ := authedContext(t, http.MethodPost, "/v1/call-recordings/meeting-types",
		`{"name":"Client Update"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMeetingTypeCreateDuplicateName(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, claims := authedContext(t, http.MethodPost, "/v1/call-recordings/meeting-types",
		`{"name":"standup"}`)
	repo.types[uuid.New()] = &entities.MeetingType{
		ID:       uuid.New(),
		MemberID: claims.MemberID,
		Name:     "standup",
		IsActive: true,
	}

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestMeetingTypeDeleteIsSoft(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, claims := authedContext(t, http.MethodDelete, "/v1/call-recordings/meeting-types/x", "")
	meetingType := &entities.MeetingType{
		ID:       uuid.New(),
		MemberID: claims.MemberID,
		Name:     "standup",
		IsActive: true,
	}
	repo.types[meetingType.ID] = meetingType
	c.SetParamNames("id")
	c.SetParamValues(meetingType.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if meetingType.IsActive {
		t.Error("delete must be a soft is_active flip")
	}
	if _, ok := repo.types[meetingType.ID]; !ok {
		t.Error("row must survive a soft delete")
	}
}

func TestMeetingTypeGet(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, claims := authedContext(t, http.MethodGet, "/v1/call-recordings/meeting-types/x", "")
	meetingType := &entities.MeetingType{
		ID:          uuid.New(),
		MemberID:    claims.MemberID,
		Name:        "standup",
		DisplayName: "Daily Standup",
		IsActive:    true,
	}
	repo.types[meetingType.ID] = meetingType
	c.SetParamNames("id")
	c.SetParamValues(meetingType.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Name        string `json:"name"`
			DisplayName string `json:"display_name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Data.Name != "standup" || body.Data.DisplayName != "Daily Standup" {
		t.Errorf("unexpected payload: %+v", body.Data)
	}
}

func TestMeetingTypeGetScopedToOwner(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, _ := authedContext(t, http.MethodGet, "/v1/call-recordings/meeting-types/x", "")
	other := &entities.MeetingType{
		ID:       uuid.New(),
		MemberID: uuid.New(),
		Name:     "standup",
		IsActive: true,
	}
	repo.types[other.ID] = other
	c.SetParamNames("id")
	c.SetParamValues(other.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign meeting type must look absent, status = %d", rec.Code)
	}
}

func TestMeetingTypeUpdateScopedToOwner(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, _ := authedContext(t, http.MethodPut, "/v1/call-recordings/meeting-types/x",
		`{"display_name":"Renamed"}`)
	other := &entities.MeetingType{
		ID:       uuid.New(),
		MemberID: uuid.New(),
		Name:     "standup",
		IsActive: true,
	}
	repo.types[other.ID] = other
	c.SetParamNames("id")
	c.SetParamValues(other.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign meeting type must look absent, status = %d", rec.Code)
	}
}

func TestMeetingTypeListOnlyActive(t *testing.T) {
	repo := newStubMeetingTypeRepo()
	h := NewMeetingTypeHandler(repo, nil)

	c, rec, claims := authedContext(t, http.MethodGet, "/v1/call-recordings/meeting-types", "")
	active := &entities.MeetingType{ID: uuid.New(), MemberID: claims.MemberID, Name: "standup", IsActive: true}
	inactive := &entities.MeetingType{ID: uuid.New(), MemberID: claims.MemberID, Name: "retro", IsActive: false}
	repo.types[active.ID] = active
	repo.types[inactive.ID] = inactive

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data struct {
			MeetingTypes []struct {
				Name string `json:"name"`
			} `json:"meeting_types"`
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Data.Total != 1 || len(body.Data.MeetingTypes) != 1 || body.Data.MeetingTypes[0].Name != "standup" {
		t.Errorf("expected only the active meeting type, got %+v", body.Data)
	}
}
