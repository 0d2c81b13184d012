package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	apperrors "github.com/callcaps/callcaps-server/errors"
)

func newTestContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleErrorAppError(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/v1/call-recordings/x")

	err := HandleError(nil, c, apperrors.ErrRecordingNotFound("abc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != int(apperrors.ErrorCode_RECORDING_NOT_FOUND) {
		t.Errorf("code = %d, want %d", body.Code, int(apperrors.ErrorCode_RECORDING_NOT_FOUND))
	}
	if body.Message != "Recording not found" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/v1/meetings/analytics")

	if err := HandleError(nil, c, errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != int(apperrors.ErrorCode_INTERNAL) {
		t.Errorf("code = %d, want INTERNAL", body.Code)
	}
	if body.Info != "boom" {
		t.Errorf("info = %q", body.Info)
	}
}

func TestHandleSuccessEnvelope(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/v1/call-recordings")

	if err := HandleSuccess(nil, c, map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != int(apperrors.ErrorCode_HTTP_OK) || body.Message != "success" {
		t.Errorf("unexpected envelope: %+v", body)
	}
	if body.Data["hello"] != "world" {
		t.Errorf("data not round-tripped: %+v", body.Data)
	}
}
