package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edricd/backend/internal/model"
	"github.com/edricd/backend/internal/service"
)

type mockUserService struct {
	registerFunc func(ctx context.Context, input *model.RegistrationInput) (int64, error)
}

func (m *mockUserService) Register(ctx context.Context, input *model.RegistrationInput) (int64, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, input)
	}
	return 1, nil
}

func postCreateUser(t *testing.T, h *UserHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/users/create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func decodeCreateResponse(t *testing.T, rec *httptest.ResponseRecorder) createUserResponse {
	t.Helper()
	var resp createUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestUserHandler_Create_Success(t *testing.T) {
	mock := &mockUserService{
		registerFunc: func(ctx context.Context, input *model.RegistrationInput) (int64, error) {
			return 42, nil
		},
	}
	h := NewUserHandler(mock)

	rec := postCreateUser(t, h, `{"username":"alice","password":"pw","role":"admin"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	resp := decodeCreateResponse(t, rec)
	if !resp.Success {
		t.Errorf("expected success=true, got %+v", resp)
	}
	if resp.Data == nil || resp.Data.ID != 42 {
		t.Errorf("expected data.id=42, got %+v", resp.Data)
	}
}

// TestUserHandler_Create_DuplicateInBand verifies business failures come back
// with HTTP 200 and success=false, not an HTTP error status.
func TestUserHandler_Create_DuplicateInBand(t *testing.T) {
	mock := &mockUserService{
		registerFunc: func(ctx context.Context, input *model.RegistrationInput) (int64, error) {
			return 0, &service.Error{Kind: service.KindDuplicate, Message: "username already exists"}
		},
	}
	h := NewUserHandler(mock)

	rec := postCreateUser(t, h, `{"username":"alice","password":"pw"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for in-band failure, got %d", rec.Code)
	}
	resp := decodeCreateResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message != "username already exists" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Data != nil {
		t.Errorf("expected no data on failure, got %+v", resp.Data)
	}
}

func TestUserHandler_Create_ValidationInBand(t *testing.T) {
	mock := &mockUserService{
		registerFunc: func(ctx context.Context, input *model.RegistrationInput) (int64, error) {
			return 0, &service.Error{Kind: service.KindValidation, Message: "username is required"}
		},
	}
	h := NewUserHandler(mock)

	rec := postCreateUser(t, h, `{"password":"pw"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	resp := decodeCreateResponse(t, rec)
	if resp.Success || resp.Message != "username is required" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestUserHandler_Create_InvalidJSON(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	rec := postCreateUser(t, h, `{broken`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	resp := decodeCreateResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false for invalid JSON")
	}
}
