package exam

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Kaseketi/kaseketi-vet-clinic/internal/platform/auth"
)

func newSignContext(examID uuid.UUID, signerID string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/exams/"+examID.String()+"/sign", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/exams/"+examID.String()+"/sign", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if signerID != "" {
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, signerID))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/exams/:id/sign")
	c.SetParamNames("id")
	c.SetParamValues(examID.String())
	return c, rec
}

func TestSignExamHandler_EmptyBody(t *testing.T) {
	svc, _, p := newTestService()
	e, err := svc.CreateExam(context.Background(), CreateExamRequest{PatientID: p.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	h := NewHandler(svc)
	c, rec := newSignContext(e.ID, uuid.NewString(), "")
	if err := h.SignExam(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestSignExamHandler_MalformedBody(t *testing.T) {
	svc, repo, p := newTestService()
	e, err := svc.CreateExam(context.Background(), CreateExamRequest{PatientID: p.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	h := NewHandler(svc)
	c, _ := newSignContext(e.ID, uuid.NewString(), `{"signer_name":`)
	handlerErr := h.SignExam(c)

	var httpErr *echo.HTTPError
	if !errors.As(handlerErr, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %v", handlerErr)
	}
	stored, err := repo.GetByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status == StatusSigned {
		t.Error("exam must not be signed when the request body is rejected")
	}
}

func TestSignExamHandler_MissingSigner(t *testing.T) {
	svc, _, p := newTestService()
	e, err := svc.CreateExam(context.Background(), CreateExamRequest{PatientID: p.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	h := NewHandler(svc)
	c, _ := newSignContext(e.ID, "", "")
	handlerErr := h.SignExam(c)

	var httpErr *echo.HTTPError
	if !errors.As(handlerErr, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without signer identity, got %v", handlerErr)
	}
}
