//go:build !integration

// File: internal/infra/web/handlers_test.go
package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"referral-backend/internal/infra/locking"
	"referral-backend/internal/infra/notify"
	"referral-backend/internal/infra/storage/jsonfile"
	"referral-backend/internal/infra/web"
	"referral-backend/internal/usecase"
)

// newTestRouter wires the real handlers over file-backed repos in a
// throwaway directory, so requests exercise the full path down to disk.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := zerolog.Nop()
	dir := t.TempDir()

	locks := locking.NewMemoryLocker()
	notifier := notify.NewNoop(&logger)
	codes := jsonfile.NewReferralCodeRepo(filepath.Join(dir, "codigos.json"), &logger)
	leads := jsonfile.NewLeadRepo(filepath.Join(dir, "leads.json"), &logger)

	referralUC := usecase.NewReferralUseCase(codes, locks, notifier, time.Second, &logger)
	leadUC := usecase.NewLeadUseCase(leads, locks, notifier, time.Second, &logger)

	return web.NewServer(referralUC, leadUC, nil, &logger).Router()
}

func post(t *testing.T, router http.Handler, path string, payload any) (int, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	switch p := payload.(type) {
	case string:
		body.WriteString(p)
	default:
		if err := json.NewEncoder(&body).Encode(p); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec.Code, resp
}

func assertResponse(t *testing.T, gotStatus int, resp map[string]any, wantStatus int, wantSuccess bool, wantMessage string) {
	t.Helper()
	if gotStatus != wantStatus {
		t.Errorf("expected status %d, got %d (%v)", wantStatus, gotStatus, resp)
	}
	if resp["success"] != wantSuccess {
		t.Errorf("expected success=%v, got %v", wantSuccess, resp["success"])
	}
	if resp["message"] != wantMessage {
		t.Errorf("expected message %q, got %q", wantMessage, resp["message"])
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("registers a new code", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/registrar", map[string]string{
			"nome": "Alice", "instagram": "Alice", "codigo": "ALICE10",
		})
		assertResponse(t, status, resp, http.StatusCreated, true, "Código registrado com sucesso!")
	})

	t.Run("second code for the same owner conflicts", func(t *testing.T) {
		router := newTestRouter(t)
		post(t, router, "/registrar", map[string]string{
			"nome": "Alice", "instagram": "alice", "codigo": "ALICE10",
		})
		// Same handle, different casing.
		status, resp := post(t, router, "/registrar", map[string]string{
			"nome": "Alice", "instagram": "ALICE", "codigo": "OTHER20",
		})
		assertResponse(t, status, resp, http.StatusConflict, false, "Você já possui um código gerado.")
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/registrar", map[string]string{
			"nome": "Alice", "instagram": "  ", "codigo": "ALICE10",
		})
		assertResponse(t, status, resp, http.StatusBadRequest, false, "Preencha todos os campos.")
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/registrar", "{not json")
		assertResponse(t, status, resp, http.StatusBadRequest, false, "Dados não enviados.")
	})
}

func TestRedeemEndpoint(t *testing.T) {
	register := func(t *testing.T, router http.Handler) {
		t.Helper()
		status, _ := post(t, router, "/registrar", map[string]string{
			"nome": "Alice", "instagram": "alice", "codigo": "ALICE10",
		})
		if status != http.StatusCreated {
			t.Fatalf("seed registration failed with status %d", status)
		}
	}

	t.Run("full redemption flow", func(t *testing.T) {
		router := newTestRouter(t)
		register(t, router)

		// Lower-cased code from the client still matches.
		status, resp := post(t, router, "/reivindicar", map[string]string{
			"codigo": "alice10", "instagramReivindicador": "bob",
		})
		assertResponse(t, status, resp, http.StatusOK, true, "Código validado com sucesso! E-mail de confirmação enviado.")

		status, resp = post(t, router, "/reivindicar", map[string]string{
			"codigo": "ALICE10", "instagramReivindicador": "BOB",
		})
		assertResponse(t, status, resp, http.StatusConflict, false, "Você já utilizou este código.")

		status, resp = post(t, router, "/reivindicar", map[string]string{
			"codigo": "ALICE10", "instagramReivindicador": "carol",
		})
		assertResponse(t, status, resp, http.StatusOK, true, "Código validado com sucesso! E-mail de confirmação enviado.")
	})

	t.Run("unknown code", func(t *testing.T) {
		router := newTestRouter(t)
		register(t, router)
		status, resp := post(t, router, "/reivindicar", map[string]string{
			"codigo": "NOPE", "instagramReivindicador": "bob",
		})
		assertResponse(t, status, resp, http.StatusNotFound, false, "Código inválido.")
	})

	t.Run("owner redeeming their own code", func(t *testing.T) {
		router := newTestRouter(t)
		register(t, router)
		status, resp := post(t, router, "/reivindicar", map[string]string{
			"codigo": "ALICE10", "instagramReivindicador": "Alice",
		})
		assertResponse(t, status, resp, http.StatusForbidden, false, "Você não pode usar seu próprio código.")
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/reivindicar", map[string]string{"codigo": "ALICE10"})
		assertResponse(t, status, resp, http.StatusBadRequest, false, "Preencha todos os campos.")
	})
}

func TestLeadEndpoint(t *testing.T) {
	t.Run("captures a lead", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/leads", map[string]string{
			"name": "Dana", "email": "dana@example.com", "phone": "+5511999990000", "message": "oi",
		})
		assertResponse(t, status, resp, http.StatusCreated, true, "Entraremos em contato em breve.")
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		router := newTestRouter(t)
		post(t, router, "/leads", map[string]string{
			"name": "Dana", "email": "Dana@example.com", "phone": "+5511999990000",
		})
		status, resp := post(t, router, "/leads", map[string]string{
			"name": "Dana Again", "email": "dana@EXAMPLE.com", "phone": "+5511888880000",
		})
		assertResponse(t, status, resp, http.StatusConflict, false, "Este e-mail já está cadastrado.")
	})

	t.Run("missing required fields", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/leads", map[string]string{
			"name": "Dana", "email": "dana@example.com",
		})
		assertResponse(t, status, resp, http.StatusBadRequest, false, "Preencha todos os campos obrigatórios.")
	})

	t.Run("message is optional", func(t *testing.T) {
		router := newTestRouter(t)
		status, resp := post(t, router, "/leads", map[string]string{
			"name": "Dana", "email": "dana@example.com", "phone": "+5511999990000",
		})
		assertResponse(t, status, resp, http.StatusCreated, true, "Entraremos em contato em breve.")
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}
