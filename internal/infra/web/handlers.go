// File: internal/infra/web/handlers.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"referral-backend/internal/domain"
)

// Every response carries a success flag and a human-readable message; the
// HTTP status is the only machine-readable signal. The messages are the
// exact strings the legacy frontend expects.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: success, Message: message})
}

type registerRequest struct {
	Nome      string `json:"nome"`
	Instagram string `json:"instagram"`
	Codigo    string `json:"codigo"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, false, "Dados não enviados.")
		return
	}

	nome := strings.TrimSpace(req.Nome)
	insta := strings.ToLower(strings.TrimSpace(req.Instagram))
	codigo := strings.TrimSpace(req.Codigo)
	if nome == "" || insta == "" || codigo == "" {
		respond(w, http.StatusBadRequest, false, "Preencha todos os campos.")
		return
	}

	err := s.referralUC.Register(r.Context(), nome, insta, codigo)
	switch {
	case err == nil:
		respond(w, http.StatusCreated, true, "Código registrado com sucesso!")
	case errors.Is(err, domain.ErrOwnerExists):
		respond(w, http.StatusConflict, false, "Você já possui um código gerado.")
	case errors.Is(err, domain.ErrInvalidArgument):
		respond(w, http.StatusBadRequest, false, "Preencha todos os campos.")
	default:
		s.log.Error().Err(err).Msg("register failed")
		respond(w, http.StatusInternalServerError, false, "Erro interno. Tente novamente mais tarde.")
	}
}

type redeemRequest struct {
	Codigo                 string `json:"codigo"`
	InstagramReivindicador string `json:"instagramReivindicador"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, false, "Dados não enviados.")
		return
	}

	// Redemption lookup is case-insensitive on the code: tokens are
	// upper-cased here before the ledger's exact match.
	codigo := strings.ToUpper(strings.TrimSpace(req.Codigo))
	insta := strings.ToLower(strings.TrimSpace(req.InstagramReivindicador))
	if codigo == "" || insta == "" {
		respond(w, http.StatusBadRequest, false, "Preencha todos os campos.")
		return
	}

	err := s.referralUC.Redeem(r.Context(), codigo, insta)
	switch {
	case err == nil:
		respond(w, http.StatusOK, true, "Código validado com sucesso! E-mail de confirmação enviado.")
	case errors.Is(err, domain.ErrCodeNotFound):
		respond(w, http.StatusNotFound, false, "Código inválido.")
	case errors.Is(err, domain.ErrSelfRedemption):
		respond(w, http.StatusForbidden, false, "Você não pode usar seu próprio código.")
	case errors.Is(err, domain.ErrAlreadyRedeemed):
		respond(w, http.StatusConflict, false, "Você já utilizou este código.")
	case errors.Is(err, domain.ErrInvalidArgument):
		respond(w, http.StatusBadRequest, false, "Preencha todos os campos.")
	default:
		s.log.Error().Err(err).Msg("redeem failed")
		respond(w, http.StatusInternalServerError, false, "Erro interno. Tente novamente mais tarde.")
	}
}

type leadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, false, "Dados não enviados.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || email == "" || phone == "" {
		respond(w, http.StatusBadRequest, false, "Preencha todos os campos obrigatórios.")
		return
	}

	err := s.leadUC.Capture(r.Context(), name, email, phone, strings.TrimSpace(req.Message))
	switch {
	case err == nil:
		respond(w, http.StatusCreated, true, "Entraremos em contato em breve.")
	case errors.Is(err, domain.ErrEmailExists):
		respond(w, http.StatusConflict, false, "Este e-mail já está cadastrado.")
	case errors.Is(err, domain.ErrInvalidArgument):
		respond(w, http.StatusBadRequest, false, "Preencha todos os campos obrigatórios.")
	default:
		s.log.Error().Err(err).Msg("lead capture failed")
		respond(w, http.StatusInternalServerError, false, "Erro interno. Tente novamente mais tarde.")
	}
}
