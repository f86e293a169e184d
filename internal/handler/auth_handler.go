package handlers

import (
	"net/http"
	"strings"

	"healthcommunity/internal/models"
)

type AuthResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Account      *models.Account `json:"account"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.AuthService.Register(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	// log the new account straight in
	account, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	account, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	account, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, http.StatusOK)
}

func (h *Handlers) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req models.CheckEmailRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	available, err := h.AccountService.EmailAvailable(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, map[string]bool{"available": available}, http.StatusOK)
}
