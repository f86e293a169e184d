package handlers

import (
	"errors"
	"net/http"

	"github.com/dustin/go-humanize"

	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type AccountsResponse struct {
	Accounts   []models.Account   `json:"accounts"`
	Pagination PaginationResponse `json:"pagination"`
}

func (h *Handlers) GetCurrentAccount(w http.ResponseWriter, r *http.Request) {
	caller := IdentityFromContext(r.Context())
	if caller == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	account, err := h.AccountService.GetAccount(r.Context(), caller.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.AccountFilter{
		Search: q.Get("search"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}

	accounts, total, err := h.AccountService.ListAccounts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, AccountsResponse{
		Accounts:   accounts,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	}, http.StatusOK)
}

func (h *Handlers) GetUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AccountService.UserStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.AccountService.GetAccount(r.Context(), pathVar(r, "accountId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAccountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	req.AccountID = pathVar(r, "accountId")

	account, err := h.AccountService.UpdateAccount(r.Context(), IdentityFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountService.DeleteAccount(r.Context(), pathVar(r, "accountId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Account deleted"}, http.StatusOK)
}

func (h *Handlers) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handlers) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handlers) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	account, err := h.AccountService.SetActive(r.Context(), pathVar(r, "accountId"), active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}

func (h *Handlers) UpdateAccountRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	account, err := h.AccountService.SetRole(r.Context(), pathVar(r, "accountId"), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}

// UploadAvatar accepts a multipart "image" field and stores it as the
// account's avatar. Only the account owner may upload.
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	accountID := pathVar(r, "accountId")
	caller := IdentityFromContext(r.Context())
	if caller == nil || caller.AccountID != accountID {
		WriteError(w, "you can only change your own avatar", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, "file too large (max "+humanize.Bytes(uint64(h.Cfg.MaxUploadSize))+")", http.StatusBadRequest)
		} else {
			WriteError(w, "could not parse upload", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		WriteError(w, "unsupported file type, allowed: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	account, err := h.AccountService.UploadAvatar(r.Context(), accountID, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}
