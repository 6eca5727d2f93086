package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/httpx"
	"github.com/wealthware/backend/internal/store"
	"github.com/wealthware/backend/validation"
)

type ProfileHandler struct {
	Store store.Store
}

func NewProfileHandler(st store.Store) *ProfileHandler { return &ProfileHandler{Store: st} }

// Get: GET /profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	u, err := h.Store.GetUser(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_profile", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

// Update: POST /profile – personal and shop settings.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var input struct {
		Name      string `json:"name"`
		Gender    string `json:"gender"`
		Phone     string `json:"phone"`
		State     string `json:"state"`
		ShopName  string `json:"shop_name"`
		ShopType  string `json:"shop_type"`
		Address   string `json:"address"`
		GSTNumber string `json:"gst_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	u, err := h.Store.GetUser(r.Context(), ownerID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_profile", nil)
		return
	}
	u.Name = input.Name
	u.Gender = input.Gender
	u.Phone = input.Phone
	u.State = input.State
	u.ShopName = input.ShopName
	u.ShopType = input.ShopType
	u.Address = input.Address
	u.GSTNumber = input.GSTNumber
	if err := h.Store.UpdateUser(r.Context(), u); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_profile", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

// RequestPasswordReset: POST /profile/reset-request – issues a time-limited
// token. Delivery stays out of band; the token is returned for the caller to
// forward.
func (h *ProfileHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := h.Store.GetUserByEmail(r.Context(), email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// do not reveal whether the address is registered
			httpx.JSON(w, http.StatusOK, map[string]string{"status": "reset_link_sent"})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "reset_request_failed", nil)
		return
	}
	token := auth.CreateResetToken(email, 30*time.Minute)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "reset_link_sent", "token": token})
}

// ResetPassword: POST /profile/reset – consumes a reset token.
func (h *ProfileHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("token", input.Token, v)
	validation.Required("new_password", input.NewPassword, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	email, ok := auth.VerifyResetToken(input.Token)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_or_expired_token", nil)
		return
	}
	u, err := h.Store.GetUserByEmail(r.Context(), email)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_or_expired_token", nil)
		return
	}
	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "reset_failed", nil)
		return
	}
	u.Password = hash
	if err := h.Store.UpdateUser(r.Context(), u); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "reset_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "password_updated"})
}
