package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/httpx"
	"github.com/wealthware/backend/internal/models"
	"github.com/wealthware/backend/internal/store"
	"github.com/wealthware/backend/validation"
)

type AuthHandler struct {
	Store store.Store
}

func NewAuthHandler(st store.Store) *AuthHandler { return &AuthHandler{Store: st} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		ShopName string `json:"shop_name"`
		ShopType string `json:"shop_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("email", input.Email, v)
	validation.Required("password", input.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := h.Store.GetUserByEmail(r.Context(), email); err == nil {
		httpx.JSONError(w, http.StatusConflict, "email_already_registered", nil)
		return
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_account", nil)
		return
	}
	u := models.User{Email: email, Password: hash, Name: input.Name, ShopName: input.ShopName, ShopType: input.ShopType}
	if err := h.Store.CreateUser(r.Context(), &u); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_account", nil)
		return
	}
	auth.CreateSession(w, u.ID)
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": u.ID, "email": u.Email})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	u, err := h.Store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	if !auth.CheckPassword(u.Password, input.Password) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, u.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"id": u.ID, "email": u.Email})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}
