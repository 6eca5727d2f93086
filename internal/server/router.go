package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/wealthware/backend/auth"
	"github.com/wealthware/backend/httpx"
	"github.com/wealthware/backend/internal/billing"
	"github.com/wealthware/backend/internal/config"
	"github.com/wealthware/backend/internal/handlers"
	"github.com/wealthware/backend/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(cfg config.Config, st store.Store, svc *billing.Service) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth additionally checks the session's owner still exists.
	auth.SetOwnerVerifier(func(ctx context.Context, ownerID uint) bool {
		_, err := st.GetUser(ctx, ownerID)
		return err == nil
	})

	gated := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	authHandler := handlers.NewAuthHandler(st)
	authHandler.Register(mux)

	ph := handlers.NewProductHandler(st)
	mux.Handle("/products", gated(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/products/update", gated(ph.Update))
	mux.Handle("/products/delete", gated(ph.Delete))

	ih := handlers.NewInvoiceHandler(st, svc)
	mux.Handle("/invoices", gated(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/invoices/view", gated(ih.View))
	mux.Handle("/invoices/delete", gated(ih.Delete))

	eh := handlers.NewExpenseHandler(st)
	mux.Handle("/expenses", gated(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			eh.List(w, r)
		case http.MethodPost:
			eh.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/expenses/delete", gated(eh.Delete))

	rh := handlers.NewReportHandler(st)
	mux.Handle("/reports/sales", gated(rh.Sales))

	dh := handlers.NewDashboardHandler(st)
	mux.Handle("/dashboard", gated(dh.Summary))

	prh := handlers.NewProfileHandler(st)
	mux.Handle("/profile", gated(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			prh.Get(w, r)
		case http.MethodPost:
			prh.Update(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	// reset endpoints are reachable without a session (forgot-password flow)
	mux.HandleFunc("/profile/reset-request", prh.RequestPasswordReset)
	mux.HandleFunc("/profile/reset", prh.ResetPassword)

	// Locally stored invoice documents (BLOB_BACKEND=local).
	if cfg.BlobBackend == "local" {
		mux.Handle("/documents/", http.StripPrefix("/documents/", http.FileServer(http.Dir(cfg.BlobDir))))
	}

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
