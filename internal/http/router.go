package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Entries    *EntryHandler
	Orders     *OrderHandler
	Reports    *ReportHandler
	Exports    *ExportHandler
	Users      *UserHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Auth != nil {
		mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Login(w, r)
		})
		mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Logout(w, r)
		})
	}

	if cfg.Entries != nil {
		mux.HandleFunc("/entries", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Entries.List(w, r)
			case http.MethodPost:
				cfg.Entries.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/entries/daily-sum", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Entries.DailySum(w, r)
		})
		mux.HandleFunc("/entries/weekly-sums", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Entries.WeeklySums(w, r)
		})
		mux.HandleFunc("/entries/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/entries/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithEntryID(r.Context(), id)
			r = r.WithContext(ctx)
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Entries.Delete(w, r)
		})
	}

	if cfg.Orders != nil {
		mux.HandleFunc("/orders/suggestions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Orders.Suggestions(w, r)
		})
		mux.HandleFunc("/orders/hidden", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Orders.Hidden(w, r)
			case http.MethodPost:
				cfg.Orders.Hide(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
	}

	if cfg.Reports != nil {
		reportRoutes := map[string]http.HandlerFunc{
			"/reports/compliance":       cfg.Reports.Compliance,
			"/reports/weekly-breakdown": cfg.Reports.WeeklyBreakdown,
			"/reports/top-orders":       cfg.Reports.TopOrders,
			"/reports/distribution":     cfg.Reports.Distribution,
			"/reports/billable-ratio":   cfg.Reports.BillableRatio,
			"/reports/weekend":          cfg.Reports.Weekend,
			"/reports/order-breakdown":  cfg.Reports.OrderBreakdown,
			"/reports/trend":            cfg.Reports.Trend,
		}
		for path, handle := range reportRoutes {
			handle := handle
			mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				handle(w, r)
			})
		}
	}

	if cfg.Exports != nil {
		mux.HandleFunc("/exports/entries", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Exports.Entries(w, r)
		})
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Users.List(w, r)
		})
		mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/users/")
			username, action, found := strings.Cut(rest, "/")
			if username == "" || !found || action != "password" {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithUsername(r.Context(), username)
			r = r.WithContext(ctx)
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			cfg.Users.SetPassword(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
