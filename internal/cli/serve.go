package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	gderr "github.com/griddeck/griddeck/pkg/errors"
	gdio "github.com/griddeck/griddeck/pkg/io"
	"github.com/griddeck/griddeck/pkg/store"
	"github.com/griddeck/griddeck/pkg/widget"
)

// serveCommand creates the serve command exposing the layout over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard layout over HTTP",
		Long: `Serve the dashboard layout over HTTP.

Endpoints:
  GET  /healthz      liveness probe
  GET  /api/layout   current layout as an export document
  POST /api/layout   import an export document (validated atomically)
  GET  /api/widgets  registered widget types`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeHandler(st, c.Widgets, c.Logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			c.Logger.Info("serving layout API", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return st.Flush(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7420", "listen address")

	return cmd
}

// newServeHandler builds the HTTP API around a loaded store. The logger
// rides the request context so handlers log with the server's settings.
func newServeHandler(st *store.Store, reg *widget.Registry, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), logger)))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/layout", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, st.ExportLayout())
	})

	r.Post("/api/layout", func(w http.ResponseWriter, req *http.Request) {
		l := loggerFromContext(req.Context())
		doc, err := gdio.ReadJSON(req.Body)
		if err != nil {
			l.Warn("import request rejected", "request", middleware.GetReqID(req.Context()), "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := st.ImportLayout(req.Context(), doc); err != nil {
			status := http.StatusInternalServerError
			if gderr.IsValidation(err) || gderr.GetCode(err) == gderr.ErrCodeImport {
				status = http.StatusUnprocessableEntity
			}
			l.Warn("import failed", "request", middleware.GetReqID(req.Context()), "err", err)
			writeError(w, status, err)
			return
		}
		l.Info("layout imported", "request", middleware.GetReqID(req.Context()), "widgets", len(st.Widgets()))
		writeJSON(w, http.StatusOK, map[string]any{"imported": len(st.Widgets())})
	})

	r.Get("/api/widgets", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"types": reg.Kinds()})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": fmt.Sprintf("%v", err),
		"code":  string(gderr.GetCode(err)),
	})
}
