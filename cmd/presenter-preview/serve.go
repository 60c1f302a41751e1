package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve record previews and resolution metrics over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), root)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           a.routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving previews", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /records", a.handleIndex)
	mux.HandleFunc("GET /records/{key}", a.handleRecord)
	return mux
}

func (a *app) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, key := range a.fixtures.Keys() {
		fmt.Fprintf(&b, `<li><a href="/records/%s">%s</a></li>`, html.EscapeString(key), html.EscapeString(key))
	}
	b.WriteString("</ul>")
	writeHTML(w, http.StatusOK, b.String())
}

func (a *app) handleRecord(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	ctx, err := a.newContext()
	if err != nil {
		writeHTML(w, http.StatusInternalServerError, html.EscapeString(err.Error()))
		return
	}
	p, err := a.present(key, ctx)
	if err != nil {
		writeHTML(w, http.StatusNotFound, html.EscapeString(err.Error()))
		return
	}

	markup, err := p.WithAttrs(a.attrsFor(p)...)
	if err != nil {
		writeHTML(w, http.StatusInternalServerError, html.EscapeString(err.Error()))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(p.String()))
	if link, err := p.LinkToSelf(); err == nil {
		b.WriteString(link)
	}
	b.WriteString(markup)
	writeHTML(w, http.StatusOK, b.String())
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
