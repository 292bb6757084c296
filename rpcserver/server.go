// Package rpcserver exposes the Service facade over HTTP+JSON, one
// route per facade method, using net/http and encoding/json directly
// (see DESIGN.md for why no third-party RPC framework fits here).
package rpcserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aosen/loso/service"
)

// Server runs the segmentation service as a JSON-over-HTTP server, one
// route per Service facade method.
type Server struct {
	svc        *service.Service
	logger     *zap.Logger
	httpServer *http.Server
}

// New builds a Server bound to svc, logging through logger.
func New(svc *service.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// Start listens on iface:port and blocks serving requests.
func (s *Server) Start(iface string, port int) error {
	addr := fmt.Sprintf("%s:%d", iface, port)
	mux := http.NewServeMux()
	h := &handler{svc: s.svc, logger: s.logger}
	mux.HandleFunc("/getStats", h.getStats)
	mux.HandleFunc("/feed", h.feed)
	mux.HandleFunc("/splitTerms", h.splitTerms)
	mux.HandleFunc("/splitSentence", h.splitSentence)
	mux.HandleFunc("/splitMixTerms", h.splitMixTerms)
	mux.HandleFunc("/splitNgramTerms", h.splitNgramTerms)
	mux.HandleFunc("/reset", h.reset)
	mux.HandleFunc("/clean", h.clean)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.logger.Info("starting segmentation service", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
