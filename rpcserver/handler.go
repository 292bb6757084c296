package rpcserver

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aosen/loso/service"
)

type handler struct {
	svc    *service.Service
	logger *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) fail(w http.ResponseWriter, status int, err error) {
	h.logger.Warn("rpc call failed", zap.Error(err))
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

type getStatsRequest struct {
	Category string `json:"category"`
}

func (h *handler) getStats(w http.ResponseWriter, r *http.Request) {
	var req getStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	stats, ok, err := h.svc.GetStats(r.Context(), req.Category)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "category not found"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type feedRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type feedResponse struct {
	TermsFed int `json:"terms_fed"`
}

func (h *handler) feed(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	n, err := h.svc.Feed(r.Context(), req.Category, req.Text)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, feedResponse{TermsFed: n})
}

type splitTermsRequest struct {
	Text       string   `json:"text"`
	Categories []string `json:"categories"`
}

type splitTermsResponse struct {
	Terms []string `json:"terms"`
}

func (h *handler) splitTerms(w http.ResponseWriter, r *http.Request) {
	var req splitTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	terms, err := h.svc.SplitTerms(r.Context(), req.Text, req.Categories)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, splitTermsResponse{Terms: terms})
}

type textRequest struct {
	Text string `json:"text"`
}

func (h *handler) splitSentence(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, splitTermsResponse{Terms: h.svc.SplitSentence(req.Text)})
}

func (h *handler) splitMixTerms(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, splitTermsResponse{Terms: h.svc.SplitMixTerms(req.Text)})
}

func (h *handler) splitNgramTerms(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, splitTermsResponse{Terms: h.svc.SplitNgramTerms(req.Text)})
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

type cleanRequest struct {
	Category string `json:"category"`
}

func (h *handler) clean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := h.svc.Clean(r.Context(), req.Category); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
