package main

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/go-cardano/ledgercheck/internal/audit"
	"github.com/go-cardano/ledgercheck/internal/necessarydata"
	"github.com/go-cardano/ledgercheck/internal/phase2"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
	"github.com/go-cardano/ledgercheck/internal/validate"
)

// handler serves the three HTTP endpoints the service exposes, wrapping the
// core validate.Validate entry point. It holds no validation state of its
// own; audit is optional and, when nil, Record is simply skipped.
type handler struct {
	log    *logrus.Entry
	runner phase2.ScriptRunner
	audit  *audit.Store
}

func newHandler(log *logrus.Entry, runner phase2.ScriptRunner, store *audit.Store) *handler {
	return &handler{log: log, runner: runner, audit: store}
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/validate", h.handleValidate)
	mux.HandleFunc("/necessary-data", h.handleNecessaryData)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		invalidMethod(w, r)
		return
	}

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.WithError(err).Warn("malformed /validate request body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	ctx, err := req.Context.toContext()
	if err != nil {
		h.log.WithError(err).Warn("malformed /validate context")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	verdict, err := validate.Validate(req.TxHex, ctx, h.runner)
	if err != nil {
		h.log.WithError(err).Warn("rejected malformed transaction")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.audit != nil {
		if err := h.audit.Record(r.Context(), *verdict); err != nil {
			h.log.WithError(err).Error("failed to record verdict")
		}
	}

	respondWithJSON(w, verdict)
}

func (h *handler) handleNecessaryData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		invalidMethod(w, r)
		return
	}

	var req necessaryDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.WithError(err).Warn("malformed /necessary-data request body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	raw, err := decodeHex("txHex", req.TxHex)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := txmodel.Parse(raw)
	if err != nil {
		h.log.WithError(err).Warn("rejected malformed transaction")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondWithJSON(w, necessarydata.Extract(tx))
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		invalidMethod(w, r)
		return
	}
	respondWithJSON(w, map[string]string{"status": "ok"})
}

func invalidMethod(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "invalid method for endpoint "+r.URL.Path, http.StatusMethodNotAllowed)
}

func respondWithJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
