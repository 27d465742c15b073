package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"jobscreen-engine/internal/store"
)

type DomainsHandler struct {
	DB *sql.DB
}

// GetByPath serves /api/domains/{company}.
func (h DomainsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimPrefix(r.URL.Path, "/api/domains/")
	if company == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "company name is required")
		return
	}

	dom, err := store.GetCompanyDomain(r.Context(), h.DB, company)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if dom == "" {
		WriteError(w, r, http.StatusNotFound, "not_cached", "no cached domain for this company")
		return
	}
	writeJSON(w, map[string]any{"company": company, "domain": dom})
}

// PutByPath caches a known-good domain for a company.
func (h DomainsHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimPrefix(r.URL.Path, "/api/domains/")
	if company == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "company name is required")
		return
	}

	var body struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(body.Domain) == "" {
		WriteError(w, r, http.StatusUnprocessableEntity, "missing_domain", "domain is required")
		return
	}

	if err := store.UpsertCompanyDomain(r.Context(), h.DB, company, body.Domain); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
