package v1handler

import (
	"net/http"

	"pricelens/pkg/domain"
	"pricelens/pkg/serrors"
)

// NormalizeRequest carries raw listings from the scraping collaborators.
type NormalizeRequest struct {
	Results []domain.RawListing `json:"results"`
}

// Normalize turns a batch of raw listings into standardized records plus
// rejected items.
func (h Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Normalizer.ProcessBatch(r.Context(), req.Results))
}

// AnalysisRequest carries a batch of standardized records.
type AnalysisRequest struct {
	DataList []domain.Record `json:"data_list"`
}

// AnalysisBest returns the best deal in the batch.
func (h Handler) AnalysisBest(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Analyzer.FindBest(req.DataList))
}

// AnalysisFull returns the full comparative analysis over the batch.
func (h Handler) AnalysisFull(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Analyzer.FullAnalysis(req.DataList))
}

// CompareRequest carries a batch plus the domains to compare.
type CompareRequest struct {
	DataList    []domain.Record `json:"data_list"`
	SiteDomains []string        `json:"site_domains"`
}

// AnalysisCompare returns a targeted comparison across the requested domains.
func (h Handler) AnalysisCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)

		return
	}
	if len(req.SiteDomains) == 0 {
		writeError(r.Context(), w, serrors.With(serrors.ErrBadRequest, "site_domains is required"))

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Analyzer.CompareSites(req.DataList, req.SiteDomains))
}

// LookupRequest names the product to look up and, optionally, the exact
// listing pages to consult instead of discovering them through search.
type LookupRequest struct {
	ProductName string   `json:"product_name"`
	WebsiteURLs []string `json:"website_urls,omitempty"`
}

// LookupProduct runs the end-to-end pipeline: search, scrape, normalize,
// analyze.
func (h Handler) LookupProduct(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)

		return
	}

	report, err := h.deps.Lookup.Product(r.Context(), req.ProductName, req.WebsiteURLs)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, report)
}
