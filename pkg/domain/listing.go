package domain

// RawListing is one scrape or search hit for a product at one source, exactly
// as produced by the fetching collaborator. It is immutable and consumed
// exactly once by the normalizer.
type RawListing struct {
	// Product is the product identifier the caller searched for.
	Product string `json:"product"`
	// Website is the source URL the listing was collected from.
	Website string `json:"website"`
	// RawPrice is the free-text price as found on the page. May be empty.
	RawPrice string `json:"price"`
	// Success reports whether the source fetch succeeded at all.
	Success bool `json:"success"`
	// Title is the extracted page title, when available.
	Title string `json:"title,omitempty"`
	// Error carries the fetch error message when Success is false.
	Error string `json:"error,omitempty"`
}

// Record is a validated, comparable price observation for one product at one
// source, in canonical numeric/currency form. Records are created once by the
// normalizer and never mutated afterwards.
type Record struct {
	ProductName string `json:"product_name"`
	// Website is the full source URL.
	Website string `json:"website"`
	// Domain is the lowercased host of Website with a leading "www."
	// stripped, or "unknown" when the URL cannot be parsed.
	Domain string `json:"domain"`
	// Price is the parsed numeric price. Always > 0 for validated records.
	Price float64 `json:"price"`
	// Currency is a 3-letter code detected from the raw price text.
	Currency string `json:"currency"`
	// OriginalPrice preserves the raw text the price was extracted from.
	OriginalPrice string `json:"original_price_string"`
	Title         string `json:"title,omitempty"`
}

// RejectedItem captures a listing that could not be turned into a valid
// Record, together with a human-readable reason for diagnostics.
type RejectedItem struct {
	Item   RawListing `json:"original_input"`
	Reason string     `json:"reason"`
}

// BatchSummary describes the outcome of normalizing one batch of listings.
type BatchSummary struct {
	TotalProcessed int `json:"total_processed"`
	TotalFailed    int `json:"total_failed"`
	// SuccessRate is accepted/(accepted+rejected)*100, or 0 for an empty batch.
	SuccessRate float64 `json:"success_rate"`
}

// BatchResult partitions one normalization run into accepted records and
// rejected items. Per-item failures never abort the batch; they end up in
// Rejected with a reason.
type BatchResult struct {
	Records  []Record       `json:"data_list"`
	Summary  BatchSummary   `json:"summary"`
	Rejected []RejectedItem `json:"failed_items"`
}
