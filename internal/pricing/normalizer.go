package pricing

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"pricelens/pkg/domain"
	"pricelens/pkg/logger"
	"pricelens/pkg/metrics"

	"go.uber.org/zap"
)

// Rejection reasons attached to items that do not survive normalization.
const (
	ReasonFetchFailed      = "source fetch failed"
	ReasonNotExtractable   = "price not extractable"
	ReasonFailedValidation = "failed validation"
)

// UnknownDomain is the source domain recorded when the listing URL cannot be
// parsed.
const UnknownDomain = "unknown"

// Normalizer composes price extraction, source-identity derivation and
// validation into one standardized record per raw listing.
type Normalizer struct {
	parser    *Parser
	validator *Validator
}

// NewNormalizer creates a Normalizer from the given parser and validator.
func NewNormalizer(parser *Parser, validator *Validator) *Normalizer {
	return &Normalizer{parser: parser, validator: validator}
}

// NewDefaultNormalizer creates a Normalizer wired with the stock currency
// table and validation limits.
func NewDefaultNormalizer() *Normalizer {
	table := DefaultCurrencyTable()

	return NewNormalizer(NewParser(table), NewValidator(DefaultLimits(), table))
}

// DomainFromURL derives the source domain of a listing: the lowercased host
// of the URL with a leading "www." stripped, or UnknownDomain when the URL
// cannot be parsed.
func DomainFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return UnknownDomain
	}

	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// Normalize turns one raw listing into a standardized record, or a rejected
// item carrying the reason. Exactly one of the return values is non-nil.
// Normalize never panics past its boundary: any unexpected failure is
// converted into a rejected item so one bad listing cannot abort a batch.
func (n *Normalizer) Normalize(item domain.RawListing) (rec *domain.Record, rej *domain.RejectedItem) {
	defer func() {
		if p := recover(); p != nil {
			rec = nil
			rej = &domain.RejectedItem{Item: item, Reason: fmt.Sprintf("unexpected failure: %v", p)}
		}
	}()

	if !item.Success {
		return nil, &domain.RejectedItem{Item: item, Reason: ReasonFetchFailed}
	}

	price, currency, ok := n.parser.Extract(item.RawPrice)
	if !ok {
		return nil, &domain.RejectedItem{Item: item, Reason: ReasonNotExtractable}
	}

	candidate := domain.Record{
		ProductName:   item.Product,
		Website:       item.Website,
		Domain:        DomainFromURL(item.Website),
		Price:         price,
		Currency:      currency,
		OriginalPrice: item.RawPrice,
		Title:         item.Title,
	}
	if !n.validator.Valid(candidate) {
		return nil, &domain.RejectedItem{Item: item, Reason: ReasonFailedValidation}
	}

	return &candidate, nil
}

// ProcessBatch normalizes a batch of raw listings into a partitioned result:
// accepted records, rejected items with reasons, and a summary. The success
// rate is accepted/(accepted+rejected)*100, or 0 for an empty batch.
func (n *Normalizer) ProcessBatch(ctx context.Context, items []domain.RawListing) domain.BatchResult {
	res := domain.BatchResult{
		Records:  []domain.Record{},
		Rejected: []domain.RejectedItem{},
	}

	for _, item := range items {
		rec, rej := n.Normalize(item)
		if rej != nil {
			logger.Debug(ctx, "listing rejected",
				zap.String("website", rej.Item.Website),
				zap.String("reason", rej.Reason))
			metrics.ListingsProcessed.WithLabelValues("rejected").Inc()
			res.Rejected = append(res.Rejected, *rej)

			continue
		}
		metrics.ListingsProcessed.WithLabelValues("accepted").Inc()
		res.Records = append(res.Records, *rec)
	}

	res.Summary = domain.BatchSummary{
		TotalProcessed: len(res.Records),
		TotalFailed:    len(res.Rejected),
	}
	if total := len(res.Records) + len(res.Rejected); total > 0 {
		res.Summary.SuccessRate = round2(float64(len(res.Records)) / float64(total) * 100)
	}

	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
