// Package domain contains the core domain entities and types used by the
// application. These types represent the business concepts (raw price
// listings, standardized price records, analysis reports) and are
// intentionally free of infrastructure concerns so they can be shared across
// packages. JSON field names are a compatibility surface for agent callers
// and must not change.
package domain
