package core

import (
	"errors"
	"time"
)

type (
	// Subject is the denormalized object snapshot attached to a transaction.
	Subject struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}

	// Transaction is one ledger entry from the platform. Immutable once
	// fetched; the pipeline never mutates it.
	Transaction struct {
		ID        int64     `json:"id"`
		CreatedAt time.Time `json:"createdAt"`
		ObjectID  int64     `json:"objectId"`
		Type      string    `json:"type"`
		Amount    int64     `json:"amount"`
		Path      string    `json:"path"`
		Object    Subject   `json:"object"`
	}

	// Account is the fetch result the pipeline consumes. Transactions are
	// expected pre-sorted ascending by creation time; the pipeline does not
	// re-sort and the month bucketing depends on that ordering.
	Account struct {
		Login        string        `json:"login"`
		TotalUp      int64         `json:"totalUp"`
		TotalDown    int64         `json:"totalDown"`
		Transactions []Transaction `json:"transactions"`
	}

	// MonthBucket is one point on the progression series. Value is in
	// kilo experience points.
	MonthBucket struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	}

	// BreakdownSlice is one subject's share of total experience. Created
	// once per unique subject name, never updated afterwards.
	BreakdownSlice struct {
		SourceName string  `json:"sourceName"`
		Amount     int64   `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// Metrics holds the headline scalars. RatioKnown is false when the
	// received total is zero, in which case AuditRatio must not be used.
	Metrics struct {
		Level           int64   `json:"level"`
		TotalXP         int64   `json:"totalXp"`
		TotalXPMB       float64 `json:"totalXpMb"`
		AuditDoneMB     float64 `json:"auditDoneMb"`
		AuditReceivedMB float64 `json:"auditReceivedMb"`
		AuditRatio      float64 `json:"auditRatio"`
		RatioKnown      bool    `json:"ratioKnown"`
	}

	// Dashboard is the full render-ready output of one aggregation pass.
	Dashboard struct {
		Login       string           `json:"login"`
		Metrics     Metrics          `json:"metrics"`
		Progression []MonthBucket    `json:"progression"`
		Breakdown   []BreakdownSlice `json:"breakdown"`
	}
)

var (
	// ErrMalformedAccount reports a fetch result without a user login or
	// transactions list. The caller must not render partial state.
	ErrMalformedAccount = errors.New("malformed account: missing user or transactions")

	// ErrZeroTotal reports a breakdown over a zero experience total while
	// positive-amount records exist.
	ErrZeroTotal = errors.New("breakdown: zero experience total")
)
