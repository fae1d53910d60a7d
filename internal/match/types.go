package match

import (
	"time"
)

// SourceRecord is one customer row from an operational system (BuildOps or
// Spectrum). Immutable once loaded.
type SourceRecord struct {
	ID             string
	CustomerNumber string
	Name           string
	Email          string
	Phone          string
	City           string
	State          string
	Zip            string
	CompanyCode    string
	SourceSystem   string
}

// ReferenceRecord is one CRM account row. ExternalCode is nil until the
// account has been linked to an operational customer.
type ReferenceRecord struct {
	AccountID          string
	Name               string
	Email              string
	Phone              string
	BillingCity        string
	BillingState       string
	BillingPostalCode  string
	ShippingCity       string
	ShippingState      string
	ShippingPostalCode string
	ExternalCode       *string
}

// CandidatePair is one source record paired with one reference record,
// eligible for scoring. Transient; never persisted.
type CandidatePair struct {
	Source      *SourceRecord
	Reference   *ReferenceRecord
	BlockingKey string
}

// ConfidenceBand classifies match quality from the total score.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "HIGH"
	BandMedium ConfidenceBand = "MEDIUM"
	BandLow    ConfidenceBand = "LOW"
)

// BandFor maps a total score to its confidence band.
func BandFor(totalScore int) ConfidenceBand {
	switch {
	case totalScore <= 0:
		return BandHigh
	case totalScore <= 2:
		return BandMedium
	default:
		return BandLow
	}
}

// Result is one scored candidate pair that survived the distance threshold.
// A source record may have zero, one or many result rows.
type Result struct {
	CompanyCode      string
	SourceSystem     string
	CustomerID       string
	CustomerNumber   string
	AccountID        string
	ExternalCode     *string
	Dist             int
	EmailScore       int
	PhoneScore       int
	ZipScore         int
	AddressCityScore int
	StateScore       int
	MultiSignalBonus int
	TotalScore       int
	ConfidenceBand   ConfidenceBand
	BestMatchFlag    bool
	RunDate          time.Time
}
