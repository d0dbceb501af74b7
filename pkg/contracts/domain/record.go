package domain

// Liquidity labels. These are the only two values a Record's Liquidity may
// hold once the pipeline has resolved it; a nil Liquidity means the row had no
// investment channel to classify.
const (
	LiquidityLiquid   = "liquid"
	LiquidityIlliquid = "illiquid"
)

// Record is one row of the yield-components dataset in its canonical
// (English-keyed) schema. It is the single shape every consumer of the
// dataset sees: the HTTP API, the CLI and the tests.
//
// Every field is nullable. Pointer fields encode as JSON null when nil, and
// Identifier fields encode as null when empty. Float fields never hold NaN or
// ±Inf after sanitization.
//
// Usage:
//
//	rec := Record{
//	    Category: StringPtr("מניות"),
//	    Year:     Int64Ptr(2024),
//	    Yield:    Float64Ptr(3.5),
//	}
type Record struct {
	// Category is the investment channel (source column "אפיק השקעה").
	Category *string `json:"category"`

	// TrackID is the track number (source column "מס מסלול").
	TrackID Identifier `json:"track_id"`

	// TrackName is the unified track name (source column "שם מסלול אחיד").
	TrackName *string `json:"track_name"`

	Company      *string `json:"company"`
	CompanyShort *string `json:"company_short"`

	SavingType *string `json:"saving_type"`
	FundType   *string `json:"fund_type"`

	// TrackType is only present in newer source files; nil otherwise.
	TrackType *string `json:"track_type"`

	// CompanyID is the issuer registration number (source column "ח.פ").
	CompanyID Identifier `json:"company_id"`

	Year    *int64 `json:"year"`
	Quarter *int64 `json:"quarter"`

	Contribution *float64 `json:"contribution"`
	Weight       *float64 `json:"weight"`
	Yield        *float64 `json:"yield"`

	// Liquidity is LiquidityLiquid, LiquidityIlliquid or nil.
	Liquidity *string `json:"liquidity"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }
