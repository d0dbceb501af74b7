package domain

// Metadata summarizes one load of the dataset. The front end uses it to build
// its filter controls, so every list is sorted ascending, free of duplicates
// and never null (an empty dataset yields empty arrays).
type Metadata struct {
	// File is the base name of the source file the records were loaded from.
	File string `json:"file"`

	Companies      []string `json:"companies"`
	Tracks         []string `json:"tracks"`
	Categories     []string `json:"categories"`
	SavingTypes    []string `json:"saving_types"`
	FundTypes      []string `json:"fund_types"`
	TrackTypes     []string `json:"track_types"`
	LiquidityTypes []string `json:"liquidity_types"`

	Years    []int64 `json:"years"`
	Quarters []int64 `json:"quarters"`

	// MinYear and MaxYear are nil when no record has a year.
	MinYear *int64 `json:"min_year"`
	MaxYear *int64 `json:"max_year"`

	TotalRows int `json:"total_rows"`
}

// PipelineStats counts the anomalies the pipeline absorbed while producing a
// dataset. None of them is an error; they exist for logs and metrics.
type PipelineStats struct {
	// SourceRows is the number of data rows read from the file.
	SourceRows int `json:"source_rows"`

	// NullCoercions counts non-empty numeric cells that could not be parsed
	// or held NaN/Infinity and were therefore turned into null.
	NullCoercions int `json:"null_coercions"`

	// LiquidityDerived counts rows whose liquidity was computed from the
	// category, either because the column was absent or its value was not
	// one of the two canonical labels.
	LiquidityDerived int `json:"liquidity_derived"`

	// QuarterOutOfRange counts rows whose quarter is outside 1..4. Such
	// quarters are kept as-is.
	QuarterOutOfRange int `json:"quarter_out_of_range"`

	// Sanitized counts float values nulled by the final NaN/Infinity guard.
	Sanitized int `json:"sanitized"`
}
