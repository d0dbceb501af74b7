package dataprocessing

// Source column labels as they appear in the header row.
const (
	ColCategory     = "אפיק השקעה"
	ColTrackID      = "מס מסלול"
	ColTrackName    = "שם מסלול אחיד"
	ColCompany      = "שם חברה"
	ColCompanyShort = "חברה מקוצר"
	ColSavingType   = "סוג חיסכון"
	ColFundType     = "סוג קופה"
	ColTrackType    = "סוג מסלול"
	ColCompanyID    = "ח.פ"
	ColYear         = "שנה"
	ColQuarter      = "רבעון"
	ColContribution = "תרומה"
	ColWeight       = "משקל"
	ColYield        = "תשואה"
	ColLiquidity    = "סחירות"
)

// RequiredColumns is the ordered list of columns every source must carry.
// The track-type and liquidity columns are optional.
var RequiredColumns = []string{
	ColCategory,
	ColTrackID,
	ColTrackName,
	ColCompany,
	ColCompanyShort,
	ColSavingType,
	ColFundType,
	ColCompanyID,
	ColYear,
	ColQuarter,
	ColContribution,
	ColWeight,
	ColYield,
}

// ValidateSchema returns a *SchemaError naming every required column absent
// from t, or nil.
func ValidateSchema(t *Table) error {
	var missing []string
	for _, name := range RequiredColumns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
