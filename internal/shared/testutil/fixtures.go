package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// YieldHeader is the header of a complete yield components export, in the
// column order the exports use.
var YieldHeader = []string{
	"אפיק השקעה",
	"מס מסלול",
	"שם מסלול אחיד",
	"שם חברה",
	"חברה מקוצר",
	"סוג חיסכון",
	"סוג קופה",
	"סוג מסלול",
	"ח.פ",
	"שנה",
	"רבעון",
	"תרומה",
	"משקל",
	"תשואה",
}

// SampleYieldRows are two well-formed data rows matching YieldHeader: one
// real-estate row and one equity row.
var SampleYieldRows = []string{
	`"נדל""ן",101,כללי,מגדל ביטוח,מגדל,פנסיה,מקיפה,כללי,520000001,2023,1,0.12,0.05,2.4`,
	`מניות,102,מניות,הראל ביטוח,הראל,גמל,תגמולים,מניות,520000002,2024,2,0.3,0.4,3.5`,
}

// YieldCSV renders header and rows as CSV text.
func YieldCSV(header []string, rows ...string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSampleYieldCSV writes a valid two-row export to dir/name.
func WriteSampleYieldCSV(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, YieldCSV(YieldHeader, SampleYieldRows...))
}

// Touch sets the modification time of path.
func Touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
