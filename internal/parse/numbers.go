package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vendiq/pickrun/internal/workbook"
)

// formulaErrors are spreadsheet error literals; they resolve to nil, never zero.
var formulaErrors = map[string]struct{}{
	"#N/A":          {},
	"#VALUE!":       {},
	"#REF!":         {},
	"#DIV/0!":       {},
	"#NAME?":        {},
	"#NULL!":        {},
	"#NUM!":         {},
	"#ERROR!":       {},
	"#GETTING_DATA": {},
}

// intValue parses a cell as a whole quantity. Blank, non-numeric and
// formula-error cells yield nil so "no data" stays distinguishable from a
// zero count. Fractional values are rounded half away from zero, matching
// how exports render computed columns.
func intValue(c workbook.Cell) *int {
	switch c.Kind {
	case workbook.KindNumber:
		v := int(math.Round(c.Num))
		return &v
	case workbook.KindString:
		s := strings.TrimSpace(c.Str)
		if s == "" {
			return nil
		}
		if _, bad := formulaErrors[strings.ToUpper(s)]; bad {
			return nil
		}
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		v := int(math.Round(f))
		return &v
	default:
		return nil
	}
}

// stringValue returns the trimmed cell text, or nil when blank.
func stringValue(c workbook.Cell) *string {
	var s string
	switch c.Kind {
	case workbook.KindString:
		s = strings.TrimSpace(c.Str)
	case workbook.KindNumber:
		s = strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// dateLayouts are the date renderings observed across exports.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/06",
	"1/2/06",
}

// excel serial day 1 is 1899-12-31; day 60 is the fictitious 1900-02-29, so
// the usual epoch of 1899-12-30 absorbs the off-by-one for modern dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// serialBounds keeps serial detection to plausible run dates (1954–2063) so
// ordinary quantities are not mistaken for dates.
const (
	serialMin = 20000
	serialMax = 60000
)

// dateValue parses a cell as a calendar date at midnight UTC. Numeric cells
// within serialBounds decode as Excel date serials.
func dateValue(c workbook.Cell) *time.Time {
	switch c.Kind {
	case workbook.KindTime:
		t := time.Date(c.Time.Year(), c.Time.Month(), c.Time.Day(), 0, 0, 0, 0, time.UTC)
		return &t
	case workbook.KindNumber:
		if c.Num < serialMin || c.Num > serialMax {
			return nil
		}
		t := excelEpoch.AddDate(0, 0, int(c.Num))
		return &t
	case workbook.KindString:
		s := strings.TrimSpace(c.Str)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
				return &t
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f >= serialMin && f <= serialMax {
			t := excelEpoch.AddDate(0, 0, int(f))
			return &t
		}
		return nil
	default:
		return nil
	}
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
}

// findDateInText extracts the first date-looking token from free text such
// as a sheet name or a workbook filename.
func findDateInText(s string) *time.Time {
	for _, re := range datePatterns {
		if m := re.FindString(s); m != "" {
			if t := dateValue(workbook.String(m)); t != nil {
				return t
			}
		}
	}
	return nil
}
