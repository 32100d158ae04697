package xlsx

import (
	"math"
	"strings"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
)

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// workbookEpoch returns the day zero of the workbook's date serials.
func workbookEpoch(wb *spreadsheet.Workbook) time.Time {
	if pr := wb.X().WorkbookPr; pr != nil && pr.Date1904Attr != nil && *pr.Date1904Attr {
		return epoch1904
	}
	return epoch1900
}

// serialTime converts a date serial (days since epoch, fraction is the time
// of day) to a time rounded to the second.
func serialTime(epoch time.Time, serial float64) time.Time {
	return epoch.Add(time.Duration(math.Round(serial*86400)) * time.Second)
}

// isDateFormat reports whether the cell format styleID displays numbers as a
// date or time.
func isDateFormat(ss spreadsheet.StyleSheet, styleID uint32) bool {
	x := ss.X()
	if x == nil || x.CellXfs == nil || int(styleID) >= len(x.CellXfs.Xf) {
		return false
	}
	xf := x.CellXfs.Xf[styleID]
	if xf == nil || xf.NumFmtIdAttr == nil {
		return false
	}
	id := *xf.NumFmtIdAttr

	// built-in date and time formats
	switch {
	case id >= 14 && id <= 22, id >= 45 && id <= 47:
		return true
	case id < 164:
		return false
	}

	if x.NumFmts == nil {
		return false
	}
	for _, nf := range x.NumFmts.NumFmt {
		if nf != nil && nf.NumFmtIdAttr == id {
			return isDateCode(nf.FormatCodeAttr)
		}
	}
	return false
}

// isDateCode reports whether a custom number format code contains date or
// time tokens. Quoted literals, escaped characters and bracketed sections
// other than elapsed time ([h], [mm], [ss]) are ignored.
func isDateCode(code string) bool {
	// only the positive section matters
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '"':
			j := strings.IndexByte(code[i+1:], '"')
			if j < 0 {
				return false
			}
			i += j + 1
		case '\\', '_', '*':
			i++
		case '[':
			j := strings.IndexByte(code[i+1:], ']')
			if j < 0 {
				return false
			}
			if inner := strings.ToLower(code[i+1 : i+1+j]); strings.Trim(inner, "hms") == "" && inner != "" {
				return true
			}
			i += j + 1
		case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
			return true
		}
	}
	return false
}
