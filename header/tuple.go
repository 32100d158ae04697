package header

import (
	"fmt"
	"regexp"

	"github.com/aerissecure/calbin/cell"
)

// Tuple is the header-generation view of one spreadsheet row.
type Tuple struct {
	Calibration string  // sanitized member identifier
	Length      float64 // bit length
	Name        string  // group name; empty excludes the row
}

func (t Tuple) String() string {
	return fmt.Sprintf("Calibration: %s, Length: %g, Name: %s", t.Calibration, t.Length, t.Name)
}

var identRe = regexp.MustCompile(`^\d|\W+`)

// Sanitize turns a calibration label into an identifier fragment by
// replacing a leading digit and every run of non-word characters with "_".
func Sanitize(s string) string {
	return identRe.ReplaceAllString(s, "_")
}

// BuildTuple validates the calibration, length and key name cells of a row.
func BuildTuple(calibration, length, name cell.Cell) (Tuple, error) {
	if err := cell.Expect(calibration, cell.RoleCalibration, cell.Text); err != nil {
		return Tuple{}, err
	}
	if err := cell.Expect(length, cell.RoleLength, cell.Number); err != nil {
		return Tuple{}, err
	}
	if err := cell.Expect(name, cell.RoleName, cell.Text, cell.Empty); err != nil {
		return Tuple{}, err
	}
	return Tuple{
		Calibration: Sanitize(calibration.Text),
		Length:      length.Number,
		Name:        name.Text,
	}, nil
}
