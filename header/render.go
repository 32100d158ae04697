package header

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aerissecure/calbin/calerr"
)

// bitsPerField is the number of 1-bit members packed into one bit-field struct.
const bitsPerField = 8

// group accumulates one struct while Render walks the tuples.
type group struct {
	name    string
	body    strings.Builder
	bits    float64
	pool    []Tuple
	byteNum int // index of the next bit-field struct in the current run
}

func (g *group) add(t Tuple) error {
	if t.Length == 1 {
		g.pool = append(g.pool, t)
		if len(g.pool) == bitsPerField {
			writeBitField(&g.body, g.name, g.byteNum, g.pool)
			g.byteNum++
			g.bits += bitsPerField
			g.pool = g.pool[:0]
		}
		return nil
	}

	if len(g.pool) != 0 {
		return fmt.Errorf("%w: %s: %d single-bit members before %s do not fill a byte",
			calerr.ErrStructure, g.name, len(g.pool), t.Calibration)
	}
	if t.Length < 0 || math.Mod(t.Length, 8) != 0 {
		return fmt.Errorf("%w: %s: length %g of %s is not a multiple of 8",
			calerr.ErrValue, g.name, t.Length, t.Calibration)
	}
	g.byteNum = 0
	g.bits += t.Length
	fmt.Fprintf(&g.body, "\tchar %s[%d];\n", strings.TrimSpace(t.Calibration), int(t.Length/8))
	return nil
}

func (g *group) close(w io.Writer) error {
	if len(g.pool) != 0 {
		return fmt.Errorf("%w: %s: %d trailing single-bit members do not fill a byte",
			calerr.ErrStructure, g.name, len(g.pool))
	}
	if math.Mod(g.bits, 8) != 0 {
		return fmt.Errorf("%w: %s: bit length %g of the structure is not a multiple of 8",
			calerr.ErrStructure, g.name, g.bits)
	}
	fmt.Fprintf(w, "typedef struct s_%s\n{\n%s} %s;\n\n", g.name, g.body.String(), g.name)
	fmt.Fprintf(w, "union u_%s\n{\n\tchar buffer[%d];\n\t%s map;\n};\n\n", g.name, int(g.bits/8), g.name)
	return nil
}

// writeBitField writes a named struct of eight 1-bit members.
func writeBitField(w io.Writer, name string, n int, members []Tuple) {
	fmt.Fprintf(w, "\tstruct s_%sBYTE%d\n\t{\n", name, n)
	for _, m := range members {
		fmt.Fprintf(w, "\t\tchar %s: 1;\n", m.Calibration)
	}
	fmt.Fprintf(w, "\t} %sBYTE%d;\n\n", name, n)
}

// Render generates C declarations for the tuples.
//
// Consecutive tuples with the same name form one struct, followed by a union
// overlaying it with a byte buffer. Runs of 1-bit members are emitted as
// bit-field structs of exactly eight members. Tuples with an empty name are
// documentation rows and are left out.
//
// Example output for a group "Cfg" holding one 16-bit member:
//
//	typedef struct s_Cfg
//	{
//		char Gain[2];
//	} Cfg;
//
//	union u_Cfg
//	{
//		char buffer[2];
//		Cfg map;
//	};
func Render(tuples []Tuple) (string, error) {
	var (
		out strings.Builder
		g   *group
	)
	for _, t := range tuples {
		if t.Name == "" {
			continue
		}
		if g == nil || t.Name != g.name {
			if g != nil {
				if err := g.close(&out); err != nil {
					return "", err
				}
			}
			g = &group{name: t.Name}
		}
		if err := g.add(t); err != nil {
			return "", err
		}
	}
	if g != nil {
		if err := g.close(&out); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}
