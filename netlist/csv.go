package netlist

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// RequiredColumns must all be present in a netlist CSV header.
var RequiredColumns = []string{"Net", "Pin", "Component", "RefDes"}

// ParseCSV reads a Fusion/EAGLE BOM netlist export and returns the nets of
// the part ref. Blank rows are skipped; a row with any required field empty
// is an error naming its line.
func ParseCSV(r io.Reader, ref string) ([]Net, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("CSV file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "CSV parsing error")
	}
	cols := map[string]int{}
	for i, h := range head {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("CSV missing required columns: %s", strings.Join(missing, ", "))
	}

	var b builder
	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "CSV parsing error")
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		field := func(name string) string {
			i := cols[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		for _, c := range RequiredColumns {
			if field(c) == "" {
				return nil, errors.Errorf("empty %s at line %d", c, line)
			}
		}
		rows++
		if field("RefDes") == ref {
			b.add(field("Net"), field("Pin"))
		}
	}
	if rows == 0 {
		return nil, errors.New("CSV file contains no valid data rows")
	}
	if len(b.nets) == 0 {
		return nil, &NoNetsError{Ref: ref}
	}
	return b.nets, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
