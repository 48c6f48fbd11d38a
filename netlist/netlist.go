// Package netlist reads the nets attached to one MCU out of a CAD export:
// either a BOM/netlist CSV or an EAGLE schematic.
package netlist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// A Net is a named electrical net and the MCU pins on it, in file order.
type Net struct {
	Name string
	Pins []string
}

// builder accumulates nets in first-seen order and drops repeated pins.
type builder struct {
	index map[string]int
	nets  []Net
}

func (b *builder) add(net, pin string) {
	if b.index == nil {
		b.index = map[string]int{}
	}
	i, ok := b.index[net]
	if !ok {
		i = len(b.nets)
		b.index[net] = i
		b.nets = append(b.nets, Net{Name: net})
	}
	for _, have := range b.nets[i].Pins {
		if have == pin {
			return
		}
	}
	b.nets[i].Pins = append(b.nets[i].Pins, pin)
}

// NoNetsError is returned when a file has no nets for the requested part.
type NoNetsError struct {
	Ref string
}

func (e *NoNetsError) Error() string {
	return fmt.Sprintf("no nets found for MCU reference %q", e.Ref)
}

// Load reads path from fs, picking the parser from the extension: .csv for
// netlist CSVs and .sch for EAGLE schematics.
func Load(fs afero.Fs, path, ref string) ([]Net, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening netlist %s", path)
	}
	defer f.Close()

	var nets []Net
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		nets, err = ParseCSV(f, ref)
	case ".sch":
		nets, err = ParseEagle(f, ref)
	default:
		return nil, errors.Errorf("unsupported netlist format %q (want .csv or .sch)", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return nets, nil
}
