package netlist

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

type eagleFile struct {
	XMLName xml.Name `xml:"eagle"`
	Version string   `xml:"version,attr"`
	Drawing struct {
		Schematic *struct {
			Sheets []struct {
				Nets []struct {
					Name     string `xml:"name,attr"`
					Segments []struct {
						PinRefs []struct {
							Part string `xml:"part,attr"`
							Pin  string `xml:"pin,attr"`
						} `xml:"pinref"`
					} `xml:"segment"`
				} `xml:"nets>net"`
			} `xml:"sheets>sheet"`
		} `xml:"schematic"`
	} `xml:"drawing"`
}

// ParseEagle reads an EAGLE .sch file and returns the nets of part ref across
// every sheet.
func ParseEagle(r io.Reader, ref string) ([]Net, error) {
	var doc eagleFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		var se xml.UnmarshalError
		if errors.As(err, &se) {
			return nil, errors.Errorf("not a valid EAGLE file: %s", se)
		}
		return nil, errors.Wrap(err, "failed to parse schematic XML")
	}
	sch := doc.Drawing.Schematic
	if sch == nil {
		return nil, errors.New("file does not contain schematic data")
	}
	if len(sch.Sheets) == 0 {
		return nil, errors.New("no sheets found in schematic")
	}

	var b builder
	for _, sheet := range sch.Sheets {
		for _, net := range sheet.Nets {
			if net.Name == "" {
				continue
			}
			for _, seg := range net.Segments {
				for _, pr := range seg.PinRefs {
					if pr.Part == ref && pr.Pin != "" {
						b.add(net.Name, pr.Pin)
					}
				}
			}
		}
	}
	if len(b.nets) == 0 {
		return nil, &NoNetsError{Ref: ref}
	}
	return b.nets, nil
}
