// Package jsonmap renders pinmap.json, the canonical machine readable pinmap
// that tooling downstream of the generator consumes.
package jsonmap

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

// Features advertised in the generated block.
var Features = []string{"role_inference", "bus_groups", "differential_pairs"}

// Document is the JSON layout.
type Document struct {
	MCU               string         `json:"mcu"`
	Project           string         `json:"project,omitempty"`
	Pins              map[string]Pin `json:"pins"`
	BusGroups         Groups         `json:"bus_groups"`
	DifferentialPairs []Pair         `json:"differential_pairs"`
	Metadata          Metadata       `json:"metadata"`
	Generated         Generated      `json:"generated"`
}

// Pin is one entry of the pins object, keyed by logical name.
type Pin struct {
	Pins        []string `json:"pins"`
	Number      int      `json:"number"`
	Role        string   `json:"role"`
	Function    string   `json:"function"`
	BusGroup    string   `json:"bus_group"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// Pair is a differential pair.
type Pair struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
	Type     string `json:"type"`
}

// Metadata summarizes the project.
type Metadata struct {
	TotalNets              int      `json:"total_nets"`
	TotalPins              int      `json:"total_pins"`
	DifferentialPairsCount int      `json:"differential_pairs_count"`
	SpecialPinsUsed        []string `json:"special_pins_used"`
	Warnings               []string `json:"warnings,omitempty"`
}

// Generated stamps the document.
type Generated struct {
	Timestamp string   `json:"timestamp"`
	Generator string   `json:"generator"`
	Version   string   `json:"version"`
	Features  []string `json:"features"`
}

// Groups keeps category order when marshaled, which a map would not.
type Groups []pinmap.Group

// MarshalJSON writes {"<category>": ["NAME", ...], ...} in category order.
func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(group.Category))
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(group.Pins))
		for _, p := range group.Pins {
			names = append(names, p.Name)
		}
		val, err := json.Marshal(names)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// A Renderer renders pinmap.json documents.
type Renderer struct {
	Clock clock.Clock
}

// NewRenderer returns a renderer stamping documents with clk.
func NewRenderer(clk clock.Clock) *Renderer {
	if clk == nil {
		clk = clock.New()
	}
	return &Renderer{Clock: clk}
}

// Build assembles the document without encoding it.
func (r *Renderer) Build(p *pinmap.Project) (*Document, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	doc := &Document{
		MCU:               p.MCU,
		Project:           p.Name,
		Pins:              make(map[string]Pin, len(p.Pins)),
		BusGroups:         p.Groups(),
		DifferentialPairs: []Pair{},
		Metadata: Metadata{
			TotalNets:              len(p.Pins),
			TotalPins:              len(p.Pins),
			DifferentialPairsCount: len(p.Pairs),
			SpecialPinsUsed:        append([]string{}, p.SpecialPins...),
			Warnings:               p.Warnings,
		},
		Generated: Generated{
			Timestamp: r.Clock.Now().Format("2006-01-02T15:04:05.000000"),
			Generator: emit.Generator,
			Version:   emit.Version,
			Features:  Features,
		},
	}
	for _, pin := range p.Pins {
		physical := []string{}
		if pin.Physical != "" {
			physical = append(physical, pin.Physical)
		}
		doc.Pins[pin.Name] = Pin{
			Pins:        physical,
			Number:      pin.Number,
			Role:        pin.Role.String(),
			Function:    string(pin.Role.Function()),
			BusGroup:    string(pin.Group()),
			Category:    string(pin.Role.Category()),
			Description: pin.Description,
		}
	}
	for _, pair := range p.Pairs {
		doc.DifferentialPairs = append(doc.DifferentialPairs, Pair{
			Positive: pair.Positive,
			Negative: pair.Negative,
			Type:     strings.ToLower(string(pair.Kind)),
		})
	}
	return doc, nil
}

// Render returns the indented document with a trailing newline.
func (r *Renderer) Render(p *pinmap.Project) (string, error) {
	doc, err := r.Build(p)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding pinmap json")
	}
	return string(out) + "\n", nil
}
