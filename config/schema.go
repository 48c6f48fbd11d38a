package config

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the config file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&Config{})
	s.Title = "PinmapGen project"
	return s
}
