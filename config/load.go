package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads, substitutes environment variables into and decodes the config
// at path. The format follows the extension: .yaml, .yml, .json or .toml.
// The result is not validated.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Read(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "loading config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Read decodes config bytes in the format named by ext.
func Read(data []byte, ext string) (*Config, error) {
	expanded, err := envsubst.Bytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "substituting environment variables")
	}

	raw := map[string]interface{}{}
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		err = yaml.Unmarshal(expanded, &raw)
	case "json":
		err = json.Unmarshal(expanded, &raw)
	case "toml":
		err = toml.Unmarshal(expanded, &raw)
	default:
		return nil, errors.Errorf("unsupported config format %q (want .yaml, .yml, .json or .toml)", ext)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return &cfg, nil
}
