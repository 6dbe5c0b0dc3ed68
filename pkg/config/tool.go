package config

import (
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
)

// Tool holds the CLI defaults loaded from an optional TOML file.
type Tool struct {
	Cadius     string `koanf:"cadius" toml:"cadius"`
	Runner     string `koanf:"runner" toml:"runner"`
	VolumeName string `koanf:"volume_name" toml:"volume_name"`
	Access     string `koanf:"access" toml:"access"`
	LossyText  bool   `koanf:"lossy_text" toml:"lossy_text"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"cadius":      "cadius",
		"runner":      "build/prodos8emu_run",
		"volume_name": "EDASM",
		"access":      prodosmeta.DefaultAccess,
		"lossy_text":  false,
	}
}

// candidateFiles are probed in the working directory when no explicit
// config path is given.
var candidateFiles = []string{".p8prep.toml", "p8prep.toml"}

// LoadTool loads tool configuration: built-in defaults, overridden by
// the TOML file at path if given, or by the first candidate file found
// in the working directory otherwise. A missing optional file is fine;
// a named file that cannot be read or parsed is an error.
func LoadTool(path string) (*Tool, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading defaults")
	}

	if path == "" {
		for _, candidate := range candidateFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path).
			WithDetail("path", path)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "loading config from %s", path).
				WithDetail("path", path)
		}
	}

	var cfg Tool
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling config")
	}
	return &cfg, nil
}

// DefaultToolTOML renders the built-in defaults as a TOML document, for
// the genconfig command.
func DefaultToolTOML() ([]byte, error) {
	cfg := Tool{
		Cadius:     "cadius",
		Runner:     "build/prodos8emu_run",
		VolumeName: "EDASM",
		Access:     prodosmeta.DefaultAccess,
	}
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "marshaling default config")
	}
	return data, nil
}
