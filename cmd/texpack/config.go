package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is looked for in the working directory when no -config
// flag is given.
const defaultConfigFile = "texpack.toml"

// config holds CLI defaults, optionally overridden by a TOML file:
//
//	destination = "renders/"
//	unpack_destination = "renders/unpacked/"
//	log_level = "debug"
type config struct {
	Destination       string `toml:"destination"`
	UnpackDestination string `toml:"unpack_destination"`
	LogLevel          string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Destination:       "out/",
		UnpackDestination: "out/unpacked/",
		LogLevel:          "info",
	}
}

// loadConfig reads the TOML config at path. An empty path means "use the
// default file if present": a missing default file is fine, a missing
// explicit file is an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
