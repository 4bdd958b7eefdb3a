package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dossier/internal/flagx"
	"github.com/tidwall/jsonc"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DataDir      string `json:"data_dir"`
	DatabaseFile string `json:"database_file"`
	LogLevel     string `json:"log_level"`
	LogFile      string `json:"log_file"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config in args. Without either flag it does nothing.
//
// The file may contain // and /* */ comments and trailing commas. Keys that
// are missing or empty keep their current value. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.DatabaseFile, jc.DatabaseFile)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFile, jc.LogFile)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
