package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the dossier CLI.
//
// Fields:
//   - DataDir: directory holding the database and the log file.
//   - DatabaseFile: SQLite file name inside DataDir (":memory:" keeps
//     everything in RAM for a throwaway session).
//   - LogLevel: debug|info|warn|error.
//   - LogFile: log file name inside DataDir.
type Config struct {
	DataDir      string
	DatabaseFile string
	LogLevel     string
	LogFile      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".dossier"
	c.DatabaseFile = "dossier.db"
	c.LogLevel = "info"
	c.LogFile = "dossier.log"
}

// DatabaseDSN returns the DSN to hand to the SQLite driver.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseFile == ":memory:" {
		return c.DatabaseFile
	}
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// LogPath returns the full path of the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, c.LogFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file (if given), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
