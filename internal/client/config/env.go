package config

// parseEnv overlays Config with DOSSIER_* environment variables. lookup is
// os.LookupEnv in production. Empty values are ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("DOSSIER_DATA_DIR", &cfg.DataDir)
	set("DOSSIER_DB_FILE", &cfg.DatabaseFile)
	set("DOSSIER_LOG_LEVEL", &cfg.LogLevel)
	set("DOSSIER_LOG_FILE", &cfg.LogFile)
}
