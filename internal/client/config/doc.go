// Package config loads runtime configuration for the dossier CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//     Comments and trailing commas are accepted.
//  3. Environment variables DOSSIER_DATA_DIR, DOSSIER_DB_FILE,
//     DOSSIER_LOG_LEVEL, DOSSIER_LOG_FILE.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory
//	-l string   log level (debug|info|warn|error)
//
// # JSON schema
//
//	{
//	  // where the database and log live
//	  "data_dir": "/home/jane/.dossier",
//	  "database_file": "dossier.db",
//	  "log_level": "debug",
//	  "log_file": "dossier.log",
//	}
package config
