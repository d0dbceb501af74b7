// Package config provides centralized configuration management for the
// yield dashboard. It loads settings from several sources, validates them
// and resolves every path to an absolute one.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Process environment variables (highest priority)
//	2. A .env file in the working directory
//	3. config.yaml or configs/config.yaml
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern YIELD_<SECTION>_<KEY>:
//
//	YIELD_SERVER_PORT=8010
//	YIELD_SOURCE_DATA_DIR=/srv/yields/output
//	YIELD_SOURCE_MODE=latest
//	YIELD_PATHS_FRONTEND_FILE=frontend_spa.html
//	YIELD_LOGGING_LEVEL=debug
//
// # Example YAML
//
//	server:
//	  port: 8010
//	source:
//	  data_dir: output
//	  mode: fixed
//	  file_name: yields.csv
//	security:
//	  allowed_origins: ["*"]
package config
