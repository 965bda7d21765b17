// Package config provides centralized configuration management for the dashboard.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern STOCKDASH_<SECTION>_<FIELD>:
//
//	STOCKDASH_SERVER_PORT=8080
//	STOCKDASH_DATASET_FILE=data/nasdq.csv
//	STOCKDASH_DASHBOARD_COMMODITIES=Gold,Oil
//	STOCKDASH_LOGGING_LEVEL=debug
//
// The YAML file is read from STOCKDASH_CONFIG_FILE, or from config.yaml or
// configs/config.yaml when present. Column alias rules can only be set in the file:
//
//	dataset:
//	  path: prices.xlsx
//	  sheet: Daily
//	  aliases:
//	    close price: [Adj Close, Close]
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
