// Package config loads picoview configuration.
//
// It uses Viper to read an optional config.yml, loads an optional .env file
// with godotenv, and lets environment variables override any key that has a
// registered default.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("picoview", &cfg, config.WithDefaults(map[string]any{
//	    "api.base_address": "http://localhost:5000",
//	}))
//
// With the defaults above, PICOVIEW_API_BASE_ADDRESS overrides the file value.
package config
