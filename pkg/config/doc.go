// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (default .env autoload, explicit LoadEnv)
// and github.com/caarlos0/env/v11 (struct tag parsing). Parsed structs are
// cached per type and prefix, so services can call Load wherever they need
// their settings without re-parsing the environment.
//
//	var cfg client.Config
//	if err := config.Load(&cfg, config.WithPrefix("SOCIALKIT_")); err != nil {
//		log.Fatal(err)
//	}
//
// Use ResetCache or WithoutCache in tests that mutate the environment.
package config
