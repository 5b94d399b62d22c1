// Package config loads devdash settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultAPIBaseURL = "http://localhost:8000"
	DefaultTeamID     = "default-team"
	DefaultTimeout    = 30 * time.Second
)

type Config struct {
	APIBaseURL  string
	Timeout     time.Duration
	SessionFile string
	TeamID      string
	GitHubToken string
	GitHubOrg   string
}

func LoadFromEnv() *Config {
	timeout := getEnvAsInt("API_TIMEOUT", int(DefaultTimeout/time.Second))

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", DefaultAPIBaseURL),
		Timeout:     time.Duration(timeout) * time.Second,
		SessionFile: getEnv("DEVDASH_SESSION_FILE", defaultSessionFile()),
		TeamID:      getEnv("DEVDASH_TEAM", DefaultTeamID),
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		GitHubOrg:   os.Getenv("GITHUB_ORG"),
	}
}

// defaultSessionFile is $XDG_CONFIG_HOME/devdash/session.yaml, falling back
// to the working directory when no config dir can be resolved.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".devdash", "session.yaml")
	}
	return filepath.Join(dir, "devdash", "session.yaml")
}

func getEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}

func getEnvAsInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return d
	}
	return i
}
