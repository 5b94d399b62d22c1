package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv(t *testing.T) {
	testCases := []struct {
		name            string
		env             map[string]string
		expectedURL     string
		expectedTeam    string
		expectedTimeout time.Duration
		expectedSession string
	}{
		{
			name: "defaults when nothing is set",
			env: map[string]string{
				"API_BASE_URL":         "",
				"API_TIMEOUT":          "",
				"DEVDASH_TEAM":         "",
				"DEVDASH_SESSION_FILE": "/tmp/session.yaml",
			},
			expectedURL:     DefaultAPIBaseURL,
			expectedTeam:    DefaultTeamID,
			expectedTimeout: 30 * time.Second,
			expectedSession: "/tmp/session.yaml",
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"API_BASE_URL":         "https://api.example.com",
				"API_TIMEOUT":          "5",
				"DEVDASH_TEAM":         "platform",
				"DEVDASH_SESSION_FILE": "/var/devdash.yaml",
			},
			expectedURL:     "https://api.example.com",
			expectedTeam:    "platform",
			expectedTimeout: 5 * time.Second,
			expectedSession: "/var/devdash.yaml",
		},
		{
			name: "invalid timeout falls back to default",
			env: map[string]string{
				"API_BASE_URL":         "",
				"API_TIMEOUT":          "soon",
				"DEVDASH_TEAM":         "",
				"DEVDASH_SESSION_FILE": "/tmp/session.yaml",
			},
			expectedURL:     DefaultAPIBaseURL,
			expectedTeam:    DefaultTeamID,
			expectedTimeout: 30 * time.Second,
			expectedSession: "/tmp/session.yaml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg := LoadFromEnv()

			assert.Equal(t, tc.expectedURL, cfg.APIBaseURL)
			assert.Equal(t, tc.expectedTeam, cfg.TeamID)
			assert.Equal(t, tc.expectedTimeout, cfg.Timeout)
			assert.Equal(t, tc.expectedSession, cfg.SessionFile)
		})
	}
}
