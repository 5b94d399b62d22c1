// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naka-gawa/devdash/internal/config"
	"github.com/naka-gawa/devdash/internal/gateway"
	"github.com/naka-gawa/devdash/internal/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devdash",
	Short: "A terminal dashboard for team productivity metrics.",
	Long: `devdash talks to the productivity API to show commit activity,
pull request analytics, sprints, AI insights and contributors for a team.
Sign in once with "devdash auth login"; the session token is kept in a local file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the productivity API (default $API_BASE_URL or "+config.DefaultAPIBaseURL+")")
	rootCmd.PersistentFlags().StringP("team", "t", "", "Team identifier (default $DEVDASH_TEAM or "+config.DefaultTeamID+")")
	rootCmd.PersistentFlags().String("session-file", "", "Where the session token is stored (default $DEVDASH_SESSION_FILE)")
}

// newLogger discards all logs unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadConfig reads the environment, then applies any persistent flag overrides.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.LoadFromEnv()
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIBaseURL = v
	}
	if v, _ := cmd.Flags().GetString("team"); v != "" {
		cfg.TeamID = v
	}
	if v, _ := cmd.Flags().GetString("session-file"); v != "" {
		cfg.SessionFile = v
	}
	return cfg
}

// loginRedirector is where an expired session sends the CLI user.
var loginRedirector = gateway.RedirectFunc(func(path string) {
	if path == gateway.LoginPath {
		fmt.Fprintln(os.Stderr, `Your session has expired. Run "devdash auth login" to sign in again.`)
	}
})

// newAPIClient wires the API client to the session file and logger.
func newAPIClient(cmd *cobra.Command) (*gateway.APIClient, *config.Config) {
	cfg := loadConfig(cmd)
	logger := newLogger(cmd)
	store := session.NewFileStore(cfg.SessionFile)
	logger.Printf("Using API %s, session file %s", cfg.APIBaseURL, store.Path())

	client, err := gateway.NewAPIClient(cfg.APIBaseURL, store,
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithLogger(logger),
		gateway.WithRedirector(loginRedirector),
	)
	if err != nil {
		fail("Failed to create API client: %v", err)
	}
	return client, cfg
}

// printJSON writes v to standard output as pretty-printed JSON.
func printJSON(v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("Failed to marshal results to JSON: %v", err)
	}
	fmt.Println(string(jsonData))
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
