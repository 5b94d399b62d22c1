package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/naka-gawa/devdash/internal/callback"
	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to the productivity API and manage the session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in through GitHub or GitLab",
	Long: `Starts a local callback server, prints the provider's authorization URL and
waits for the redirect. The resulting session token is saved to the session file.`,
	Run: func(cmd *cobra.Command, args []string) {
		provider := providerFlag(cmd)
		listenAddr, _ := cmd.Flags().GetString("listen")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		client, _ := newAPIClient(cmd)
		logger := newLogger(cmd)

		listener, err := callback.Listen(listenAddr, logger)
		if err != nil {
			fail("%v", err)
		}
		defer listener.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		authURL, err := client.GetAuthorizationURL(ctx, provider, listener.RedirectURI())
		if err != nil {
			fail("Failed to get authorization URL: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Open this URL in your browser to sign in with %s:\n\n  %s\n\nWaiting for the redirect to %s ...\n",
			provider, authURL.AuthorizationURL, listener.RedirectURI())

		res, err := listener.Wait(ctx)
		if err != nil {
			fail("Sign-in did not complete: %v", err)
		}
		if res.State != authURL.State {
			fail("Sign-in aborted: state mismatch in OAuth callback")
		}

		resp, err := client.HandleOAuthCallback(ctx, res.Code, res.State, provider)
		if err != nil {
			fail("Failed to complete sign-in: %v", err)
		}
		fmt.Printf("Signed in as %s.\n", resp.User.Username)
	},
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the provider authorization URL for a redirect URI",
	Run: func(cmd *cobra.Command, args []string) {
		provider := providerFlag(cmd)
		redirectURI, _ := cmd.Flags().GetString("redirect-uri")

		client, _ := newAPIClient(cmd)
		authURL, err := client.GetAuthorizationURL(context.Background(), provider, redirectURI)
		if err != nil {
			fail("Failed to get authorization URL: %v", err)
		}
		printJSON(authURL)
	},
}

var authCallbackCmd = &cobra.Command{
	Use:   "callback",
	Short: "Exchange an authorization code for a session by hand",
	Run: func(cmd *cobra.Command, args []string) {
		provider := providerFlag(cmd)
		code, _ := cmd.Flags().GetString("code")
		state, _ := cmd.Flags().GetString("state")

		client, _ := newAPIClient(cmd)
		resp, err := client.HandleOAuthCallback(context.Background(), code, state, provider)
		if err != nil {
			fail("Failed to complete sign-in: %v", err)
		}
		printJSON(resp.User)
	},
}

var authMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newAPIClient(cmd)
		user, err := client.GetCurrentUser(context.Background())
		if err != nil {
			fail("Failed to get current user: %v", err)
		}
		printJSON(user)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and remove the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newAPIClient(cmd)
		if err := client.Logout(context.Background()); err != nil {
			fail("Failed to log out: %v", err)
		}
		fmt.Println("Logged out.")
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Replace the stored token with a fresh one",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newAPIClient(cmd)
		resp, err := client.RefreshToken(context.Background())
		if err != nil {
			fail("Failed to refresh session: %v", err)
		}
		fmt.Printf("Session refreshed, expires in %s.\n", time.Duration(resp.ExpiresIn)*time.Second)
	},
}

func providerFlag(cmd *cobra.Command) domain.Provider {
	p, _ := cmd.Flags().GetString("provider")
	provider := domain.Provider(p)
	if !provider.Valid() {
		fail("Invalid --provider %q: use github or gitlab", p)
	}
	return provider
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authURLCmd, authCallbackCmd, authMeCmd, authLogoutCmd, authRefreshCmd)

	for _, c := range []*cobra.Command{authLoginCmd, authURLCmd, authCallbackCmd} {
		c.Flags().StringP("provider", "p", string(domain.ProviderGitHub), "OAuth provider (github or gitlab)")
	}

	authLoginCmd.Flags().String("listen", "127.0.0.1:0", "Address for the local callback server")
	authLoginCmd.Flags().Duration("timeout", 5*time.Minute, "How long to wait for the browser sign-in")

	authURLCmd.Flags().String("redirect-uri", "", "Redirect URI registered with the provider (required)")
	authURLCmd.MarkFlagRequired("redirect-uri")

	authCallbackCmd.Flags().String("code", "", "Authorization code from the provider (required)")
	authCallbackCmd.Flags().String("state", "", "State value from the provider (required)")
	authCallbackCmd.MarkFlagRequired("code")
	authCallbackCmd.MarkFlagRequired("state")
}
