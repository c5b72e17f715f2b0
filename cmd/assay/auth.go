// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/assaylabs/assay/internal/api"
	"github.com/assaylabs/assay/internal/credential"
)

// dashboardURL is where users generate API keys.
const dashboardURL = "https://dashboard.assay.dev/settings/api-keys"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API key authentication",
}

// --- login ---

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with an API key from the dashboard",
	Long: `Login opens the assay dashboard in your browser, prompts for a pasted
API key, verifies it against the server, and stores it: the key identifier
and expiration in the config file, the secret portion in the OS keyring.

If the keyring is unavailable on this host, set ASSAY_API_KEY instead.`,
	RunE: runAuthLogin,
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		app.Config.BaseURL = baseURL
	}
	return loginFlow(app)
}

// loginFlow is the interactive login sequence, shared by login and rotate:
// open dashboard, prompt, lexically validate, verify against the server,
// then persist.
func loginFlow(app *appContext) error {
	fmt.Println("Opening the assay dashboard to generate an API key:")
	fmt.Println("  " + dashboardURL)
	if err := browser.OpenURL(dashboardURL); err != nil {
		fmt.Fprintln(os.Stderr, "Could not open a browser; visit the URL above manually.")
	}

	key, err := promptKey()
	if err != nil {
		return err
	}
	if err := credential.ValidateKey(key); err != nil {
		return fmt.Errorf("invalid API key: %w", err)
	}

	// Verify before persisting anything, and learn the key's expiration.
	ctx, cancel := context.WithTimeout(context.Background(), api.VerifyTimeout)
	defer cancel()
	account, err := api.VerifyKey(ctx, app.Config.BaseURL, key)
	if err != nil {
		return fmt.Errorf("key verification failed: %w", err)
	}

	identifier, secret, err := credential.SplitKey(key)
	if err != nil {
		return err
	}

	app.Config.KeyIdentifier = identifier
	app.Config.KeyExpiresAt = ""
	if !account.KeyExpiresAt.IsZero() {
		app.Config.KeyExpiresAt = account.KeyExpiresAt.Format(time.RFC3339)
	}
	if err := app.Store.Save(app.Config); err != nil {
		return err
	}

	if err := app.Secrets.Set(secret); err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("Warning:"),
			"could not store the key secret in the OS keyring; set ASSAY_API_KEY instead:", err)
	}

	fmt.Printf("Logged in as %s (key %s).\n", account.Email, identifier)
	if app.Config.KeyExpiresAt != "" {
		fmt.Printf("Key expires at %s.\n", app.Config.KeyExpiresAt)
	}
	return nil
}

// promptKey reads the pasted key without echo when stdin is a terminal,
// and as a plain line otherwise (pipes, tests).
func promptKey() (string, error) {
	fmt.Print("Paste your API key: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// --- status ---

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the authenticated account and key expiration",
	Long: `Status verifies the resolved credential against the server and prints a
structured view: account, credential source, key identifier, and expiration.
A refreshed expiration reported by the server is persisted back to the
config file.`,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	client := app.newAPIClient()

	account, err := client.Me(context.Background())
	if err != nil {
		return err
	}

	source := "config + OS keyring"
	if os.Getenv(credential.EnvAPIKey) != "" {
		source = "ASSAY_API_KEY environment variable"
	}

	fmt.Println("Logged in.")
	fmt.Printf("  Account:     %s\n", account.Email)
	if account.Organization != "" {
		fmt.Printf("  Organization: %s\n", account.Organization)
	}
	if account.Plan != "" {
		fmt.Printf("  Plan:        %s\n", account.Plan)
	}
	fmt.Printf("  Credential:  %s\n", source)
	if app.Config.KeyIdentifier != "" {
		fmt.Printf("  Key:         %s\n", app.Config.KeyIdentifier)
	}

	// Sync the stored expiration with the server's view, preferring the
	// response-header refresh over the account payload.
	expiresAt := app.Config.KeyExpiresAt
	if !account.KeyExpiresAt.IsZero() {
		expiresAt = account.KeyExpiresAt.Format(time.RFC3339)
	}
	if refreshed, ok := client.LastKeyExpiresAt(); ok {
		expiresAt = refreshed.Format(time.RFC3339)
	}
	if expiresAt != "" {
		fmt.Printf("  Expires:     %s\n", expiresAt)
		if exp := credential.CheckExpiration(expiresAt, time.Now()); exp.ExpiringSoon {
			fmt.Fprintln(os.Stderr, color.YellowString("Warning:"), exp.Message)
		}
	}
	if expiresAt != app.Config.KeyExpiresAt && source != "ASSAY_API_KEY environment variable" {
		app.Config.KeyExpiresAt = expiresAt
		if err := app.Store.Save(app.Config); err != nil {
			fmt.Fprintln(os.Stderr, color.YellowString("Warning:"), "could not persist refreshed expiration:", err)
		}
	}
	return nil
}

// --- rotate ---

var authRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Replace the stored API key with a new one",
	Long: `Rotate removes the stored credential, then runs the same interactive
flow as login for the replacement key. Generate the new key in the
dashboard first.`,
	RunE: runAuthRotate,
}

func runAuthRotate(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		app.Config.BaseURL = baseURL
	}

	clearCredential(app)
	return loginFlow(app)
}

// --- logout ---

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	RunE:  runAuthLogout,
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	clearCredential(app)
	if err := app.Store.Save(app.Config); err != nil {
		return err
	}
	fmt.Println("Logged out. Stored credential removed.")
	return nil
}

// clearCredential drops the vault secret and the key fields from the
// in-memory config. The caller decides when to persist.
func clearCredential(app *appContext) {
	app.Secrets.Delete()
	app.Config.KeyIdentifier = ""
	app.Config.KeyExpiresAt = ""
}

func init() {
	authLoginCmd.Flags().String("base-url", "", "API base URL to authenticate against (default from config)")
	authRotateCmd.Flags().String("base-url", "", "API base URL to authenticate against (default from config)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRotateCmd)
	authCmd.AddCommand(authLogoutCmd)

	rootCmd.AddCommand(authCmd)
}
