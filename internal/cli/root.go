// Package cli implements the aliasctl command tree. Each command is a
// thin caller of the API facade; the pagination and prompting that a
// graphical client would do live here, never in the client packages.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvhoang/aliasctl/internal/config"
	"github.com/nvhoang/aliasctl/internal/credential"
	"github.com/nvhoang/aliasctl/internal/logging"
	"github.com/nvhoang/aliasctl/internal/session"
	"github.com/nvhoang/aliasctl/internal/slapi"
)

var (
	cfgFile string
	apiURL  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
	sess   *session.Session
)

var rootCmd = &cobra.Command{
	Use:           "aliasctl",
	Short:         "Manage email aliases on a SimpleLogin-compatible service",
	Long: `aliasctl talks to a SimpleLogin-compatible email-alias service:
log in (with MFA support), create and manage aliases, contacts,
mailboxes and account settings from the terminal.

The API key is kept in the system keyring. The API URL and device
name live in ~/.config/aliasctl/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default ~/.config/aliasctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"override the API base URL for this invocation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log every API call")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signUpCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(reactivateCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(mailboxCmd)
	rootCmd.AddCommand(domainCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(configCmd)
}

// setup wires config, logger, client, credential store and session. It
// runs once per invocation before any subcommand.
func setup() error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	// Persist the generated device name so re-logins reuse the label.
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err := config.Save(path, cfg); err != nil {
			return err
		}
	}

	baseURL := cfg.APIURL
	if apiURL != "" {
		baseURL = apiURL
	}

	logger, err = logging.New(verbose)
	if err != nil {
		return err
	}

	client, err := slapi.NewClient(baseURL, slapi.WithLogger(logger))
	if err != nil {
		return err
	}

	sess = session.New(client, credential.KeyringStore{}, cfg.DeviceName)
	return sess.Restore()
}

// requireAPIKey returns the live credential or a friendly error for
// commands that need one.
func requireAPIKey() (string, error) {
	key, err := sess.APIKey()
	if errors.Is(err, session.ErrNotAuthenticated) {
		return "", errors.New("not logged in; run `aliasctl login` first")
	}
	return key, err
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
