package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nvhoang/aliasctl/internal/session"
)

var (
	loginEmail    string
	loginPassword string
	loginAPIKey   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the API key in the keyring",
	Long: `Logs in with email and password, completing the MFA challenge when
the account requires one. Alternatively --api-key adopts an existing
API key after validating it against the service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if loginAPIKey != "" {
			info, err := sess.LogInWithAPIKey(ctx, loginAPIKey)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", info.Email)
			return nil
		}

		email, password := loginEmail, loginPassword
		if email == "" || password == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Email").Value(&email),
				huh.NewInput().Title("Password").
					EchoMode(huh.EchoModePassword).Value(&password),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		state, err := sess.LogIn(ctx, email, password)
		if err != nil {
			return err
		}

		if state == session.AwaitingMFA {
			var token string
			prompt := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Two-factor code").Value(&token),
			))
			if err := prompt.Run(); err != nil {
				sess.CancelMFA()
				return err
			}
			if err := sess.VerifyMFA(ctx, token); err != nil {
				if errors.Is(err, session.ErrNoPendingMFA) {
					return err
				}
				return fmt.Errorf("MFA verification failed, log in again for a fresh challenge: %w", err)
			}
		}

		fmt.Printf("Logged in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.LogOut(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	Long: `Registers a new account. The service emails an activation code;
complete the registration with "aliasctl activate".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password := loginEmail, loginPassword
		if email == "" || password == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Email").Value(&email),
				huh.NewInput().Title("Password").
					EchoMode(huh.EchoModePassword).Value(&password),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}
		if err := sess.Client().SignUp(cmd.Context(), email, password); err != nil {
			return err
		}
		fmt.Printf("Registered %s; check your inbox for the activation code\n", email)
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <email> <code>",
	Short: "Activate a freshly registered account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Client().ActivateEmail(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Account activated; you can now log in")
		return nil
	},
}

var reactivateCmd = &cobra.Command{
	Use:   "reactivate <email>",
	Short: "Request a fresh activation code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Client().ReactivateEmail(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Activation code sent")
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password-reset email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Client().ForgotPassword(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Password-reset email sent")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.Flags().StringVar(&loginAPIKey, "api-key", "", "log in with an existing API key")

	signUpCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	signUpCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
}
