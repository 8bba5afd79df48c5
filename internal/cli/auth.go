package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/homebox"
	"github.com/labelsmith/labelsmith/pkg/session"
)

// fallbackSessionTTL applies when the server's grant carries no expiry.
const fallbackSessionTTL = 30 * 24 * time.Hour

// newLoginCmd creates the login command.
func newLoginCmd() *cobra.Command {
	var server, username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a Homebox instance and store the session",
		Long: `Log in exchanges credentials for a session token and stores it in
~/.config/labelsmith/sessions/ so later commands need no credentials.

The password is prompted interactively when --password is omitted, which
keeps it out of the shell history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			if existing, _ := store.Get(ctx, server); existing != nil {
				printInfo("Already logged in to %s as %s", server, existing.Username)
				printDetail("Run 'labelsmith logout --server %s' first to re-authenticate", server)
				return nil
			}

			pw, err := obtainPassword(password)
			if err != nil {
				return err
			}

			client, err := homebox.NewClient(server)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Logging in...")
			spinner.Start()
			grant, err := client.Login(ctx, username, pw)
			if err != nil {
				spinner.StopWithError("Login failed")
				return err
			}
			spinner.Stop()

			expires := grant.ExpiresAt
			if expires.IsZero() {
				expires = time.Now().Add(fallbackSessionTTL)
			}
			if err := store.Set(ctx, &session.Session{
				Server:          client.BaseURL(),
				Username:        username,
				Token:           grant.Token,
				AttachmentToken: grant.AttachmentToken,
				ExpiresAt:       expires,
				CreatedAt:       time.Now(),
			}); err != nil {
				return err
			}

			printSuccess("Logged in to %s as %s", server, username)
			printDetail("Session stored in %s", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "Homebox base URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("server")
	cmd.MarkFlagRequired("username")

	return cmd
}

// newLogoutCmd creates the logout command.
func newLogoutCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Invalidate and remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			sess, err := store.Get(ctx, server)
			if err != nil {
				return err
			}
			if sess == nil {
				printInfo("No session stored for %s", server)
				return nil
			}

			// Best effort: the local delete matters more than the
			// server-side invalidation.
			if client, err := homebox.NewClient(server, homebox.WithToken(sess.Token)); err == nil {
				if err := client.Logout(ctx); err != nil {
					loggerFromContext(ctx).Debug("server-side logout failed", "err", err)
				}
			}

			if err := store.Delete(ctx, server); err != nil {
				return err
			}
			printSuccess("Logged out of %s", server)
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "Homebox base URL")
	cmd.MarkFlagRequired("server")

	return cmd
}

// newWhoamiCmd creates the whoami command.
func newWhoamiCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session for a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			sess, err := store.Get(cmd.Context(), server)
			if err != nil {
				return err
			}
			if sess == nil {
				return errors.New(errors.ErrCodeSessionNotFound,
					"not logged in to %s, run 'labelsmith login --server %s'", server, server)
			}

			printSuccess("Homebox Session")
			printKeyValue("Server", sess.Server)
			printKeyValue("Username", sess.Username)
			printKeyValue("Logged in", sess.CreatedAt.Format("Jan 2, 2006"))
			printKeyValue("Expires", sess.ExpiresAt.Format("Jan 2, 2006"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "Homebox base URL")
	cmd.MarkFlagRequired("server")

	return cmd
}

// obtainPassword returns the flag value if given (with a warning, argv is
// visible to other processes) or prompts on the terminal without echo.
func obtainPassword(flagValue string) (string, error) {
	if flagValue != "" {
		printWarning("Passing --password on the command line exposes it to other processes")
		return flagValue, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"no terminal available to prompt for a password, pass --password")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "reading password")
	}
	if len(raw) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "password must not be empty")
	}
	return string(raw), nil
}
