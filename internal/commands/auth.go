package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/store"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Long: `Create an account with an email and password, then sign in.

Examples:
  clockr signup --email me@example.com
  clockr signup --email me@example.com --password 'correct horse'`,
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		ctx := commandContext(cmd)
		email, password, err := credentials(cmd)
		if err != nil {
			printError(err)
			return
		}

		if _, err := a.store.SignUp(ctx, email, password); err != nil {
			printError(err)
			return
		}
		if err := signIn(cmd, a, email, password); err != nil {
			printError(err)
			return
		}
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your account",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		email, password, err := credentials(cmd)
		if err != nil {
			printError(err)
			return
		}
		if err := signIn(cmd, a, email, password); err != nil {
			printError(err)
		}
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved token",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		token, err := store.LoadToken(a.cfg.CredentialsPath)
		if err != nil {
			printError(err)
			return
		}
		if token == "" {
			fmt.Println("Not signed in.")
			return
		}

		if err := a.store.SignOut(commandContext(cmd), token); err != nil {
			printError(err)
			return
		}
		if err := store.ClearToken(a.cfg.CredentialsPath); err != nil {
			printError(err)
			return
		}
		fmt.Println("👋 Signed out.")
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		user, err := a.client.CurrentUser(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("%s (member since %s)\n", user.Email, user.CreatedAt.Format("Jan 02, 2006"))
	}),
}

func signIn(cmd *cobra.Command, a *app, email, password string) error {
	token, user, err := a.store.SignIn(commandContext(cmd), email, password)
	if err != nil {
		return err
	}
	if err := store.SaveToken(a.cfg.CredentialsPath, token); err != nil {
		return err
	}
	fmt.Printf("✅ Signed in as %s\n", user.Email)
	return nil
}

// credentials reads --email and --password, prompting for what is missing
func credentials(cmd *cobra.Command) (string, string, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", "", fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Print("Password: ")
		if term.IsTerminal(os.Stdin.Fd()) {
			raw, err := term.ReadPassword(os.Stdin.Fd())
			fmt.Println()
			if err != nil {
				return "", "", fmt.Errorf("failed to read password: %w", err)
			}
			password = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return "", "", fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
	}

	return email, password, nil
}

func init() {
	for _, cmd := range []*cobra.Command{signupCmd, loginCmd} {
		cmd.Flags().StringP("email", "e", "", "Account email")
		cmd.Flags().StringP("password", "p", "", "Account password (prompted when omitted)")
	}
}
