package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/secrets"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage credentials in the OS keychain",
	Long: `Stores credentials in the OS keychain so they need not live in config or .env.

NAME is "serpapi", "smtp" (account derived from notification.email in config),
or a literal keychain account.`,
}

var secretSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Store a secret read from stdin",
	Args:  cobra.ExactArgs(1),
	RunE:  runSecretSet,
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a secret",
	Args:  cobra.ExactArgs(1),
	RunE:  runSecretDelete,
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretSetCmd, secretDeleteCmd)
}

// keyringAccount maps a NAME argument to its keychain account.
func keyringAccount(name string) (string, error) {
	switch name {
	case "serpapi":
		return secrets.SerpAPIAccount, nil
	case "smtp":
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return "", fmt.Errorf("smtp account needs config: %w", err)
		}
		e := cfg.Notification.Email
		if e.KeyringAccount != "" {
			return e.KeyringAccount, nil
		}
		username := e.Username
		if username == "" {
			username = e.From
		}
		if username == "" {
			return "", fmt.Errorf("notification.email.username or from must be set to derive the smtp account")
		}
		return secrets.SMTPAccount(username, e.SMTPHost), nil
	default:
		return name, nil
	}
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	account, err := keyringAccount(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Enter secret for %s/%s: ", secrets.KeyringService, account)
	value, err := readSecret(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := secrets.Set(account, value); err != nil {
		return fmt.Errorf("store secret: %w", err)
	}
	fmt.Printf("Stored %s/%s\n", secrets.KeyringService, account)
	return nil
}

func runSecretDelete(cmd *cobra.Command, args []string) error {
	account, err := keyringAccount(args[0])
	if err != nil {
		return err
	}
	if err := secrets.Delete(account); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	fmt.Printf("Deleted %s/%s\n", secrets.KeyringService, account)
	return nil
}
