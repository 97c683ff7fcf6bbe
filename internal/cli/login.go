package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (a *app) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the token for later commands",
		Long: `Signs in against the API and writes the server and token to the config
file (--config, or $HOME/.cleanerctl.yaml).

Example:
  cleanerctl login --server http://panel.local:5050 --username operator --password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.client().SignIn(cmd.Context(), username, password)
			if err != nil {
				a.log.Errorw("login_failed", "err", err, "username", username)
				return err
			}
			path, err := a.saveConfig(token)
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token saved to %s\n", username, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "operator name")
	cmd.Flags().StringVar(&password, "password", "", "operator password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an operator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.client().SignUp(cmd.Context(), username, password)
			if err != nil {
				a.log.Errorw("register_failed", "err", err, "username", username)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d)\n", username, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "operator name")
	cmd.Flags().StringVar(&password, "password", "", "operator password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// saveConfig stores server and token in the config file in use, or in
// $HOME/.cleanerctl.yaml when none was loaded. Other keys in the file are kept.
func (a *app) saveConfig(token string) (string, error) {
	path := a.v.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, configName+".yaml")
	}

	out := viper.New()
	out.SetConfigFile(path)
	if err := out.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	out.Set("server", a.v.GetString("server"))
	out.Set("token", token)
	if err := out.WriteConfigAs(path); err != nil {
		return "", err
	}
	return path, nil
}
