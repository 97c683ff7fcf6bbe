package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"solar_cleaner/internal/client"
	"solar_cleaner/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultServer = "http://localhost:5050"
	configName    = ".cleanerctl"
	envPrefix     = "CLEANERCTL"
)

// app carries what every command needs.
type app struct {
	v       *viper.Viper
	cfgFile string
	json    bool
	verbose bool
	log     *logger.Logger
}

// NewRootCmd builds the cleanerctl command tree. Settings come from flags,
// CLEANERCTL_* env vars and $HOME/.cleanerctl.yaml, in that order.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logger.Nop()}

	root := &cobra.Command{
		Use:           "cleanerctl",
		Short:         "Control a solar panel cleaner",
		Long:          `Toggle the cleaner, browse ML damage-detection batches and edit the cleaning schedule.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				a.log = logger.NewWriter(logger.DebugLevel, cmd.ErrOrStderr())
			}
			return a.initConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.cleanerctl.yaml)")
	pf.BoolVar(&a.json, "json", false, "Output results as JSON")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log failed API calls to stderr")
	pf.String("server", defaultServer, "API base URL")
	pf.String("token", "", "bearer token when the API requires auth")
	_ = a.v.BindPFlag("server", pf.Lookup("server"))
	_ = a.v.BindPFlag("token", pf.Lookup("token"))

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.statusCmd(),
		a.toggleCmd(),
		a.activeCmd("activate", true),
		a.activeCmd("deactivate", false),
		a.eventsCmd(),
		a.batchesCmd(),
		a.scheduleCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	return 0
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(configName)
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && a.cfgFile == "" {
			return nil
		}
		return err
	}
	return nil
}

func (a *app) client() *client.Client {
	a.log.Debugw("api_client", "server", a.v.GetString("server"))
	return client.New(client.Config{
		BaseURL: a.v.GetString("server"),
		Token:   a.v.GetString("token"),
	})
}

// printJSON writes v indented.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
