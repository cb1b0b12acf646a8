package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"nearest-blood-locator/config"
	"nearest-blood-locator/internal/client"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries the wired client through every command.
type app struct {
	client *client.Client
	log    *logrus.Logger
	in     *bufio.Reader
	out    io.Writer

	apiURL     string
	sessionDir string
	verbose    bool

	// fs is swapped for an in-memory filesystem in tests.
	fs afero.Fs
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithFs(afero.NewOsFs())
}

func newRootCmdWithFs(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	rootCmd := &cobra.Command{
		Use:           "bloodctl",
		Short:         "Find blood donors, blood banks and stock near you",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (default from BLOODCTL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.sessionDir, "session-dir", "", "directory holding the saved session")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.searchCmd(),
		a.donorsCmd(),
		a.donorCmd(),
		a.bankCmd(),
		a.stockCmd(),
		a.requestCmd(),
		a.activityCmd(),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.sessionDir != "" {
		cfg.SessionDir = a.sessionDir
	}

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	a.in = bufio.NewReader(cmd.InOrStdin())
	a.out = cmd.OutOrStdout()

	a.client = client.New(client.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout,
		Store:     client.NewFileStore(a.fs, cfg.SessionDir),
		Confirmer: client.ConfirmFunc(a.confirm),
		Log:       a.log,
	})
	return nil
}

// confirm asks a yes/no question on the terminal. Anything but y/yes is a no.
func (a *app) confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// guard applies the access guard to a command's view.
func (a *app) guard(view client.View, roles ...entity.Role) error {
	decision := a.client.Guard.Guard(view, roles...)
	switch decision.Outcome {
	case client.OutcomeRender:
		return nil
	case client.OutcomeRedirect:
		if decision.Target == client.ViewLogin {
			return errors.New("you are not logged in, run `bloodctl login` first")
		}
		return fmt.Errorf("this command is not available for your account, see `bloodctl dashboard` (%s)", decision.Target)
	}
	return errors.New("session is still loading")
}

func userMessage(err error) string {
	var validation *client.ValidationError
	switch {
	case errors.As(err, &validation):
		return validation.Error()
	case errors.Is(err, client.ErrNotAuthenticated):
		return "you are not logged in, run `bloodctl login` first"
	case errors.Is(err, client.ErrDeleteNotConfirmed):
		return "cancelled"
	}
	return client.Message(err)
}
