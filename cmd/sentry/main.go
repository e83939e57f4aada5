// sentry is the terminal conversation client: it sends what you type to
// the interpreter server, runs structured commands against the local
// device effectors and speaks the result.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sentry/internal/config"
	"sentry/internal/device"
	"sentry/internal/dispatch"
	"sentry/internal/effector"
	"sentry/internal/httpclient"
	"sentry/internal/identity"
	"sentry/internal/logging"
	"sentry/internal/session"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		serverURL string
		name      string
		email     string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:          "sentry",
		Short:        "Sentry assistant terminal client",
		Long:         "Talks to a running sentry-server, dispatches commands locally and speaks replies.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			if debug {
				cfg.LogLevel = "debug"
			}
			logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

			id := identity.NewSession()
			switch {
			case email != "":
				id.SetFromEmail(email)
			case name != "":
				id.SetName(name)
			}

			sess, err := buildSession(cfg, id)
			if err != nil {
				return err
			}
			return runREPL(cmd.Context(), sess, id)
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "interpreter server URL (default http://localhost:3000)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "sign-in email; the display name is derived from it")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "debug logging")
	return cmd
}

func buildSession(cfg *config.Config, id *identity.Session) (*session.Session, error) {
	logger := logging.NewComponentLogger("client")

	contactsFile := cfg.ContactsFile
	calendarDir := cfg.CalendarDir
	if contactsFile == "" || calendarDir == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		if contactsFile == "" {
			contactsFile = filepath.Join(dir, "contacts.yaml")
		}
		if calendarDir == "" {
			calendarDir = filepath.Join(dir, "calendars")
		}
	}

	launcher := device.NewExecLauncher(logging.NewComponentLogger("launcher"))
	speaker := device.NewExecSpeaker(cfg.SpeechCommand, logging.NewComponentLogger("speaker"))

	dispatcher, err := dispatch.NewFromDeps(dispatch.Deps{
		Launcher: launcher,
		Contacts: &device.FileContacts{Path: contactsFile},
		Calendar: &device.FileCalendar{Dir: calendarDir},
		Location: device.NewIPLocation(cfg.GeoURL, logging.NewComponentLogger("location")),
		Camera:   &device.ExecCamera{Command: cfg.CaptureCommand},
		Weather: effector.WeatherConfig{
			APIKey:   cfg.WeatherAPIKey,
			BaseURL:  cfg.WeatherBaseURL,
			Client:   httpclient.New(10*time.Second, logging.NewComponentLogger("weather")),
			CacheTTL: cfg.WeatherTTL,
		},
		Logger: logging.NewComponentLogger("dispatch"),
	})
	if err != nil {
		return nil, err
	}

	interp := session.NewRemoteInterpreter(
		strings.TrimSpace(cfg.ServerURL),
		httpclient.New(cfg.LLMTimeout+10*time.Second, logging.NewComponentLogger("http")),
		logger,
	)
	return session.New(interp, dispatcher, id, speaker, logger), nil
}
