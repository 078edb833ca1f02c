package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/config"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

type globalOptions struct {
	upstream string
	cookie   string
	timeout  time.Duration
	verbose  bool
}

var opts globalOptions

// NewRoot builds the hoictl command tree.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "hoictl",
		Short:         "Review HOI submissions from the terminal",
		Long:          "hoictl talks to the HOI server directly: counts, pending approvals, alerts, reviews and the assistant.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.upstream, "upstream", "", "HOI server base URL (defaults to HOIDASH_UPSTREAM_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.cookie, "cookie", os.Getenv("HOIDASH_UPSTREAM_SESSION"), "HOI session cookie as name=value")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-call timeout, 0 disables it")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log upstream calls to stderr")

	root.AddCommand(
		newMetricsCmd(),
		newListCmd("today", "List today's activity", listToday),
		newListCmd("pending", "List submissions waiting for approval", listPending),
		newListCmd("alerts", "List records flagged as alerts", listAlerts),
		newDetailCmd(),
		newApproveCmd(),
		newDisapproveCmd(),
		newAlertCmd(),
		newSubmitCmd(),
		newChatCmd(),
	)

	return root
}

// env bundles the services a command runs against.
type env struct {
	client  *hoiapi.Client
	metrics service.MetricsService
	review  service.ReviewService
	logger  zerolog.Logger
}

func newEnv() (*env, error) {
	base := opts.upstream
	if base == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		base = cfg.UpstreamBaseURL
	}

	logger := zerolog.Nop()
	if opts.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	client, err := hoiapi.New(hoiapi.Config{BaseURL: base, Timeout: opts.timeout, Logger: logger})
	if err != nil {
		return nil, err
	}

	metrics := service.NewMetricsService(client, "", logger)
	review, err := service.NewReviewService(client, client, metrics, validator.New(validator.WithRequiredStructEnabled()), logger)
	if err != nil {
		return nil, err
	}

	return &env{client: client, metrics: metrics, review: review, logger: logger}, nil
}

// context attaches the session cookie given on the command line.
func (e *env) context(parent context.Context) (context.Context, error) {
	if opts.cookie == "" {
		return parent, nil
	}
	name, value, ok := strings.Cut(opts.cookie, "=")
	if !ok || name == "" {
		return nil, fmt.Errorf("--cookie must look like name=value")
	}
	return hoiapi.WithSession(parent, []*http.Cookie{{Name: name, Value: value}}, ""), nil
}

// userError replaces err with message, keeping session expiry detectable.
func userError(err error, message string) error {
	if hoiapi.IsSessionExpired(err) {
		return err
	}
	return errors.New(message)
}

func withEnv(run func(ctx context.Context, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ctx, err := e.context(cmd.Context())
		if err != nil {
			return err
		}
		if err := run(ctx, e, args); err != nil {
			if hoiapi.IsSessionExpired(err) {
				return fmt.Errorf("session expired: log in to the HOI server and pass a fresh --cookie")
			}
			return err
		}
		return nil
	}
}
