package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
)

func newApproveCmd() *cobra.Command {
	var remarks string
	cmd := &cobra.Command{
		Use:   "approve ID",
		Short: "Approve a pending submission",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(ctx context.Context, e *env, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			outcome, err := e.review.Approve(ctx, id, remarks)
			return report(service.ActionApprove, outcome, err)
		}),
	}
	cmd.Flags().StringVarP(&remarks, "remarks", "r", "", "optional reviewer remarks")
	return cmd
}

func newDisapproveCmd() *cobra.Command {
	var remarks string
	cmd := &cobra.Command{
		Use:   "disapprove ID",
		Short: "Disapprove a pending submission (remarks required)",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(ctx context.Context, e *env, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			outcome, err := e.review.Disapprove(ctx, id, remarks)
			return report(service.ActionDisapprove, outcome, err)
		}),
	}
	cmd.Flags().StringVarP(&remarks, "remarks", "r", "", "reason for disapproval")
	return cmd
}

func newAlertCmd() *cobra.Command {
	var clearAlert, yes bool
	cmd := &cobra.Command{
		Use:   "alert ID",
		Short: "Set, or with --clear remove, the alert flag of a record",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(ctx context.Context, e *env, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(service.AlertConfirmPrompt(id, clearAlert)) {
				fmt.Println("  Cancelled.")
				return nil
			}
			outcome, err := e.review.ToggleAlert(ctx, id, clearAlert)
			return report(service.ActionAlert, outcome, err)
		}),
	}
	cmd.Flags().BoolVar(&clearAlert, "clear", false, "clear the alert instead of setting it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit FILE",
		Short: "Submit a filled form from a JSON file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(ctx context.Context, e *env, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			var form map[string]interface{}
			if err := json.Unmarshal(raw, &form); err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			outcome, err := e.review.Submit(ctx, form)
			return report(service.ActionSubmit, outcome, err)
		}),
	}
}

func report(action service.ReviewAction, outcome dto.ActionOutcome, err error) error {
	if err != nil {
		if errors.Is(err, service.ErrRemarksRequired) {
			return errors.New(service.RemarksRequiredMessage)
		}
		return userError(err, service.ActionFailureMessage(action, err))
	}

	color.Green("  %s", outcome.Message)
	fmt.Printf("  Pending: %s  Approved today: %s  Alerts: %s\n",
		outcome.Metrics.Pending, outcome.Metrics.ApprovedToday, outcome.Metrics.Alerts)
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("  %s [y/N] ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
