package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/views"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show pending, approved-today and alert counts",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
			display := e.metrics.Display(ctx)

			fmt.Println()
			fmt.Printf("  Pending approvals:  %s\n", color.YellowString(display.Pending))
			fmt.Printf("  Approved today:     %s\n", color.GreenString(display.ApprovedToday))
			fmt.Printf("  Active alerts:      %s\n", color.RedString(display.Alerts))
			if !display.Available {
				color.Red("\n  Counts are unavailable, one or more sources failed.")
			}
			fmt.Println()
			return nil
		}),
	}
}

type lister func(ctx context.Context, e *env) ([]models.ActivityRecord, error)

func listToday(ctx context.Context, e *env) ([]models.ActivityRecord, error) {
	return e.client.ListTodayActivities(ctx)
}

func listPending(ctx context.Context, e *env) ([]models.ActivityRecord, error) {
	return e.client.ListPendingApprovals(ctx)
}

func listAlerts(ctx context.Context, e *env) ([]models.ActivityRecord, error) {
	return e.client.ListAlerts(ctx)
}

func newListCmd(use, short string, list lister) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
			records, err := list(ctx, e)
			if err != nil {
				return userError(err, service.LoadFailureMessage(err))
			}
			printRecords(records)
			return nil
		}),
	}
}

func printRecords(records []models.ActivityRecord) {
	if len(records) == 0 {
		fmt.Println("  No records.")
		return
	}

	fmt.Printf("  %-6s %-32s %-28s %-18s %-12s %s\n", "ID", "FORM", "SAVED BY", "SAVED AT", "STATUS", "ALERT")
	for _, record := range records {
		alert := ""
		if record.IsAlert.Bool() {
			alert = color.RedString("ON")
		}
		fmt.Printf("  %-6d %-32s %-28s %-18s %-12s %s\n",
			record.ID,
			truncate(record.FormName, 32),
			truncate(record.SavedBy, 28),
			views.ShortDateTime(record.SavedAt),
			statusString(record.Status),
			alert,
		)
	}
}

func statusString(status models.RecordStatus) string {
	padded := fmt.Sprintf("%-12s", status)
	switch status {
	case models.RecordStatusApproved:
		return color.GreenString(padded)
	case models.RecordStatusDisapproved:
		return color.RedString(padded)
	default:
		return color.YellowString(padded)
	}
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", raw)
	}
	return id, nil
}

func newDetailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail ID",
		Short: "Show the stored content of a record",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(ctx context.Context, e *env, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			detail, err := e.review.Detail(ctx, id)
			if err != nil {
				return userError(err, service.DetailFailureMessage(id, err))
			}
			fmt.Println(detail.Text())
			return nil
		}),
	}
}
