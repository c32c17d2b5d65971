package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"peds-aftercare/internal/domain/reminders"
	"peds-aftercare/internal/platform/config"
	"peds-aftercare/internal/tools"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var defaultCheckInstructions = []string{
	"Take Ibuprofen every 6 hours for 3 days",
	"Take Amoxicillin every 8 hours for 2 weeks",
	"Take Zyrtec every 12 hours",
}

func newCheckCommand(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [instruction...]",
		Short: "Parse instructions, schedule them and print the active reminders",
		Long: `Demo of the reminder lifecycle: schedules the given instructions (or a default set),
lists the active schedules, cancels one and finally cancels everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			// la demo no debe persistir ni pegarle a webhooks
			cfg.DBDSN = ""
			cfg.NotifyWebhookURL = ""
			cfg.MetricsEnabled = false

			if len(args) == 0 {
				args = defaultCheckInstructions
			}
			return runCheck(cmd.Context(), cfg, args, asJSON, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "also print the raw schedules as JSON")
	return cmd
}

func runCheck(ctx context.Context, cfg config.Config, instructions []string, asJSON bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg.LogLevel = "error"
	log := newLogger(cfg, os.Stderr)

	a, err := buildApp(ctx, cfg, log, out)
	if err != nil {
		return err
	}
	defer a.close()

	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	title := color.New(color.Bold).SprintFunc()

	section := func(s string) {
		fmt.Fprintln(out, strings.Repeat("=", 70))
		fmt.Fprintln(out, "  "+title(s))
		fmt.Fprintln(out, strings.Repeat("=", 70))
	}

	section("Adding medication schedules")
	var first string
	for _, in := range instructions {
		res, err := a.reminders.CreateOrReplaceFromText(ctx, in)
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", fail("✗"), err)
			continue
		}
		if first == "" {
			first = res.Schedule.Medication
		}
		fmt.Fprintf(out, "%s %s\n", ok("✓"), res.Message)
	}
	fmt.Fprintln(out)

	section("Active medication schedules")
	active := a.reminders.ListActive(ctx)
	fmt.Fprintln(out, tools.FormatReminderList(active))
	fmt.Fprintln(out)

	if asJSON {
		section("Raw data (JSON)")
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(active); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if first != "" {
		section("Canceling a schedule")
		s, err := a.reminders.Cancel(ctx, first)
		if err != nil {
			fmt.Fprintln(out, err)
		} else {
			fmt.Fprintln(out, reminders.CancelledMessage(s))
		}
		remaining := a.reminders.ListActive(ctx)
		fmt.Fprintf(out, "Remaining active schedules: %d\n", len(remaining))
		for _, s := range remaining {
			fmt.Fprintf(out, "  - %s\n", s.Medication)
		}
		fmt.Fprintln(out)
	}

	section("Cleanup")
	fmt.Fprintln(out, reminders.CancelAllMessage(a.reminders.CancelAll(ctx)))
	return nil
}
