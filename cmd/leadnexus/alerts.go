package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/hooks"
	"github.com/cristianoliveira/leadnexus/internal/search"
	"github.com/spf13/cobra"
)

type alertsClient interface {
	leadLoader
	workspaceProvider
	queueProvider
	hooksProvider
}

// NewAlertsCmd creates the alerts command group with explicit dependencies.
func NewAlertsCmd(client alertsClient) *cobra.Command {
	if client == nil {
		panic("NewAlertsCmd: client dependency cannot be nil")
	}

	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "Get notified when new leads match a search",
		Long: `Get notified when new leads match a search.

Alerts store search criteria and a frequency (daily or weekly). "alerts run"
evaluates every due alert against the lead source and reports the matches;
schedule it with cron to check regularly.

For each alert with matches, scripts in <hooks_dir>/alert-matched/ run with
LEADNEXUS_ALERT_ID, LEADNEXUS_ALERT_NAME, LEADNEXUS_MATCHED and
LEADNEXUS_CRITERIA set.`,
	}

	alertsCmd.AddCommand(
		newAlertsAddCmd(client),
		newAlertsListCmd(client),
		newAlertsToggleCmd(client, "enable", true),
		newAlertsToggleCmd(client, "disable", false),
		newAlertsDeleteCmd(client),
		newAlertsRunCmd(client),
	)
	return alertsCmd
}

func newAlertsAddCmd(client alertsClient) *cobra.Command {
	var flags criteriaFlags
	var frequency string

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an alert from search flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := app.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			criteria, err := flags.criteria(client)
			if err != nil {
				return err
			}
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			alert, err := ws.SaveAlert(args[0], criteria, freq)
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Alert %q created (%s)", alert.Name, alert.ID))
			return nil
		},
	}

	flags.register(addCmd)
	addCmd.Flags().StringVar(&frequency, "frequency", string(app.FrequencyDaily), "How often the alert runs: daily, weekly")
	return addCmd
}

func newAlertsListCmd(client alertsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			alerts, err := ws.Alerts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(alerts) == 0 {
				fmt.Fprintln(out, "No alerts")
				return nil
			}
			parser := search.NewTokenProvider()
			for _, a := range alerts {
				state := "enabled"
				if !a.Enabled {
					state = "disabled"
				}
				lastRun := "never"
				if !a.LastRunAt.IsZero() {
					lastRun = a.LastRunAt.Local().Format(noteTimeLayout)
				}
				fmt.Fprintf(out, "%-26s  %-20s  %-7s  %-8s  last run: %-16s  %s\n",
					a.ID, a.Name, a.Frequency, state, lastRun, parser.Format(a.Criteria))
			}
			return nil
		},
	}
}

func newAlertsToggleCmd(client alertsClient, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id-or-name>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			alert, err := resolveAlert(ws, args[0])
			if err != nil {
				return err
			}
			if _, err := ws.SetAlertEnabled(alert.ID, enabled); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Alert %q %sd", alert.Name, use))
			return nil
		},
	}
}

func newAlertsDeleteCmd(client alertsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			alert, err := resolveAlert(ws, args[0])
			if err != nil {
				return err
			}
			if err := ws.DeleteAlert(alert.ID); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Alert %q deleted", alert.Name))
			return nil
		},
	}
}

func newAlertsRunCmd(client alertsClient) *cobra.Command {
	var source string
	var force bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate due alerts against the lead source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			queue, err := client.Queue()
			if err != nil {
				return err
			}
			records, err := client.LoadLeads(cmd.Context(), source)
			if err != nil {
				return err
			}
			matches, err := app.NewAlertsUseCase(ws, queue).Evaluate(records, force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No alerts due")
				return nil
			}
			parser := search.NewTokenProvider()
			for _, m := range matches {
				fmt.Fprintf(out, "%-20s  %d matching leads\n", m.Alert.Name, m.Matched)
				if m.Matched == 0 {
					continue
				}
				err := client.Hooks().Run(cmd.Context(), hooks.PointAlertMatched, map[string]string{
					"LEADNEXUS_ALERT_ID":   m.Alert.ID,
					"LEADNEXUS_ALERT_NAME": m.Alert.Name,
					"LEADNEXUS_MATCHED":    strconv.Itoa(m.Matched),
					"LEADNEXUS_CRITERIA":   parser.Format(m.Alert.Criteria),
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	runCmd.Flags().StringVarP(&source, "source", "s", "", "Lead file (.json, .csv) or backend URL (default: leads_source config)")
	runCmd.Flags().BoolVar(&force, "force", false, "Run every enabled alert, due or not")
	return runCmd
}

// resolveAlert finds an alert by ID, then by case-insensitive name.
func resolveAlert(ws *app.Workspace, idOrName string) (app.Alert, error) {
	if a, err := ws.Alert(idOrName); err == nil {
		return a, nil
	}
	alerts, err := ws.Alerts()
	if err != nil {
		return app.Alert{}, err
	}
	for _, a := range alerts {
		if strings.EqualFold(a.Name, idOrName) {
			return a, nil
		}
	}
	return app.Alert{}, fmt.Errorf("alert %q: %w", idOrName, app.ErrNotFound)
}

var alertsCmd = NewAlertsCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(alertsCmd)
}
