package cli

import (
	"fmt"
	"text/tabwriter"

	"solar_cleaner/internal/client"

	"github.com/spf13/cobra"
)

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the control panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := client.NewDashboardView(a.client(), a.log)
			if err := view.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s (%w)", view.Err, err)
			}
			out := cmd.OutOrStdout()
			if a.json {
				return printJSON(out, map[string]any{
					"isCleanerOn":      view.IsCleanerOn,
					"isActive":         view.IsActive,
					"onOffHistory":     view.OnOffHistory,
					"lastCleaningTime": view.LastCleaningTime,
					"imagesCaptured":   view.ImagesCaptured,
				})
			}

			active := "inactive"
			if view.IsActive {
				active = "active"
			}
			fmt.Fprintf(out, "Cleaner:         %s (%s)\n", onOff(view.IsCleanerOn), active)
			fmt.Fprintf(out, "Last cleaning:   %s\n", view.LastCleaningTime)
			fmt.Fprintf(out, "Images captured: %d\n", view.ImagesCaptured)
			if len(view.OnOffHistory) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\nHistory:")
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "STATE\tTIME")
			for _, p := range view.OnOffHistory {
				fmt.Fprintf(w, "%s\t%s\n", onOff(p.State), p.Time.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Turn the cleaner on if it is off, and off if it is on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := client.NewDashboardView(a.client(), a.log)
			if err := view.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s (%w)", view.Err, err)
			}
			if err := view.ToggleCleaner(cmd.Context()); err != nil {
				return fmt.Errorf("%s (%w)", view.Err, err)
			}
			if a.json {
				return printJSON(cmd.OutOrStdout(), map[string]bool{"isCleanerOn": view.IsCleanerOn})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleaner is now %s\n", onOff(view.IsCleanerOn))
			return nil
		},
	}
}

func (a *app) activeCmd(use string, active bool) *cobra.Command {
	short := "Allow scheduled cleanings"
	if !active {
		short = "Stop scheduled cleanings"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, state, err := a.client().SetActive(cmd.Context(), active)
			if err != nil {
				a.log.Errorw("cleaner_set_active_failed", "err", err)
				return fmt.Errorf("%s (%w)", client.MsgActive, err)
			}
			if !ok {
				return fmt.Errorf("%s", client.MsgActive)
			}
			if a.json {
				return printJSON(cmd.OutOrStdout(), map[string]bool{"isActive": state})
			}
			if state {
				fmt.Fprintln(cmd.OutOrStdout(), "Cleaner is active")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Cleaner is inactive")
			}
			return nil
		},
	}
}

func (a *app) eventsCmd() *cobra.Command {
	var from, to, typ string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the cleaner event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := a.client().Events(cmd.Context(), from, to, typ)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.json {
				return printJSON(out, events)
			}
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "TIME\tTYPE\tDESCRIPTION")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.OccurredAt.Format("2006-01-02 15:04:05"), e.Type, e.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start of range (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end of range; a bare date covers the whole day")
	cmd.Flags().StringVar(&typ, "type", "", "event type, e.g. POWER_ON")
	return cmd
}
