package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"solar_cleaner/internal/client"
	"solar_cleaner/internal/models"

	"github.com/spf13/cobra"
)

func (a *app) scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "View and edit the cleaning schedule",
	}
	cmd.AddCommand(
		a.scheduleListCmd(),
		a.scheduleAddCmd(),
		a.scheduleEditCmd(),
		a.scheduleDeleteCmd(),
	)
	return cmd
}

func (a *app) printSchedule(out io.Writer, entries []models.ScheduleEntry) error {
	if a.json {
		if entries == nil {
			entries = []models.ScheduleEntry{}
		}
		return printJSON(out, entries)
	}
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tDAY\tTIME")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, e.Day, e.Time)
	}
	return w.Flush()
}

// loadEditor returns an editor holding the current server schedule.
func (a *app) loadEditor(cmd *cobra.Command) (*client.ScheduleEditor, error) {
	ed := client.NewScheduleEditor(a.client(), a.log)
	if err := ed.Load(cmd.Context()); err != nil {
		return nil, fmt.Errorf("%s (%w)", ed.Err, err)
	}
	return ed, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid index %q: use the # column of 'schedule list'", s)
	}
	return i, nil
}

func (a *app) scheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedule entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := a.loadEditor(cmd)
			if err != nil {
				return err
			}
			return a.printSchedule(cmd.OutOrStdout(), ed.Entries)
		},
	}
}

func (a *app) scheduleAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add DAY TIME",
		Short: "Append an entry, e.g. 'add Monday 09:00'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := a.loadEditor(cmd)
			if err != nil {
				return err
			}
			if err := ed.Add(cmd.Context(), models.ScheduleEntry{Day: models.Weekday(args[0]), Time: args[1]}); err != nil {
				return fmt.Errorf("%s (%w)", ed.Err, err)
			}
			return a.printSchedule(cmd.OutOrStdout(), ed.Entries)
		},
	}
}

func (a *app) scheduleEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit INDEX DAY TIME",
		Short: "Replace the entry at INDEX",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ed, err := a.loadEditor(cmd)
			if err != nil {
				return err
			}
			if err := ed.SaveEdit(cmd.Context(), index, models.ScheduleEntry{Day: models.Weekday(args[1]), Time: args[2]}); err != nil {
				return fmt.Errorf("%s (%w)", ed.Err, err)
			}
			return a.printSchedule(cmd.OutOrStdout(), ed.Entries)
		},
	}
}

func (a *app) scheduleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the entry at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ed, err := a.loadEditor(cmd)
			if err != nil {
				return err
			}
			if err := ed.Delete(cmd.Context(), index); err != nil {
				return fmt.Errorf("%s (%w)", ed.Err, err)
			}
			return a.printSchedule(cmd.OutOrStdout(), ed.Entries)
		},
	}
}
