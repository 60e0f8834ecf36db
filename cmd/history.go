package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kubev2v/installer-driver/internal/config"
	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the recorded runs",
	}
	cmd.AddCommand(newHistoryListCommand(), newHistoryShowCommand(), newHistoryExportCommand(), newHistoryPruneCommand())
	return cmd
}

func registerFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("operation", nil, "keep runs of these operations")
	cmd.Flags().StringSlice("outcome", nil, "keep runs with these outcomes")
	cmd.Flags().String("filter-host", "", "keep runs against this host")
	cmd.Flags().Duration("since", 0, "keep runs started within this duration")
	cmd.Flags().Uint64("limit", 0, "maximum number of runs")
}

func filterFromFlags(cmd *cobra.Command) (services.HistoryFilter, error) {
	var filter services.HistoryFilter

	ops, _ := cmd.Flags().GetStringSlice("operation")
	for _, o := range ops {
		op, err := models.ParseOperation(o)
		if err != nil {
			return filter, srvErrors.NewConfigurationError("operation", err.Error())
		}
		filter.Operations = append(filter.Operations, op)
	}

	outcomes, _ := cmd.Flags().GetStringSlice("outcome")
	for _, o := range outcomes {
		outcome, err := models.ParseOutcome(o)
		if err != nil {
			return filter, srvErrors.NewConfigurationError("outcome", err.Error())
		}
		filter.Outcomes = append(filter.Outcomes, outcome)
	}

	filter.Host, _ = cmd.Flags().GetString("filter-host")
	if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
		filter.Since = time.Now().Add(-since)
	}
	filter.Limit, _ = cmd.Flags().GetUint64("limit")

	return filter, nil
}

// withHistory opens the run history; it is an error when history is disabled.
func withHistory(cmd *cobra.Command, fn func(h *services.HistoryService) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.Path == "" {
		return srvErrors.NewConfigurationError(config.KeyDB, "run history is disabled")
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(services.NewHistoryService(st))
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			return withHistory(cmd, func(h *services.HistoryService) error {
				runs, total, err := h.List(cmd.Context(), filter)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSTARTED\tOPERATION\tHOST\tOUTCOME\tRESULT")
				for _, r := range runs {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						r.ID,
						r.StartedAt.Local().Format(time.DateTime),
						r.Operation,
						r.Host,
						outcomeColor(r.Outcome).Sprint(displayOutcome(r.Outcome)),
						verdict(r.Passed()),
					)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d of %d runs\n", len(runs), total)
				return nil
			})
		},
	}
	registerFilterFlags(cmd)
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return srvErrors.NewConfigurationError("id", err.Error())
			}

			return withHistory(cmd, func(h *services.HistoryService) error {
				run, err := h.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				printRun(cmd.OutOrStdout(), run)
				fmt.Fprintf(cmd.OutOrStdout(), "     host=%s username=%s trust=%t force=%t expect-failure=%t duration=%s\n",
					run.Host, run.Username, run.Trust, run.Force, run.ExpectFailure, run.Duration())
				return nil
			})
		},
	}
}

func newHistoryExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded runs to an xlsx report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			return withHistory(cmd, func(h *services.HistoryService) error {
				n, err := h.Export(cmd.Context(), filter, output)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d runs to %s\n", n, output)
				return nil
			})
		},
	}
	registerFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", "installer-runs.xlsx", "report file")
	return cmd
}

func newHistoryPruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete recorded runs older than a duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			olderThan, _ := cmd.Flags().GetDuration("older-than")
			if olderThan <= 0 {
				return srvErrors.NewConfigurationError("older-than", "must be positive")
			}

			return withHistory(cmd, func(h *services.HistoryService) error {
				n, err := h.Prune(cmd.Context(), olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d runs\n", n)
				return nil
			})
		},
	}
	cmd.Flags().Duration("older-than", 30*24*time.Hour, "age of the runs to delete")
	return cmd
}
