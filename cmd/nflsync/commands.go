package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-insights/internal/app"
	"github.com/riskibarqy/nfl-insights/internal/config"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var (
		bestEffort bool
		skipRank   bool
		week       int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch every source, persist it and recompute ranks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adjust := func(cfg *config.Config) {
				if bestEffort {
					cfg.FanOutPolicy = string(usecase.FanOutBestEffort)
				}
				if week > 0 {
					cfg.UpcomingWeek = week
				}
			}
			return withApp(cmd.Context(), adjust, func(ctx context.Context, a *app.App) error {
				ctx, span := usecase.StartJobSpan(ctx, usecase.JobSync, "cli")
				defer span.End()

				report, err := a.Pipeline.Run(ctx)
				if err != nil {
					return err
				}
				writeResults(cmd.OutOrStdout(), report.Results)
				if skipRank {
					return nil
				}

				result, err := a.Ranks.Recompute(ctx)
				if err != nil {
					return err
				}
				writeResults(cmd.OutOrStdout(), []usecase.BatchResult{result})
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false, "Keep successful fan-out fetches when some fail")
	cmd.Flags().BoolVar(&skipRank, "skip-rank", false, "Do not recompute rank snapshots after the sync")
	cmd.Flags().IntVar(&week, "week", 0, "Upcoming week override (defaults to SYNC_UPCOMING_WEEK)")
	return cmd
}

func rankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Recompute rank snapshots from stored team stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), nil, func(ctx context.Context, a *app.App) error {
				ctx, span := usecase.StartJobSpan(ctx, usecase.JobRank, "cli")
				defer span.End()

				result, err := a.Ranks.Recompute(ctx)
				if err != nil {
					return err
				}
				writeResults(cmd.OutOrStdout(), []usecase.BatchResult{result})
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <source>",
		Short: "Print what a source would write, without committing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			return withApp(cmd.Context(), nil, func(ctx context.Context, a *app.App) error {
				ctx, span := usecase.StartJobSpan(ctx, usecase.JobExport, "cli")
				defer span.End()

				if _, err := a.Pipeline.Preview(ctx); err != nil {
					return err
				}
				for _, src := range a.Pipeline.Sources() {
					if src.Name() == name {
						return writeTable(cmd.OutOrStdout(), src.Export(), format)
					}
				}
				return fmt.Errorf("%w: unknown source %q", usecase.ErrInvalidInput, name)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func writeResults(w io.Writer, results []usecase.BatchResult) {
	table := usecase.Table{Headers: []string{"source", "created", "updated", "skipped", "fetch_failed"}}
	for _, res := range results {
		table.Rows = append(table.Rows, []string{
			res.Source,
			strconv.Itoa(res.Created),
			strconv.Itoa(res.Updated),
			strconv.Itoa(res.Skipped),
			strconv.Itoa(res.FetchFailed),
		})
	}
	_ = writeTable(w, table, "table")
}

func writeTable(w io.Writer, table usecase.Table, format string) error {
	switch format {
	case "json":
		rows := make([]map[string]string, 0, len(table.Rows))
		for _, row := range table.Rows {
			item := make(map[string]string, len(table.Headers))
			for i, header := range table.Headers {
				if i < len(row) {
					item[header] = row[i]
				}
			}
			rows = append(rows, item)
		}
		out, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))
		for _, row := range table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w: unknown format %q", usecase.ErrInvalidInput, format)
	}
}
