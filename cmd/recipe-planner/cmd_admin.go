package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, e *env) error {
			fmt.Printf("✅ Database ready at %s\n", e.cfg.DatabasePath)
			return nil
		})
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Register a user and print a token for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, e *env) error {
			u, err := e.app.CreateUser(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := e.app.IssueToken(ctx, u.ID)
			if err != nil {
				return err
			}
			out := struct {
				ID       string `json:"id"`
				Username string `json:"username"`
				Token    string `json:"token"`
			}{u.ID.String(), u.Username, t}
			return emit(out, func() {
				fmt.Printf("👤 Created %s (%s)\n", u.Username, u.ID)
				fmt.Printf("export RECIPE_PLANNER_TOKEN=%s\n", t)
			})
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a bearer token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, e *env) error {
			u, err := e.app.UserByUsername(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := e.app.IssueToken(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Println(t)
			return nil
		})
	},
}

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Inspect units",
}

var unitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the known units",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, e *env) error {
			units, err := e.app.Units(ctx)
			if err != nil {
				return err
			}
			return emit(units, func() {
				for _, u := range units {
					fmt.Printf("%3d  %s\n", u.ID, u.Name)
				}
			})
		})
	},
}

var (
	metricsDays  int
	metricsPrune int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show usage and health",
	Long: `Show per-day operation totals, outcomes per operation and process health.

With --prune N, metric rows older than N days are deleted first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, e *env) error {
			if metricsPrune > 0 {
				n, err := e.app.PruneMetrics(metricsPrune)
				if err != nil {
					return err
				}
				fmt.Printf("🧹 Removed %d metric rows\n", n)
			}

			usage, err := e.app.Usage(metricsDays)
			if err != nil {
				return err
			}
			breakdown, err := e.app.Breakdown(metricsDays)
			if err != nil {
				return err
			}
			health := e.app.Health()

			out := map[string]any{"usage": usage, "breakdown": breakdown, "health": health}
			return emit(out, func() {
				fmt.Println("📊 Usage & Health Report")
				fmt.Println(strings.Repeat("═", 60))
				if len(usage) == 0 {
					fmt.Println("No data yet")
				}
				for _, d := range usage {
					fmt.Printf("%s  %5d ops  %4d failed  avg %dms\n", d.Date, d.Operations, d.Failures, d.AvgLatencyMS)
				}
				fmt.Println(strings.Repeat("─", 40))
				for _, c := range breakdown {
					fmt.Printf("%-20s %-16s %d\n", c.Operation, c.Outcome, c.Count)
				}
				fmt.Println(strings.Repeat("─", 40))
				fmt.Printf("RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
				fmt.Printf("Disk Data: %s\n", health.DataDiskSize())
			})
		})
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	unitCmd.AddCommand(unitListCmd)

	metricsCmd.Flags().IntVar(&metricsDays, "days", 7, "Days of history to show")
	metricsCmd.Flags().IntVar(&metricsPrune, "prune", 0, "Delete metric rows older than this many days")
}
