package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sitebook/internal/app"
	"sitebook/internal/company"
	"sitebook/internal/config"
	"sitebook/internal/domain"
	"sitebook/internal/logging"
	"sitebook/internal/project"
)

const defaultCompany = "Premier Construction Ltd."

func main() {
	cobra.OnInitialize(initConfig)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SITEBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sb",
		Short: "Sitebook construction ledger",
		Long: `Sitebook keeps the books for a construction company.
- Design plans: approvable blueprints (housing, road, commercial) with free-form specifications.
- Projects: generic, housing or road work with tasks, materials, workers and a budget.
- Lifecycle: Planning -> In Progress -> Completed; housing and road crews need an approved plan.
- Portfolio: sitebook.yml describes the company; every command replays it and reports.`,
		SilenceUsage: true,
	}
	addPersistentFlags(root)
	root.AddCommand(initCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(plansCmd())
	root.AddCommand(demoCmd())
	return root
}

func addPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().StringP("workspace", "w", ".", "workspace directory holding sitebook.yml")
	root.PersistentFlags().StringP("file", "f", "", "portfolio file (overrides workspace)")
	root.PersistentFlags().Bool("json", false, "output JSON")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("workspace", root.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("file", root.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("json", root.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
}

func initCmd() *cobra.Command {
	var name string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter sitebook.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault(name)), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "company", defaultCompany, "company name")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the portfolio and replay it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCompany(cmd, func(c *company.Company) error {
				o := c.Overview()
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d projects, %d design plans\n", o.TotalProjects, o.TotalDesignPlans)
				return nil
			})
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the company report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCompany(cmd, func(c *company.Company) error {
				return printReport(cmd.OutOrStdout(), c)
			})
		},
	}
}

func summaryCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show cost and progress per project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCompany(cmd, func(c *company.Company) error {
				out := cmd.OutOrStdout()
				summaries := c.ListSummaries()
				if projectID != "" {
					site, err := c.Project(projectID)
					if err != nil {
						return err
					}
					if viper.GetBool("json") {
						return printJSON(out, site.Summary())
					}
					summaries = []project.Summary{site.Summary()}
				} else if viper.GetBool("json") {
					return printJSON(out, summaries)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(out)
				tw.AppendHeader(table.Row{"ID", "Name", "Kind", "Status", "Progress", "Tasks", "Workers", "Materials", "Labor", "Total", "Budget", "Remaining"})
				for _, s := range summaries {
					tw.AppendRow(table.Row{s.ID, s.Name, s.Kind, s.Status, s.Progress, s.Tasks, s.Workers,
						s.MaterialCost, s.LaborCost, s.TotalCost, s.Budget, s.RemainingBudget})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	return cmd
}

func plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List design plans with their specifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCompany(cmd, func(c *company.Company) error {
				out := cmd.OutOrStdout()
				if viper.GetBool("json") {
					return printJSON(out, map[string]any{
						"plans": c.ListPlanDetails(),
						"stats": c.PlanStats(),
					})
				}
				fmt.Fprint(out, company.PlanTable(c.Plans()))
				for _, plan := range c.Plans() {
					if len(plan.Specifications) == 0 {
						continue
					}
					fmt.Fprintf(out, "\n%s specifications:\n", plan.ID)
					for _, k := range plan.SpecificationKeys() {
						fmt.Fprintf(out, "  - %s: %s\n", k, plan.Specifications[k])
					}
				}
				stats := c.PlanStats()
				fmt.Fprintf(out, "\nTotal: %d  Approved: %d  Pending: %d  Estimated: %.2f\n",
					stats.Total, stats.Approved, stats.Pending, stats.TotalEstimatedCost)
				types := make([]string, 0, len(stats.ByType))
				for t := range stats.ByType {
					types = append(types, string(t))
				}
				sort.Strings(types)
				for _, t := range types {
					fmt.Fprintf(out, "  - %s: %d\n", t, stats.ByType[domain.PlanType(t)])
				}
				return nil
			})
		},
	}
}

func demoCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the built-in demo portfolio and print its report",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Default(name)
			if err != nil {
				return err
			}
			c, err := app.Build(p, app.Options{Logger: newLogger(cmd)})
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), c)
		},
	}
	cmd.Flags().StringVar(&name, "company", defaultCompany, "company name")
	return cmd
}

func withCompany(cmd *cobra.Command, fn func(*company.Company) error) error {
	log := newLogger(cmd)
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	c, err := app.Build(p, app.Options{Logger: log})
	if err != nil {
		return err
	}
	log.Info("portfolio loaded", "company", c.Name, "projects", len(c.Projects()))
	return fn(c)
}

func loadPortfolio() (*config.Portfolio, error) {
	if path := viper.GetString("file"); path != "" {
		return config.FromFile(path)
	}
	return config.Load(viper.GetString("workspace"))
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), viper.GetString("log-level"))
}

func printReport(w io.Writer, c *company.Company) error {
	if viper.GetBool("json") {
		return printJSON(w, map[string]any{
			"overview": c.Overview(),
			"projects": c.ListProjectInfo(),
			"plans":    c.ListPlanDetails(),
		})
	}
	_, err := fmt.Fprint(w, c.GenerateReport())
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
