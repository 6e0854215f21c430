package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"hrcomp/internal/app/server"
	"hrcomp/internal/domain/auth"
	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/platform/config"
	"hrcomp/internal/platform/db"
)

type calculateOptions struct {
	year       int
	tenantID   string
	employeeID string
	fixture    string
	asJSON     bool
}

func newCalculateCommand() *cobra.Command {
	opts := calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate bonuses for one employee or the whole workforce",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.year, "year", time.Now().Year()-1, "Target year")
	cmd.Flags().StringVar(&opts.tenantID, "tenant", "", "Tenant id (database mode)")
	cmd.Flags().StringVar(&opts.employeeID, "employee", "", "Single employee id")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "YAML fixture to calculate from instead of the database")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print results as JSON")
	return cmd
}

func runCalculate(cmd *cobra.Command, opts calculateOptions) error {
	cfg := config.Load()
	engine, err := server.BuildEngine(cfg)
	if err != nil {
		return err
	}

	var store compensation.StoreAPI
	tenantID := opts.tenantID
	if opts.fixture != "" {
		fixture, err := loadFixture(opts.fixture)
		if err != nil {
			return err
		}
		store = fixture
		if tenantID == "" {
			tenantID = fixtureTenant
		}
	} else {
		if tenantID == "" {
			return errors.New("--tenant is required without --fixture")
		}
		pool, err := db.Connect(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()
		store = compensation.NewStore(pool)
	}

	svc := compensation.NewService(store, engine, compensation.ServiceOptions{Workers: cfg.BonusWorkers})
	out := cmd.OutOrStdout()
	if opts.employeeID != "" {
		result, err := svc.EmployeeBonus(cmd.Context(), tenantID, opts.employeeID, opts.year)
		if err != nil {
			return err
		}
		if opts.asJSON {
			return writeJSON(out, result.Rounded())
		}
		return writeResults(out, []compensation.BonusResult{result})
	}

	report, err := svc.WorkforceBonuses(cmd.Context(), tenantID, opts.year)
	if err != nil {
		return err
	}
	if opts.asJSON {
		for i := range report.Results {
			report.Results[i] = report.Results[i].Rounded()
		}
		return writeJSON(out, report)
	}
	if err := writeResults(out, report.Results); err != nil {
		return err
	}
	return writeSummary(out, report.Summary)
}

func newPolicyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect weight policies",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a YAML weight band table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := compensation.LoadWeightPolicy(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tCOMPANY\tBILLING\tNPS\tAREA\tAREA1\tAREA2")
			for _, band := range policy.Bands() {
				fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%g\t%g\n", band.Category, band.Company, band.Billing, band.NPS, band.Area, band.Area1, band.Area2)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "policy ok")
			return nil
		},
	})
	return cmd
}

func newTokenCommand() *cobra.Command {
	var claims auth.Claims
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if claims.TenantID == "" {
				return errors.New("--tenant is required")
			}
			if _, ok := auth.RolePermissions[claims.RoleName]; !ok {
				return fmt.Errorf("unknown role %q", claims.RoleName)
			}
			secret := config.Load().JWTSecret
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := auth.GenerateToken(secret, claims, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&claims.TenantID, "tenant", "", "Tenant id")
	cmd.Flags().StringVar(&claims.RoleName, "role", auth.RoleHR, "Role name")
	cmd.Flags().StringVar(&claims.UserID, "user", "bonusctl", "User id")
	cmd.Flags().StringVar(&claims.EmployeeID, "employee", "", "Employee id bound to the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeResults(w io.Writer, results []compensation.BonusResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tNAME\tCATEGORY\tSTATUS\tCOMPANY\tPERSONAL\tPRORATA\tFINAL")
	for _, result := range results {
		r := result.Rounded()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.2f\t%s\t%.4f\t%s\n",
			r.EmployeeID, r.EmployeeName, r.Weights.Category, r.Status,
			r.CompanyComponent, formatOptional(r.PersonalComponent), r.ProRata.Factor, formatOptional(r.Final))
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, summary compensation.WorkforceSummary) error {
	_, err := fmt.Fprintf(w, "\n%d employees, %d calculated, %d pending, %d without objectives, %d not employed, average %s\n",
		summary.Employees, summary.Calculated, summary.PendingEvaluation, summary.NoObjectives, summary.NotEmployed, formatOptional(summary.AverageFinal))
	return err
}

func formatOptional(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *value)
}
