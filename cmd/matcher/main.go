package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/crete-bi/account-linkage/internal/config"
	"github.com/crete-bi/account-linkage/internal/db"
	"github.com/crete-bi/account-linkage/internal/match"
	"github.com/crete-bi/account-linkage/internal/normalize"
	"github.com/crete-bi/account-linkage/internal/pipeline"
	"github.com/crete-bi/account-linkage/internal/store"
	"github.com/crete-bi/account-linkage/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "matcher",
		Short: "Customer/account record linkage",
		Long:  `Fuzzy-matches operational customers (BuildOps, Spectrum) against CRM accounts per company code`,
	}

	rootCmd.AddCommand(createRunCmd(cfg))
	rootCmd.AddCommand(createCompaniesCmd(cfg))
	rootCmd.AddCommand(createPingCmd(cfg))
	rootCmd.AddCommand(createWebCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createRunCmd creates the matching run subcommand. Flags override the
// environment-derived configuration.
func createRunCmd(cfg *config.Config) *cobra.Command {
	var (
		companyCode string
		system      string
		maxDist     int
		normVersion string
		profileName string
		workers     int
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a matching pass and persist results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if companyCode != "" {
				cfg.CompanyCode = companyCode
			}
			if system != "" {
				parsed, err := config.ParseSourceSystem(system)
				if err != nil {
					return err
				}
				cfg.System = parsed
			}
			if cmd.Flags().Changed("max-dist") {
				if maxDist <= 0 {
					return &config.ConfigurationError{Field: "max-dist", Value: fmt.Sprint(maxDist)}
				}
				cfg.MaxDist = maxDist
			}
			if normVersion != "" {
				version, err := normalize.ParseVersion(normVersion)
				if err != nil {
					return err
				}
				cfg.NormalizerVersion = version
			}
			if profileName != "" {
				profile, err := match.ParseProfile(profileName)
				if err != nil {
					return err
				}
				cfg.Profile = profile
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			st := store.New(conn.DB)
			runner := pipeline.NewRunner(cfg, st, st)

			stats, err := runner.Run()
			if err != nil {
				return err
			}

			fmt.Printf("Run complete: %d units, %d skipped, %d failed, %d rows inserted\n",
				stats.Units, stats.Skipped, stats.Failed, stats.Inserted)
			if stats.Failed > 0 {
				return fmt.Errorf("%d of %d units failed", stats.Failed, stats.Units)
			}
			return nil
		},
	}

	runCmd.Flags().StringVar(&companyCode, "company", "", "company code to match, or ALL")
	runCmd.Flags().StringVar(&system, "system", "", "source system: buildops, spectrum or both")
	runCmd.Flags().IntVar(&maxDist, "max-dist", 5, "maximum name distance to keep")
	runCmd.Flags().StringVar(&normVersion, "normalizer", "", "normalizer version: legacy or aggressive")
	runCmd.Flags().StringVar(&profileName, "profile", "", "scoring profile: full or basic")
	runCmd.Flags().IntVar(&workers, "workers", 1, "concurrent units")

	return runCmd
}

// createCompaniesCmd lists the company codes a run over ALL would cover.
func createCompaniesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List distinct company codes from the CRM",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			codes, err := store.New(conn.DB).CompanyCodes()
			if err != nil {
				return err
			}

			fmt.Printf("Found %d company codes:\n", len(codes))
			for _, code := range codes {
				fmt.Println(code)
			}
			return nil
		},
	}
}

// createPingCmd tests database connectivity and shows table counts.
func createPingCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			fmt.Println("Database connection successful!")

			tables := []string{"crm_account", "buildops_customer", "spectrum_customer", "match_result"}
			for _, table := range tables {
				var count int
				err := conn.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
				if err != nil {
					log.Printf("Error counting %s records: %v", table, err)
					continue
				}
				fmt.Printf("%s: %d rows\n", table, count)
			}
			return nil
		},
	}
}

// createWebCmd starts the read-only review server.
func createWebCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Start the match review server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			return web.NewServer(cfg.Web, conn.DB).Start()
		},
	}
}
