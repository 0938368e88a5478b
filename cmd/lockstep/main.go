package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"lockstep/internal/analysis"
	"lockstep/internal/checker"
	"lockstep/internal/config"
	"lockstep/internal/extractor"
	"lockstep/internal/introspect"
	"lockstep/internal/manifest"
	"lockstep/internal/report"
	"lockstep/internal/source"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "lockstep",
		Short: "Keep D-Bus record types in lockstep with their introspection XML",
	}
	cfgPath string
	xmlPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "lockstep-config.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVarP(&xmlPath, "xml", "x", "", "Path to the introspection XML directory")

	sigCmd.Flags().StringP("interface", "i", "", "Interface name")
	sigCmd.Flags().StringP("member", "m", "", "Member name")
	sigCmd.Flags().StringP("kind", "k", "signal", "Declaration kind: signal, method_args, method_return, property")
	sigCmd.Flags().StringP("arg", "a", "", "Single argument name")
	_ = sigCmd.MarkFlagRequired("interface")
	_ = sigCmd.MarkFlagRequired("member")

	checkCmd.Flags().String("manifest", "", "Path to the check manifest (defaults to the configured one)")
	checkCmd.Flags().String("db", "", "Save the run to this SQLite database")
	checkCmd.Flags().String("markdown", "", "Write a Markdown report to this file")

	historyCmd.Flags().String("db", "", "SQLite database to read")
	historyCmd.Flags().Int("limit", 10, "Number of runs to show")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sigCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadDocuments resolves the XML directory and parses every document in it.
// The environment override is read here and threaded down explicitly.
func loadDocuments(cfg *config.Config) (string, *introspect.Set, error) {
	explicit := xmlPath
	if explicit == "" {
		explicit = cfg.XMLPath
	}
	dir, err := source.Locate(".", explicit, os.Getenv(config.EnvXMLPath))
	if err != nil {
		return "", nil, err
	}
	set, err := source.LoadDir(dir)
	if err != nil {
		return "", nil, err
	}
	return dir, set, nil
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every check in the manifest against the introspection XML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		manifestPath, _ := cmd.Flags().GetString("manifest")
		if manifestPath == "" {
			manifestPath = cfg.Manifest
		}
		m, err := manifest.Load(manifestPath)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}
		if xmlPath == "" && m.XMLPath != "" {
			xmlPath = m.XMLPath
		}

		dir, set, err := loadDocuments(cfg)
		if err != nil {
			log.Fatalf("Failed to load introspection XML: %v", err)
		}
		fmt.Printf("📂 Loaded %d documents from %s\n", set.Len(), dir)

		started := time.Now()
		summary := checker.New(set).CheckAll(m.Checks)
		for _, r := range summary.Results {
			switch r.Status {
			case checker.StatusPass:
				fmt.Printf("✅ %s  %s.%s  %q\n", r.Type, r.Interface, r.Member, r.Declared)
			case checker.StatusFail:
				fmt.Printf("❌ %s\n%s\n", r.Type, r.Detail)
			default:
				fmt.Printf("⚠️  %s: %s\n", r.Type, r.Detail)
			}
		}
		fmt.Printf("📊 %d checks: %d passed, %d failed, %d errored in %v\n",
			summary.Total, summary.Passed, summary.Failed, summary.Errors, time.Since(started).Round(time.Millisecond))

		run := &report.Run{
			StartedAt: started,
			XMLPath:   dir,
			Total:     summary.Total,
			Passed:    summary.Passed,
			Failed:    summary.Failed,
			Errors:    summary.Errors,
		}

		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = cfg.Database
		}
		if dbPath != "" {
			store, err := report.NewSQLiteStore(dbPath)
			if err != nil {
				log.Fatalf("Failed to open database: %v", err)
			}
			defer store.Close()
			if _, err := store.SaveRun(context.Background(), run, summary.Results); err != nil {
				log.Fatalf("Failed to save run: %v", err)
			}
			fmt.Printf("💾 Run saved to %s\n", dbPath)
		}

		if mdPath, _ := cmd.Flags().GetString("markdown"); mdPath != "" {
			md := report.RenderMarkdown(run, summary.Results)
			if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
				log.Fatalf("Failed to write report: %v", err)
			}
			fmt.Printf("📝 Report written to %s\n", mdPath)
		}

		if !summary.Ok() {
			os.Exit(1)
		}
	},
}

var sigCmd = &cobra.Command{
	Use:   "sig",
	Short: "Print the declared signature of one interface member",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		_, set, err := loadDocuments(cfg)
		if err != nil {
			log.Fatalf("Failed to load introspection XML: %v", err)
		}

		ifaceName, _ := cmd.Flags().GetString("interface")
		member, _ := cmd.Flags().GetString("member")
		kindName, _ := cmd.Flags().GetString("kind")
		arg, _ := cmd.Flags().GetString("arg")

		kind, ok := extractKind(kindName)
		if !ok {
			log.Fatalf("Unknown kind %q", kindName)
		}

		located := set.Lookup(ifaceName)
		if len(located) == 0 {
			log.Fatalf("No interface named %s in any document", ifaceName)
		}
		for _, l := range located {
			sig, err := extractor.Extract(l.Interface, extractor.Query{Kind: kind, Member: member, Arg: arg})
			if err != nil {
				log.Fatalf("Extraction failed: %v", err)
			}
			fmt.Printf("%s.%s (%s): %q\n", ifaceName, member, l.Document, sig)
		}
	},
}

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "List declared members not covered by any manifest check",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		m, err := manifest.Load(cfg.Manifest)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}
		if xmlPath == "" && m.XMLPath != "" {
			xmlPath = m.XMLPath
		}
		_, set, err := loadDocuments(cfg)
		if err != nil {
			log.Fatalf("Failed to load introspection XML: %v", err)
		}

		cov := analysis.NewAnalyzer(set).Coverage(m.Checks)
		fmt.Printf("📊 %d of %d declarations covered\n", len(cov.Covered), len(cov.Covered)+len(cov.Uncovered))
		for _, d := range cov.Uncovered {
			fmt.Printf("  ∅ %s %s.%s (%s)\n", d.Kind, d.Interface, d.Member, d.Document)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past check runs from the run-history database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = cfg.Database
		}
		if dbPath == "" {
			log.Fatalf("No database configured; pass --db or set database in %s", cfgPath)
		}

		store, err := report.NewSQLiteStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(context.Background(), limit)
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		for _, r := range runs {
			status := "✅"
			if r.Failed > 0 || r.Errors > 0 {
				status = "❌"
			}
			fmt.Printf("%s run %d  %s  %d checks (%d passed, %d failed, %d errored)\n",
				status, r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Total, r.Passed, r.Failed, r.Errors)
		}
	},
}

func extractKind(name string) (extractor.Kind, bool) {
	switch name {
	case "signal":
		return extractor.SignalBody, true
	case "method_args":
		return extractor.MethodArgs, true
	case "method_return":
		return extractor.MethodReturn, true
	case "property":
		return extractor.Property, true
	default:
		return 0, false
	}
}
