package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HarleyCoops/SeeDream/internal/httputil"
	"github.com/HarleyCoops/SeeDream/internal/notify"
	"github.com/HarleyCoops/SeeDream/internal/search"
	"github.com/HarleyCoops/SeeDream/internal/store"
	"github.com/HarleyCoops/SeeDream/pkg/types"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultUserAgent  = "seedwatch/0.1"
	defaultResultsDir = "search_results"
	defaultMaxResults = 10

	defaultRepoDelay  = 2 * time.Second
	defaultCodeDelay  = 5 * time.Second
	defaultPaperDelay = 3 * time.Second
	defaultModelDelay = 1 * time.Second
)

// defaultTerms are the search terms used when the config file provides none.
var defaultTerms = []string{
	"SeedDream 3.0",
	"SeedDream3.0",
	"SeedDream-3.0",
	"ByteDance Seed Team SeedDream",
	"ByteDance-Seed SeedDream",
	"flow matching loss SeedDream",
	"representation alignment loss SeedDream",
	"Chinese-English bilingual image generation SeedDream",
}

// defaultOrgs are the code-host organizations checked when the config file
// provides none.
var defaultOrgs = []string{
	"ByteDance-Seed",
	"ByteDance",
	"bytedance",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Query all sources and write a snapshot",
	Long: `Run queries every enabled source for the configured terms and organizations,
merges and deduplicates the hits, and writes a timestamped JSON snapshot plus
a readable Markdown report. Individual source failures are logged and skipped;
the run still completes and exits zero. When GITHUB_OUTPUT is set, the report
path and a has_new_findings flag are appended for the CI notifier.`,
	RunE: runWatch,
}

func init() {
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	runCmd.Flags().Int("max-results", 0, "maximum hits kept per source call (default 10)")
	runCmd.Flags().String("results-dir", "", "directory for snapshot files (default search_results)")

	rootCmd.AddCommand(runCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := buildConfig(cmd)

	client := &http.Client{Timeout: cfg.Timeout}
	var clients []search.Client
	if cfg.EnableRepo {
		clients = append(clients, &search.RepoSearchClient{Client: client})
	}
	if cfg.EnableCode {
		clients = append(clients, &search.CodeSearchClient{Client: client})
	}
	if cfg.EnablePaper {
		clients = append(clients, &search.ArxivClient{Client: client})
	}
	if cfg.EnableModel {
		clients = append(clients, &search.ModelHubClient{Client: client})
	}

	limiter := httputil.NewLimiter(map[string]time.Duration{
		"repo":  cfg.RepoDelay,
		"code":  cfg.CodeDelay,
		"paper": cfg.PaperDelay,
		"model": cfg.ModelDelay,
	})

	snap, err := search.Aggregate(cmd.Context(), clients, limiter, cfg, os.Stderr)
	if err != nil {
		return err
	}

	st := &store.Store{Dir: cfg.ResultsDir}
	jsonPath, mdPath, err := st.Persist(snap)
	if err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}

	summary := notify.Evaluate(snap)
	counts := make(map[types.Source]int)
	for _, r := range snap.Records {
		counts[r.Source]++
	}
	for _, src := range types.Sources {
		fmt.Printf("%-6s %d\n", src, counts[src])
	}
	fmt.Printf("\nSnapshot: %s\nReport:   %s\nNew findings: %t\n", jsonPath, mdPath, summary.HasNewFindings)

	writeGitHubOutput(mdPath, summary.HasNewFindings)
	return nil
}

// buildConfig assembles the run configuration from defaults, the config
// file / environment (via viper), and command-line flags, in that order.
func buildConfig(cmd *cobra.Command) types.WatchConfig {
	viper.SetDefault("terms", defaultTerms)
	viper.SetDefault("orgs", defaultOrgs)
	viper.SetDefault("max_results", defaultMaxResults)
	viper.SetDefault("results_dir", defaultResultsDir)
	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("enable_repo", true)
	viper.SetDefault("enable_code", true)
	viper.SetDefault("enable_paper", true)
	viper.SetDefault("enable_model", true)
	viper.SetDefault("repo_delay", defaultRepoDelay)
	viper.SetDefault("code_delay", defaultCodeDelay)
	viper.SetDefault("paper_delay", defaultPaperDelay)
	viper.SetDefault("model_delay", defaultModelDelay)

	cfg := types.WatchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: defaultUserAgent,
		},
		Terms:       viper.GetStringSlice("terms"),
		Orgs:        viper.GetStringSlice("orgs"),
		MaxResults:  viper.GetInt("max_results"),
		ResultsDir:  viper.GetString("results_dir"),
		GitHubToken: githubToken(),
		EnableRepo:  viper.GetBool("enable_repo"),
		EnableCode:  viper.GetBool("enable_code"),
		EnablePaper: viper.GetBool("enable_paper"),
		EnableModel: viper.GetBool("enable_model"),
		RepoDelay:   viper.GetDuration("repo_delay"),
		CodeDelay:   viper.GetDuration("code_delay"),
		PaperDelay:  viper.GetDuration("paper_delay"),
		ModelDelay:  viper.GetDuration("model_delay"),
	}

	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.MaxResults = v
	}
	if v, _ := cmd.Flags().GetString("results-dir"); v != "" {
		cfg.ResultsDir = v
	}
	return cfg
}

// writeGitHubOutput appends the report path and findings flag to the
// GITHUB_OUTPUT file when running under GitHub Actions.
func writeGitHubOutput(mdPath string, hasNew bool) {
	outPath := os.Getenv("GITHUB_OUTPUT")
	if outPath == "" {
		return
	}
	f, err := os.OpenFile(outPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write GITHUB_OUTPUT: %v\n", err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "result_path=%s\n", mdPath)
	fmt.Fprintf(f, "has_new_findings=%t\n", hasNew)
}
