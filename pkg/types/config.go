package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "seedwatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WatchConfig holds settings for one watch run.
type WatchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Terms are the literal search terms queried against every source.
	Terms []QueryTerm `json:"terms" yaml:"terms"`

	// Orgs are code-host organizations whose repositories and code are
	// additionally searched with an org qualifier.
	Orgs []string `json:"orgs" yaml:"orgs"`

	// MaxResults caps the number of hits kept per source call (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// ResultsDir is where snapshot files are written (default "search_results").
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// GitHubToken is an optional bearer credential. Without it the GitHub
	// clients run under the tighter unauthenticated rate limits.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`

	// EnableRepo controls the repository search client.
	EnableRepo bool `json:"enable_repo" yaml:"enable_repo"`

	// EnableCode controls the code search client.
	EnableCode bool `json:"enable_code" yaml:"enable_code"`

	// EnablePaper controls the preprint search client.
	EnablePaper bool `json:"enable_paper" yaml:"enable_paper"`

	// EnableModel controls the model-hub search client.
	EnableModel bool `json:"enable_model" yaml:"enable_model"`

	// RepoDelay is the minimum interval between repository search calls (default 2s).
	RepoDelay time.Duration `json:"repo_delay" yaml:"repo_delay"`

	// CodeDelay is the minimum interval between code search calls (default 5s).
	// Code search is the most tightly rate-limited GitHub endpoint.
	CodeDelay time.Duration `json:"code_delay" yaml:"code_delay"`

	// PaperDelay is the minimum interval between preprint search calls (default 3s).
	PaperDelay time.Duration `json:"paper_delay" yaml:"paper_delay"`

	// ModelDelay is the minimum interval between model-hub search calls (default 1s).
	ModelDelay time.Duration `json:"model_delay" yaml:"model_delay"`
}
