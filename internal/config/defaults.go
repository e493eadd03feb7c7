package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultMinBid             = 10
	DefaultIncrement          = 10
	DefaultBudget             = 1000
	DefaultRosterSize         = 11
	DefaultNominationAttempts = 2
	DefaultPlanUpdateEvery    = 10
	DefaultExtractor          = "pattern"
	DefaultBaseURL            = "https://openrouter.ai/api/v1"
	DefaultLLMTimeout         = 120 * time.Second
	DefaultMaxRetries         = 2
	DefaultRetryDelay         = 1 * time.Second
	DefaultRequestSpacing     = 500 * time.Millisecond
	DefaultMaxTokens          = 400
	DefaultTemperature        = 0.8
	DefaultOutputDir          = "out"
	DefaultResultsCSV         = "draft_results.csv"
	DefaultTranscript         = "draft_transcript.txt"
	DefaultLiveAddr           = "127.0.0.1:8777"
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 4
	DefaultMinConns           = 1
)

func (c *DraftConfig) applyDefaults() {
	// Draft defaults
	if c.Draft.MinBid == 0 {
		c.Draft.MinBid = DefaultMinBid
	}
	if c.Draft.Increment == 0 {
		c.Draft.Increment = DefaultIncrement
	}
	if c.Draft.Budget == 0 {
		c.Draft.Budget = DefaultBudget
	}
	if c.Draft.RosterSize == 0 {
		c.Draft.RosterSize = DefaultRosterSize
	}
	if c.Draft.NominationAttempts == 0 {
		c.Draft.NominationAttempts = DefaultNominationAttempts
	}
	if c.Draft.PlanUpdateEvery == 0 {
		c.Draft.PlanUpdateEvery = DefaultPlanUpdateEvery
	}
	if c.Draft.Extractor == "" {
		c.Draft.Extractor = DefaultExtractor
	}

	// Team budgets inherit the draft-wide budget unless overridden.
	for i := range c.League.Teams {
		if c.League.Teams[i].Budget == 0 {
			c.League.Teams[i].Budget = c.Draft.Budget
		}
	}

	// LLM defaults
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultBaseURL
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = DefaultLLMTimeout
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = DefaultMaxRetries
	}
	if c.LLM.RetryDelay == 0 {
		c.LLM.RetryDelay = DefaultRetryDelay
	}
	if c.LLM.RequestSpacing == 0 {
		c.LLM.RequestSpacing = DefaultRequestSpacing
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = DefaultTemperature
	}

	// Output defaults
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.ResultsCSV == "" {
		c.Output.ResultsCSV = DefaultResultsCSV
	}
	if c.Output.Transcript == "" {
		c.Output.Transcript = DefaultTranscript
	}

	// Live defaults
	if c.Live.Addr == "" {
		c.Live.Addr = DefaultLiveAddr
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
