package config

import "time"

// DraftConfig is the root configuration for one draft night.
type DraftConfig struct {
	Draft    DraftSettings  `yaml:"draft"`
	League   LeagueConfig   `yaml:"league"`
	Players  PlayersConfig  `yaml:"players"`
	LLM      LLMConfig      `yaml:"llm"`
	Output   OutputConfig   `yaml:"output"`
	Live     LiveConfig     `yaml:"live"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// DraftSettings holds the auction rules and flow knobs.
type DraftSettings struct {
	MinBid             int    `yaml:"min_bid"`
	Increment          int    `yaml:"increment"`
	Budget             int    `yaml:"budget"` // Per team unless overridden in league.teams
	RosterSize         int    `yaml:"roster_size"`
	SeedItem           string `yaml:"seed_item"`
	NominationAttempts int    `yaml:"nomination_attempts"`
	PlanUpdateEvery    int    `yaml:"plan_update_every"` // Plan refresh cadence in sales, 0 disables
	Planning           bool   `yaml:"planning"`
	Banter             bool   `yaml:"banter"`
	Extractor          string `yaml:"extractor"`   // "pattern" or "exact"
	RandomSeed         int64  `yaml:"random_seed"` // 0 seeds from the clock
}

// LeagueConfig names the league and its franchises.
type LeagueConfig struct {
	Name  string       `yaml:"name"`
	Teams []TeamConfig `yaml:"teams"`
}

// TeamConfig describes one bidding franchise.
type TeamConfig struct {
	Name    string `yaml:"name"`
	Model   string `yaml:"model"` // OpenRouter slug
	Persona string `yaml:"persona"`
	Budget  int    `yaml:"budget"` // Optional override of draft.budget
}

// PlayersConfig points at the player pool.
type PlayersConfig struct {
	CSV string `yaml:"csv"`
}

// LLMConfig holds OpenRouter transport settings.
type LLMConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	KeyFile        string        `yaml:"key_file"` // Alternative to api_key
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	RequestSpacing time.Duration `yaml:"request_spacing"`
	MaxTokens      int           `yaml:"max_tokens"`
	Temperature    float64       `yaml:"temperature"`
	Referer        string        `yaml:"referer"` // HTTP-Referer attribution header
	Title          string        `yaml:"title"`   // X-Title attribution header
}

// OutputConfig holds file export settings.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	ResultsCSV string `yaml:"results_csv"`
	Transcript string `yaml:"transcript"`
}

// LiveConfig holds the live chat view settings.
type LiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DatabaseConfig holds the optional Postgres sink.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// MetricsConfig holds the health endpoint settings. Port 0 disables it.
type MetricsConfig struct {
	Port int `yaml:"port"`
}
