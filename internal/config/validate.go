package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *DraftConfig) Validate() error {
	if c.Draft.MinBid < 1 {
		return errors.New("draft.min_bid must be >= 1")
	}
	if c.Draft.Increment < 1 {
		return errors.New("draft.increment must be >= 1")
	}
	if c.Draft.Budget < c.Draft.MinBid {
		return fmt.Errorf("draft.budget (%d) cannot be below draft.min_bid (%d)", c.Draft.Budget, c.Draft.MinBid)
	}
	if c.Draft.RosterSize < 1 {
		return errors.New("draft.roster_size must be >= 1")
	}
	if c.Draft.NominationAttempts < 1 {
		return errors.New("draft.nomination_attempts must be >= 1")
	}
	if c.Draft.Extractor != "pattern" && c.Draft.Extractor != "exact" {
		return fmt.Errorf("draft.extractor must be %q or %q, got %q", "pattern", "exact", c.Draft.Extractor)
	}

	if len(c.League.Teams) < 2 {
		return errors.New("league.teams must list at least 2 teams")
	}
	seen := make(map[string]bool, len(c.League.Teams))
	for i, team := range c.League.Teams {
		if team.Name == "" {
			return fmt.Errorf("league.teams[%d].name is required", i)
		}
		if team.Model == "" {
			return fmt.Errorf("league.teams[%d].model is required", i)
		}
		if seen[team.Name] {
			return fmt.Errorf("league.teams has duplicate name %q", team.Name)
		}
		seen[team.Name] = true
		if team.Budget < c.Draft.MinBid {
			return fmt.Errorf("league.teams[%d].budget (%d) cannot be below draft.min_bid (%d)", i, team.Budget, c.Draft.MinBid)
		}
	}

	if c.Players.CSV == "" {
		return errors.New("players.csv is required")
	}

	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %g", c.LLM.Temperature)
	}

	if c.Database.Enabled {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	if c.Metrics.Port != 0 && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
