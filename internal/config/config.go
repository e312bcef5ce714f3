package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

// PoolPreset is a named Pool table setting.
type PoolPreset struct {
	ID                string `json:"id"`
	Limit             int    `json:"limit"`
	FirstDropPenalty  int    `json:"first_drop_penalty"`
	MiddleDropPenalty int    `json:"middle_drop_penalty"`
}

type RulesConfig struct {
	DefaultPoolPreset  string       `json:"default_pool_preset"`
	PoolPresets        []PoolPreset `json:"pool_presets"`
	NumberOfDeals      int          `json:"number_of_deals"`
	PointValue         int          `json:"point_value"`
	ListLimit          int          `json:"list_limit"`
	ShareTokenTTLHours int          `json:"share_token_ttl_hours"`
}

const (
	defaultListLimit     = 20
	defaultShareTokenTTL = 7 * 24 * time.Hour
)

var (
	cfg      *RulesConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadRulesConfig loads the rules configuration from the given path. Only the
// first call reads the file.
func LoadRulesConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read rules config: %w", err)
			return
		}
		c, err := ParseRulesConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ParseRulesConfig decodes a rules file and checks the presets.
func ParseRulesConfig(data []byte) (*RulesConfig, error) {
	var c RulesConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules config: %w", err)
	}
	for _, p := range c.PoolPresets {
		if p.ID == "" || p.Limit <= 0 {
			return nil, fmt.Errorf("invalid pool preset %q", p.ID)
		}
	}
	return &c, nil
}

// GetRulesConfig returns the global rules configuration, nil when not loaded.
func GetRulesConfig() *RulesConfig {
	return cfg
}

// GetPoolPreset returns the preset with the given id, or the default preset.
func GetPoolPreset(id string) PoolPreset {
	fallback := PoolPreset{
		ID:                "101",
		Limit:             domain.DefaultPoolLimit,
		FirstDropPenalty:  domain.DefaultFirstDropPenalty,
		MiddleDropPenalty: domain.DefaultMiddleDropPenalty,
	}
	if cfg == nil {
		return fallback
	}

	target := id
	if target == "" {
		target = cfg.DefaultPoolPreset
	}
	for _, p := range cfg.PoolPresets {
		if p.ID == target {
			return p
		}
	}
	for _, p := range cfg.PoolPresets {
		if p.ID == cfg.DefaultPoolPreset {
			return p
		}
	}
	return fallback
}

// poolPresetFor picks the preset of a Pool game: the named one, else the one
// whose limit matches a custom limit, else the default preset when no limit
// was given.
func poolPresetFor(limit int, presetID string) (PoolPreset, bool) {
	if presetID != "" || limit == 0 {
		return GetPoolPreset(presetID), true
	}
	if cfg == nil {
		return PoolPreset{}, false
	}
	for _, p := range cfg.PoolPresets {
		if p.Limit == limit {
			return p, true
		}
	}
	return PoolPreset{}, false
}

// ApplyDefaults fills options the caller left at zero from the rules file.
// presetID only matters for Pool games.
func ApplyDefaults(c domain.GameConfig, presetID string) domain.GameConfig {
	if c.Variant != domain.VariantPool {
		return applyShared(c)
	}
	if p, ok := poolPresetFor(c.PoolLimit, presetID); ok {
		if c.PoolLimit == 0 {
			c.PoolLimit = p.Limit
		}
		if c.FirstDropPenalty == 0 {
			c.FirstDropPenalty = p.FirstDropPenalty
		}
		if c.MiddleDropPenalty == 0 {
			c.MiddleDropPenalty = p.MiddleDropPenalty
		}
	}
	return applyShared(c)
}

func applyShared(c domain.GameConfig) domain.GameConfig {
	if cfg != nil {
		if c.NumberOfDeals == 0 {
			c.NumberOfDeals = cfg.NumberOfDeals
		}
		if c.PointValue == 0 {
			c.PointValue = cfg.PointValue
		}
	}
	return c.WithDefaults()
}

// GetListLimit returns the page size for game history listings.
func GetListLimit() int {
	if cfg == nil || cfg.ListLimit <= 0 {
		return defaultListLimit
	}
	return cfg.ListLimit
}

// GetShareTokenTTL returns how long scoreboard share tokens stay valid.
func GetShareTokenTTL() time.Duration {
	if cfg == nil || cfg.ShareTokenTTLHours <= 0 {
		return defaultShareTokenTTL
	}
	return time.Duration(cfg.ShareTokenTTLHours) * time.Hour
}
