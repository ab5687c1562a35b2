package config

import "fmt"

// ValidateConfig checks that required configuration values are present and
// sensible. The chef API key is deliberately not required here so that test
// runs and offline development do not need a provider credential; the chef
// service reports the missing key when it is actually used.
func ValidateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Chef.MaxTokens <= 0 {
		return fmt.Errorf("invalid chef max tokens: %d", cfg.Chef.MaxTokens)
	}
	if cfg.Chef.Timeout <= 0 {
		return fmt.Errorf("invalid chef timeout: %v", cfg.Chef.Timeout)
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit request count: %d", cfg.RateLimit.Requests)
		}
		if cfg.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window: %v", cfg.RateLimit.Window)
		}
	}
	if cfg.DefaultUserID == 0 {
		return fmt.Errorf("default user id is required")
	}
	return nil
}
