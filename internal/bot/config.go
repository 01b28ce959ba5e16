package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Hard cap on cards shown in a single /learn session
	SessionCardCap int
	// Defaults used when /goal is called without explicit numbers
	DefaultGoalDays       int
	DefaultSessionsPerDay int
	DefaultTargetWords    int
	// How many weak words /weak lists at most
	WeakWordLimit int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		SessionCardCap:        30,
		DefaultGoalDays:       30,
		DefaultSessionsPerDay: 1,
		DefaultTargetWords:    100,
		WeakWordLimit:         10,
	}
}
