package config

// ServerConfig represents the front end configuration
type ServerConfig struct {
	FilterType    string
	ListenAddress string
	ResultDelay   string
	MaxBodySize   int
	SpamHeader    string
	ScoreHeader   string
}

// SpamConfig represents the verdict settings
type SpamConfig struct {
	Threshold          int
	WhitelistedDomains []string
}

// ClassifierConfig represents the classifier settings
type ClassifierConfig struct {
	Type          string
	ExtraKeywords []string
}

// CacheConfig represents the verdict cache settings
type CacheConfig struct {
	Type             string
	Enabled          bool
	TTL              string
	CleanupFrequency string
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		FilterType:    c.GetString("server.filter_type"),
		ListenAddress: c.GetString("server.listen_address"),
		ResultDelay:   c.GetString("server.result_delay"),
		MaxBodySize:   c.GetInt("server.max_body_size"),
		SpamHeader:    c.GetString("server.headers.spam"),
		ScoreHeader:   c.GetString("server.headers.score"),
	}
}

// GetSpam returns the spam configuration
func (c *Config) GetSpam() SpamConfig {
	return SpamConfig{
		Threshold:          c.GetInt("spam.threshold"),
		WhitelistedDomains: c.GetStringSlice("spam.whitelisted_domains"),
	}
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Type:          c.GetString("classifier.type"),
		ExtraKeywords: c.GetStringSlice("classifier.extra_keywords"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:             c.GetString("cache.type"),
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              c.GetString("cache.ttl"),
		CleanupFrequency: c.GetString("cache.cleanup_frequency"),
	}
}
