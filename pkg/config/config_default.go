package config

// Default returns the default configuration.
func Default() *StaticConfig {
	return &StaticConfig{
		ListOutput: "table",
	}
}
