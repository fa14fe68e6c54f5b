package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		ContentDir: "./blog",
		Site: SiteConfig{
			Title:       "My Blog",
			Description: "Posts about things worth writing down",
			BaseURL:     "https://example.com",
			Language:    "en",
		},
		Blog: BlogConfig{
			PostsPerPage:     DefaultPostsPerPage,
			RouteBasePath:    DefaultRouteBasePath,
			PermalinkPattern: DefaultPermalinkPattern,
		},
		Feeds: FeedConfig{
			Formats: []string{"rss", "atom"},
		},
		Output: OutputConfig{
			Directory: DefaultOutputDirectory,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
