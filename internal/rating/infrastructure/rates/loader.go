package rates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	rating "freightops/internal/rating/domain"
)

type channelFile struct {
	Channels []rating.Channel `yaml:"channels"`
}

// Parse decodes a YAML channel catalog and validates every rate rule up
// front, so an estimate run can trust the tables it walks.
func Parse(data []byte) ([]rating.Channel, error) {
	var file channelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("channel rates: %w", err)
	}
	for _, channel := range file.Channels {
		if channel.ID == "" {
			return nil, fmt.Errorf("channel rates: channel without id")
		}
		if channel.ChargePrice > 0 && !channel.ChargeUnit.IsValid() {
			return nil, fmt.Errorf("channel rates: channel %q: unknown charge unit %q", channel.ID, channel.ChargeUnit)
		}
		for _, rule := range channel.Rules {
			if err := rule.Validate(); err != nil {
				return nil, fmt.Errorf("channel rates: channel %q: %w", channel.ID, err)
			}
		}
	}
	return file.Channels, nil
}

// Load reads and parses a channel catalog from disk.
func Load(path string) ([]rating.Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("channel rates %s: %w", path, err)
	}
	channels, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("channel rates %s: %w", path, err)
	}
	return channels, nil
}
