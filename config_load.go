package tremor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Reads a YAML configuration file. Keys missing from the file keep
// their [DefaultConfig]() values. The result is validated.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("tremor: load %s: %w", filename, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("tremor: %s: %w", filename, err)
	}
	return cfg, nil
}

// Same as [LoadConfig](), but from in-memory YAML.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encodes the configuration as YAML, in the format [ParseConfig]()
// accepts.
func (self Config) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(self)
}
