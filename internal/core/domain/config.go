package domain

import "fmt"

// Config holds the tool configuration loaded from ~/.kustomate.yaml.
type Config struct {
	Parser    ParserConfig  `yaml:"parser"`
	Cluster   ClusterConfig `yaml:"cluster,omitempty"`
	Namespace string        `yaml:"namespace,omitempty"`
	// ManifestPath is the default path scanned in file mode.
	ManifestPath string `yaml:"manifestPath,omitempty"`
}

// ParserConfig selects and configures the natural-language intent parser.
// The API key is not stored here; it lives in the OS keyring.
type ParserConfig struct {
	// Provider is "llm" for the remote model or "keyword" for the offline
	// fallback parser. Empty means: llm when an API key is present in the
	// keyring, keyword otherwise.
	Provider string `yaml:"provider,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

// ClusterConfig overrides how the cluster scanner connects.
type ClusterConfig struct {
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
	Context    string `yaml:"context,omitempty"`
}

const (
	ParserProviderLLM     = "llm"
	ParserProviderKeyword = "keyword"

	// APIKeyName is the keyring entry holding the model API key.
	APIKeyName = "llm-api-key"
)

func CreateDefaultConfig() Config {
	return Config{
		Parser: ParserConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
			Model:    "gemini-1.5-flash",
		},
	}
}

func (c *Config) Validate() error {
	switch c.Parser.Provider {
	case "", ParserProviderLLM, ParserProviderKeyword:
	default:
		return fmt.Errorf("unknown parser provider '%s'", c.Parser.Provider)
	}

	if c.Parser.Provider == ParserProviderLLM {
		if c.Parser.Endpoint == "" {
			return fmt.Errorf("parser provider 'llm' requires an endpoint")
		}
		if c.Parser.Model == "" {
			return fmt.Errorf("parser provider 'llm' requires a model")
		}
	}

	return nil
}
