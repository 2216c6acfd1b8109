package intent_parser

import (
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

// ProvideIntentParser picks the parser implementation from the configuration.
// With no explicit provider the remote model is used when an API key is in
// the keyring, otherwise the keyword fallback is chosen with a warning.
func ProvideIntentParser(configRepository core.ConfigRepository, keyring ports.Keyring) (ports.IntentParser, error) {
	config, err := configRepository.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch config.Parser.Provider {
	case domain.ParserProviderKeyword:
		return NewKeywordParser(), nil
	case domain.ParserProviderLLM:
		apiKey, err := keyring.GetKey(domain.APIKeyName)
		if err != nil {
			return nil, fmt.Errorf("parser provider 'llm' requires an API key, run 'kustomate auth set-key': %w", err)
		}
		return NewLLMParser(config.Parser, apiKey), nil
	}

	hasKey, err := keyring.HasKey(domain.APIKeyName)
	if err == nil && hasKey {
		apiKey, err := keyring.GetKey(domain.APIKeyName)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key from keyring: %w", err)
		}
		return NewLLMParser(config.Parser, apiKey), nil
	}

	output.PrintWarning("No API key configured, falling back to keyword parsing. Run 'kustomate auth set-key' to enable the language model.")
	return NewKeywordParser(), nil
}
