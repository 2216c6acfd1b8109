package handler

import (
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

type AuthCommandHandler struct {
	keyring       ports.Keyring
	terminalInput ports.TerminalInput
}

func ProvideAuthCommandHandler(keyring ports.Keyring, terminalInput ports.TerminalInput) AuthCommandHandler {
	return AuthCommandHandler{
		keyring:       keyring,
		terminalInput: terminalInput,
	}
}

func (h *AuthCommandHandler) HandleSetKey() error {
	if !h.terminalInput.IsTerminal() {
		return fmt.Errorf("cannot read API key: no terminal available")
	}

	key, err := h.terminalInput.ReadPassword("Enter API key: ")
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if err := h.keyring.SetKey(domain.APIKeyName, key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	output.PrintSuccess("API key saved to the system keyring")
	return nil
}

func (h *AuthCommandHandler) HandleStatus() error {
	hasKey, err := h.keyring.HasKey(domain.APIKeyName)
	if err != nil {
		return fmt.Errorf("failed to query keyring: %w", err)
	}

	if hasKey {
		output.PrintSuccess("An API key is configured")
	} else {
		output.PrintInfo("No API key configured, natural language requests use keyword parsing")
	}
	return nil
}
