package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"kustomate/internal/testutil"
)

func TestAuthCommandHandler_HandleSetKey_StoresKey(t *testing.T) {
	terminalInput := new(testutil.MockTerminalInput)
	terminalInput.On("IsTerminal").Return(true)
	terminalInput.On("ReadPassword", "Enter API key: ").Return("sk-test", nil)

	keyring := new(testutil.MockKeyring)
	keyring.On("SetKey", "llm-api-key", "sk-test").Return(nil)

	sut := ProvideAuthCommandHandler(keyring, terminalInput)

	err := sut.HandleSetKey()

	assert.NoError(t, err)
	keyring.AssertExpectations(t)
}

func TestAuthCommandHandler_HandleSetKey_EmptyKey(t *testing.T) {
	terminalInput := new(testutil.MockTerminalInput)
	terminalInput.On("IsTerminal").Return(true)
	terminalInput.On("ReadPassword", "Enter API key: ").Return("", nil)

	keyring := new(testutil.MockKeyring)

	sut := ProvideAuthCommandHandler(keyring, terminalInput)

	err := sut.HandleSetKey()

	assert.ErrorContains(t, err, "cannot be empty")
	keyring.AssertNotCalled(t, "SetKey")
}

func TestAuthCommandHandler_HandleSetKey_NoTerminal(t *testing.T) {
	terminalInput := new(testutil.MockTerminalInput)
	terminalInput.On("IsTerminal").Return(false)

	sut := ProvideAuthCommandHandler(new(testutil.MockKeyring), terminalInput)

	err := sut.HandleSetKey()

	assert.ErrorContains(t, err, "no terminal available")
}

func TestAuthCommandHandler_HandleStatus(t *testing.T) {
	keyring := new(testutil.MockKeyring)
	keyring.On("HasKey", "llm-api-key").Return(true, nil)

	sut := ProvideAuthCommandHandler(keyring, new(testutil.MockTerminalInput))

	err := sut.HandleStatus()

	assert.NoError(t, err)
	keyring.AssertExpectations(t)
}

func TestAuthCommandHandler_HandleStatus_KeyringError(t *testing.T) {
	keyring := new(testutil.MockKeyring)
	keyring.On("HasKey", "llm-api-key").Return(false, errors.New("no keyring backend"))

	sut := ProvideAuthCommandHandler(keyring, new(testutil.MockTerminalInput))

	err := sut.HandleStatus()

	assert.ErrorContains(t, err, "failed to query keyring")
}
