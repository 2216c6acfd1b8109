package terminal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"kustomate/internal/ports"

	"golang.org/x/term"
)

// Compile-time interface compliance check
var _ ports.TerminalInput = (*TerminalInput)(nil)

// TerminalInput provides terminal input operations using golang.org/x/term.
type TerminalInput struct{}

// ProvideTerminalInput creates a new TerminalInput adapter.
func ProvideTerminalInput() *TerminalInput {
	return &TerminalInput{}
}

// ReadPassword prompts for a secret and returns the input without echoing to the terminal.
func (t *TerminalInput) ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Print newline after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// Confirm prompts with a yes/no question. Anything but an explicit
// "y" or "yes" counts as a no.
func (t *TerminalInput) Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// IsTerminal returns true if stdin is connected to a terminal.
func (t *TerminalInput) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
