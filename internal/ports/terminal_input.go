package ports

// TerminalInput provides methods for reading user input from the terminal.
type TerminalInput interface {
	// ReadPassword prompts for a secret and returns the input without echoing to the terminal.
	ReadPassword(prompt string) (string, error)
	// Confirm prompts with a yes/no question and returns true only on an
	// explicit "y" or "yes" answer.
	Confirm(prompt string) (bool, error)
	// IsTerminal returns true if stdin is connected to a terminal.
	IsTerminal() bool
}
