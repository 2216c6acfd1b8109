package ports

import "io"

// CommandRunner executes shell commands and returns their output.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
	// RunWithStdin executes a command with stdin connected to the given
	// reader, for commands that read their payload from a pipe.
	RunWithStdin(stdin io.Reader, name string, args ...string) ([]byte, error)
}
