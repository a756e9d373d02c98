package domain

import "fmt"

// SpawnOptions are passed through the subprocess rewriter untouched.
type SpawnOptions struct {
	// Dir is the working directory of the child. Empty means the parent's.
	Dir string
	// Env holds extra "KEY=VALUE" pairs appended to the parent's environment.
	Env []string
}

// SpawnRequest describes a child process to start.
type SpawnRequest struct {
	Path    string
	Args    []string
	Options SpawnOptions
}

// Argv returns the full argument vector of the request.
func (r SpawnRequest) Argv() []string {
	argv := make([]string, 0, len(r.Args)+1)
	argv = append(argv, r.Path)
	return append(argv, r.Args...)
}

// ExitStatus is returned when a script ends the process with a non-zero code.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
