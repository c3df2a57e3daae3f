package driven

import "context"

// ExecutionResult is the outcome of one sandboxed code run.
type ExecutionResult struct {
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
	Error    string
}

// CodeRunner executes a generated code snippet in a sandboxed
// environment. Supports reports whether the runner can execute the
// given language at all; validation treats an unsupported language as
// "not run" rather than a failure.
type CodeRunner interface {
	Supports(language string) bool
	Run(ctx context.Context, code, language string) (ExecutionResult, error)
}
