package domain

import (
	"fmt"
	"strings"
)

// CompileError is returned by compilers when the source is rejected.
// Line and Column are 1-based; zero means the position is unknown.
type CompileError struct {
	File    string
	Line    int
	Column  int
	Message string
}

// Error renders the diagnostic as file:line:column: message.
func (e *CompileError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Is makes every CompileError match ErrCompileFailed.
func (e *CompileError) Is(target error) bool {
	return target == ErrCompileFailed
}
