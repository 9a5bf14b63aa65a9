package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrCircularReference indicates declarations reference each other in a loop
	ErrCircularReference = errors.New("circular reference detected")

	// ErrDanglingReference indicates a dependency names no declaration
	ErrDanglingReference = errors.New("dangling reference")

	// ErrSyntax indicates the Sass source could not be tokenized into a tree
	ErrSyntax = errors.New("syntax error")

	// ErrImportNotFound indicates an @import target could not be located
	ErrImportNotFound = errors.New("import not found")

	// ErrInvalidConfig indicates a configuration value was rejected
	ErrInvalidConfig = errors.New("invalid configuration")
)

// CircularReferenceError represents a dependency cycle between declarations
type CircularReferenceError struct {
	FilePath       string
	ReferenceChain []string
}

func (e *CircularReferenceError) Error() string {
	chain := strings.Join(e.ReferenceChain, " → ")
	if e.FilePath == "" {
		return fmt.Sprintf("circular reference detected: %s\nSuggestion: Break the circular dependency chain", chain)
	}
	return fmt.Sprintf("circular reference detected in %s: %s\nSuggestion: Break the circular dependency chain", e.FilePath, chain)
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// NewCircularReferenceError creates a new circular reference error
func NewCircularReferenceError(filePath string, chain []string) error {
	return &CircularReferenceError{
		FilePath:       filePath,
		ReferenceChain: chain,
	}
}

// DanglingReferenceError represents a dependency on an undeclared variable
type DanglingReferenceError struct {
	Name        string
	Missing     string
	Suggestions []string
}

func (e *DanglingReferenceError) Error() string {
	msg := fmt.Sprintf("$%s references undeclared variable $%s", e.Name, e.Missing)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("\nSuggestion: Did you mean $%s?", strings.Join(e.Suggestions, ", $"))
	}
	return msg
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}

// NewDanglingReferenceError creates a new dangling reference error
func NewDanglingReferenceError(name, missing string, suggestions []string) error {
	return &DanglingReferenceError{
		Name:        name,
		Missing:     missing,
		Suggestions: suggestions,
	}
}

// SyntaxError represents malformed Sass at a 1-based line and column
type SyntaxError struct {
	FilePath string
	Line     int
	Column   int
	Reason   string
}

func (e *SyntaxError) Error() string {
	file := e.FilePath
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, e.Line, e.Column, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(filePath string, line, column int, reason string) error {
	return &SyntaxError{
		FilePath: filePath,
		Line:     line,
		Column:   column,
		Reason:   reason,
	}
}

// ImportNotFoundError represents an @import that matched no file
type ImportNotFoundError struct {
	FilePath string
	Import   string
	Searched []string
}

func (e *ImportNotFoundError) Error() string {
	return fmt.Sprintf("cannot resolve @import %q in %s (searched: %s)\nSuggestion: Add the containing directory to includePaths",
		e.Import, e.FilePath, strings.Join(e.Searched, ", "))
}

func (e *ImportNotFoundError) Unwrap() error {
	return ErrImportNotFound
}

// NewImportNotFoundError creates a new import not found error
func NewImportNotFoundError(filePath, importPath string, searched []string) error {
	return &ImportNotFoundError{
		FilePath: filePath,
		Import:   importPath,
		Searched: searched,
	}
}

// InvalidConfigError represents a rejected configuration field
type InvalidConfigError struct {
	FilePath string
	Field    string
	Reason   string
}

func (e *InvalidConfigError) Error() string {
	msg := "invalid configuration"
	if e.FilePath != "" {
		msg += " in " + e.FilePath
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	return msg + ": " + e.Reason
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewInvalidConfigError creates a new invalid config error
func NewInvalidConfigError(filePath, field, reason string) error {
	return &InvalidConfigError{
		FilePath: filePath,
		Field:    field,
		Reason:   reason,
	}
}
