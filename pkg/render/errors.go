package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedVariable indicates a placeholder names an unknown variable.
	ErrUndefinedVariable = errors.New("render: undefined variable")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("render: template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("render: layout not found")

	// ErrRenderFailed indicates markdown conversion or layout execution failed.
	ErrRenderFailed = errors.New("render: failed to render template")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("render: invalid frontmatter")
)

// UndefinedVariableError names the placeholder that could not be resolved.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("render: %q not found when rendering template", e.Name)
}

func (e *UndefinedVariableError) Is(target error) bool {
	return target == ErrUndefinedVariable
}
