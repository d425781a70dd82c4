package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// DataUnavailableError marks an export whose record set could not be
// assembled: a page fetch failed or the export was cancelled. No partial
// document is ever produced behind it.
type DataUnavailableError struct {
	Page int
	Err  error
}

func (e DataUnavailableError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("data unavailable: page %d fetch failed", e.Page)
	}
	return "data unavailable"
}

func (e DataUnavailableError) Unwrap() error { return e.Err }

// RenderError marks a fatal failure during final page assembly. The export
// fails entirely rather than emitting a corrupt document.
type RenderError struct {
	Doc string
	Err error
}

func (e RenderError) Error() string {
	if e.Doc != "" {
		return fmt.Sprintf("render failed: %s", e.Doc)
	}
	return "render failed"
}

func (e RenderError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsDataUnavailable(err error) bool {
	var target DataUnavailableError
	return errors.As(err, &target)
}

func IsRenderError(err error) bool {
	var target RenderError
	return errors.As(err, &target)
}
