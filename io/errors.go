package io

import (
	"fmt"
)

// FormatError is returned when a file is shorter than its header declares or
// when its contents are inconsistent with the header.
type FormatError struct {
	Path string
	Msg  string
	// Expected and Actual are byte counts. They are zero when the error
	// isn't about the length of the file.
	Expected, Actual int64
}

func (err *FormatError) Error() string {
	name := err.Path
	if name == "" {
		name = "<stream>"
	}
	if err.Expected == 0 && err.Actual == 0 {
		return fmt.Sprintf("LHaloTree file %s is malformed: %s.", name, err.Msg)
	}
	return fmt.Sprintf(
		"LHaloTree file %s is malformed: %s (expected %d bytes, found %d).",
		name, err.Msg, err.Expected, err.Actual,
	)
}

// RangeError is returned when a tree index outside [0, NTrees) is requested.
type RangeError struct {
	Path   string
	Index  int
	NTrees int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf(
		"The number of trees in file %s is %d. You requested tree %d.",
		err.Path, err.NTrees, err.Index,
	)
}

// NotFoundError is returned when no tree in a file satisfies a Criteria.
type NotFoundError struct {
	Path     string
	Criteria Criteria
	NTrees   int
	// MaxHalos is the number of halos in the largest tree in the file.
	MaxHalos int
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf(
		"After searching through all %d trees in %s (largest has %d halos), "+
			"no tree has %s.", err.NTrees, err.Path, err.MaxHalos, err.Criteria,
	)
}

// ConfigError is returned when a caller asks for an invalid combination of
// options or names an unknown simulation.
type ConfigError struct {
	Msg string
}

func (err *ConfigError) Error() string { return err.Msg }

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{fmt.Sprintf(format, args...)}
}
