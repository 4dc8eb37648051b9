// Copyright © 2018 The ELPS authors

package lisp

// Profiler is notified of procedure applications.
type Profiler interface {
	// IsEnabled returns true if the profiler is collecting data.
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// Complete ends the profiling session and flushes any output.
	Complete() error
	// Start marks the application of fun and returns a function which marks
	// the end of the application.  The end function receives the result of
	// the application, which is an LMarkEscape when an escape procedure
	// unwound through it and an LError when it failed.
	Start(fun *LVal) func(result *LVal)
}
