// Package runner holds the outcome of tracing one program.
package runner

// Runner runs a program to completion and reports what happened.
type Runner interface {
	Run() Result
}
