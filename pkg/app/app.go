// Package app holds the contract between cmd/ binaries and the processes they start.
package app

// Runner is a process that runs until it is signalled to stop.
type Runner interface {
	Run() error
}
