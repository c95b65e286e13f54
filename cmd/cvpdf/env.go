package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"
)

// Environment holds the process dependencies commands write to, so tests can
// capture output and pin the clock.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// notifyContext returns a context canceled by the first shutdown signal.
// Call stop to restore default signal handling.
func notifyContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
