// Package task runs host commands in the background. Generating an answer
// blocks for up to several backend round trips, so the command surface hands
// it to a worker pool and returns immediately with a task ID the host can
// poll. Task state is kept in memory only.
package task
