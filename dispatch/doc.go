// Package dispatch runs jobs concurrently, at most a fixed number at a time, in the order
// they were scheduled. Each job may carry an alarm: a timeout after which its context is
// cancelled and the job fails with context.DeadlineExceeded.
package dispatch
