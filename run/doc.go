// Package run executes resolved command specs.
//
// A Command wraps one resolve.Spec and is configured fluently before a
// single Execute call: working directory, extra environment variables,
// capture, forwarding sinks, per-line callbacks. Execute spawns exactly
// one OS process, drains stdout and stderr with one dedicated Forwarder
// goroutine each, and blocks until the child has exited and both streams
// are flushed. The child's exit code comes back as data on the Result; an
// error return means the process could not be started at all.
//
// Configuration is single-shot. Configuring a stream consumer twice, or
// configuring anything after Execute has started, is a programming error
// and panics immediately.
package run
