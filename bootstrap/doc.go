// Package bootstrap runs the picoview process lifecycle: typed config,
// component registration, start and stop hooks, and signal handling.
//
// CLI commands use RunTask, which cancels the task on SIGINT or SIGTERM and
// stops components when it returns. The sandbox command uses Run, which
// blocks until a signal arrives.
package bootstrap
