// Package bootstrap provides uniform application lifecycle management:
// config validation, logger initialization, component startup in
// registration order, lifecycle hooks, signal handling, and graceful
// shutdown in reverse order.
package bootstrap
