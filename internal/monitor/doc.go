// Package monitor samples watched ports after each tick and hands the
// samples to publishers: a plain writer for the CLI and a socket.io client
// for live dashboards.
package monitor
