// Package cli turns command-line arguments into an app.Config. Flag errors
// and invalid values come back as *ExitError carrying the process exit code;
// help requests tell the caller to exit cleanly.
package cli
