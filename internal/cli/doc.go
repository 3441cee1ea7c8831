// Package cli defines the command line: the root command starts the tray
// application and subcommands query rclone remotes from a terminal.
package cli
