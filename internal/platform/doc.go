package platform

// Package platform contains OS integration and external tooling glue: the
// rclone wrapper, login-item registration and filesystem/open helpers.
