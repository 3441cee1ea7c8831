package model

// Package model defines the domain data shared across the app: configured
// remote entries, status snapshots produced by rclone, display order rules and
// the transient per-card view state used while dragging or editing.
