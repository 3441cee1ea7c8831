// Package refresh runs rclone usage queries in the background and delivers
// the results of the latest request per remote. A Scheduler triggers full
// refreshes on a configurable interval.
package refresh
