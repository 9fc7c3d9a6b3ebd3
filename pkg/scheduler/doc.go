// Package scheduler re-evaluates policies on a cron schedule, for
// continuous compliance monitoring. Completed batches are handed to a
// callback so embedders can score and persist them.
package scheduler
