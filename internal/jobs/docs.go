// Package jobs runs the periodic background work of the dispatch service on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. DelayMonitorJob - evaluates the delay rule (default every minute) and publishes a
//     DelayAlert when the set of delayed orders is non-empty and has grown.
//  2. AutoDispatchJob - optional; assigns the oldest PRICED order to the nearest online
//     courier on every tick.
//
// # Usage
//
//	jm := jobs.NewJobManager(logger, delayJob, autoDispatchJob)
//	if err := jm.StartAll(); err != nil {
//		return err
//	}
//	defer jm.StopAll()
//
// Specs accept an optional leading seconds field and descriptors such as "@every 30s".
// Stop blocks until a tick in progress has returned.
package jobs
