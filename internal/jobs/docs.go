// Package jobs provides scheduled background tasks for the production service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// OutboxRelayJob drains the transactional outbox: every tick it publishes up
// to a batch of pending domain events and marks them published. The default
// schedule is "*/5 * * * * *". Delivery is at least once; consumers dedupe on
// the event-id header.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(publishOutboxHandler, jobs.OutboxSettings{BatchSize: 100}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and left for the next tick. Runs never overlap.
package jobs
