// Package kernel holds the primitives shared by every aggregate: the UUID
// identifier value object and the DomainEvent contract that aggregates use to
// hand recorded events to the outbox.
package kernel
