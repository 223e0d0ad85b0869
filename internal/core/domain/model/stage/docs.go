// Package stage is the static catalog of production stages and the status a
// stage record moves through.
//
// The catalog is fixed and totally ordered:
//
//	sale -> design -> printing -> sewing -> quality_review -> dispatch
//
// Every stage except dispatch has exactly one successor. A stage record's
// status only moves forward:
//
//	pending -> in_progress -> approved
//
// Values coming from outside (HTTP, database) go through Parse and ParseStatus
// so that unknown identifiers are rejected at the boundary.
package stage
