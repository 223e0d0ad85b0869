// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - StageAuthorizer: decides whether an actor may work, approve or assign a stage
//   - CodeGenerator: allocates the next OP-<year>-<NNNN> code with a degraded fallback
package services
