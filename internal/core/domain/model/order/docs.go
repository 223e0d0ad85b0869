// Package order implements the manufacturing order aggregate: the order header,
// its immutable line item snapshots and the six stage records that track the
// order through production.
//
// The package includes:
//   - Order: the aggregate root and the stage transition rules
//   - StageRecord: per stage status, evidence, notes and assignment
//   - LineItem: product data copied at creation time
//   - Code: the OP-<year>-<NNNN> identifier and its fallback and custom forms
//   - Status, SalesChannel and Type value objects
//   - Domain events recorded on every change, relayed through the outbox
//
// Key business rules:
//   - An order needs at least one line item; institutional orders need a due date
//   - Exactly one stage is in progress while the order is active
//   - Only the current stage can take evidence or be approved
//   - Approving the quality review requires an explicit acknowledgment
//   - Approving dispatch completes the order
//
// Role checks live in services.StageAuthorizer; this package only guards state.
package order
