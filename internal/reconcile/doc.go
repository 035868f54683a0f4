// Package reconcile implements the create/delete reconciliation engine shared
// by every Rancher resource kind.
//
// One invocation of [Operation.Execute] runs a single cycle:
//
//	Lookup (GET by name) -> Classify -> Select -> NoOp | Create | Delete -> Result
//
// [Classify] turns the lookup page into a [Verdict]. [Select] is a pure
// function of the verdict and the desired [Presence]:
//
//	verdict        present   absent
//	present        NoOp      Delete
//	absent         Create    NoOp
//	indeterminate  Fatal     Fatal
//
// There is no update: a resource that exists and should exist is reported
// unchanged whatever its attributes. Nothing is retried; every remote error
// is returned as received.
//
// Kinds plug in through the fields of [Operation]: the collection, a typed
// payload builder and the [Dependency] lookups that must resolve to exactly
// one record before a create is sent.
package reconcile
