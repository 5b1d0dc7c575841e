// Package formkit provides a reactive validation engine for hierarchical
// form state: trees of typed leaf fields, named groups, and ordered arrays
// whose validity, interaction flags, and aggregate values stay consistent as
// values change.
//
// The package revolves around the Control interface, implemented by three
// concrete types – Field, Group, and Array – while the engine handles:
//  1. Running sync validators and merging their keyed errors
//  2. Scheduling async validators with debounce, cancellation, and
//     stale-result discard
//  3. Two-phase propagation so composite statuses always reflect settled
//     child state
//  4. Dirty and touched tracking with upward aggregation
//  5. Disabled subtrees that are exempt from validation and aggregation
//
// # Architecture
//
// Every connected tree shares one engine state guarded by a single mutex, so
// mutations serialize: a reader never observes a propagation pass midway.
// Structural edits (attach, detach) migrate subtrees between trees by
// swapping an atomic state pointer under the old lock; concurrent operations
// re-acquire and recheck, so controls can move while async validators for
// them are still in flight.
//
// Async validation is generation based. Each value change opens a new
// generation, cancels the previous one through its context, and discards any
// result that settles late. A composite is pending while any of its own or
// its enabled descendants' async validators are outstanding; invalid wins
// over pending as soon as a definitive verdict exists.
//
// # Usage
//
// Build a tree, mutate values, and read statuses:
//
//	form := formkit.MustGroup(map[string]formkit.Control{
//	    "email": formkit.NewField("", rules.Required(), rules.Email()),
//	    "age":   formkit.NewField(0, rules.Min(18)),
//	})
//
//	email, _ := form.Child("email")
//	_ = email.SetAny("user@example.com")
//	if form.Valid() {
//	    // submit form.Value()
//	}
//
// Dot-separated paths address nested controls ("address.city", "emails.0")
// through Lookup on any control.
//
// Cross-field constraints are ordinary validators on composites, reading the
// subtree through a View:
//
//	differ := func(v formkit.View) formkit.Errors {
//	    a, _ := v.Child("password")
//	    b, _ := v.Child("confirm")
//	    if a.Value() != b.Value() {
//	        return formkit.Errors{"mismatch": true}
//	    }
//	    return nil
//	}
//
// Async validators run against immutable snapshots and report through the
// same error map; Wait blocks until a control (or a whole tree, via its
// root) settles:
//
//	status, err := formkit.Wait(ctx, form)
//
// # Error Handling
//
// Validation failures are data, not Go errors: they travel as Errors maps on
// the control that produced them. Go errors surface programmer mistakes
// (type mismatches, shape mismatches, attaching a control twice) and
// validator panics, which abort the failing recompute pass without
// corrupting sibling state. Async validator faults never masquerade as
// verdicts: the control stays pending and the fault routes to the tree's
// WithErrorHandler hook.
package formkit
