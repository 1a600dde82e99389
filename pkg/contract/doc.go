// Package contract defines the form model shared by every stage of the
// licence-contract pipeline: the field names, the FormState record, the
// Citizenship variant and the form variants that decide which fields are
// required.
//
// FormState is a plain value. Stages never mutate a caller's copy; they return
// a new one (see package derive) so a controller can own a single instance and
// hand out snapshots.
package contract
