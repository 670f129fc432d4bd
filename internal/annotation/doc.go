// Package annotation reads and edits '@ annotations in module comments.
//
// Annotations attach metadata to a module, a member, a variable or an
// identifier reference. Every edit goes through a rewrite.Session, so callers
// can batch them and commit once. Conditions that make an edit impossible
// (missing target, wrong target kind, bad placement, incompatible update)
// never fail the caller: the Updater leaves the source untouched and returns
// an Outcome explaining why. Session misuse is returned as an error.
package annotation
