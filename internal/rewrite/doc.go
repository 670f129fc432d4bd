// Package rewrite implements transactional, token-indexed text edits over
// module snapshots.
//
// A Manager hands out Sessions. A Session checks out one Rewriter per module
// lazily; every edit is keyed by token indices of the snapshot taken at
// checkout. Rewriter.Text materialises pending edits in ascending index order
// without committing. Session.Commit writes every dirty module exactly once
// and leaves the session terminal.
package rewrite
