// Package codepath builds the semantic (code path) tree of a declaration's
// syntax subtree.
//
// Each syntax node is classified by an ordered rule list: loop, branch and
// block shapes first, then the declaration override, then the reference
// override. Generic leaves are pruned, so the tree is proportional to its
// informative content.
//
// The tree is an arena addressed by NodeID. Parent links are ids, never
// owning pointers. A Tree is immutable once built; rebuild it after a reparse.
package codepath
