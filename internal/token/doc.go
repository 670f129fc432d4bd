// Package token defines lexical token kinds and the token stream for VBA modules.
// Invariants:
//   - Every byte of module text belongs to exactly one token; trivia (whitespace,
//     newlines, comments) are tokens too, because edits are addressed by token index.
//   - Token.Index equals the token's position in its Stream; EOF is always last.
//   - A line continuation (whitespace, '_', newline) is a single LineContinuation token.
//   - Keywords are case-insensitive; Token.Text keeps the original spelling.
package token
