// Package comments extracts comments from raw module text.
//
// The scanner walks physical lines with a two-state machine (Idle,
// ContinuingComment). A comment whose line ends in a continuation marker
// (" _") absorbs the following lines; the markers never reach the emitted
// text. Comments are produced lazily, one per Next call, and a Scanner cannot
// be rewound.
package comments
