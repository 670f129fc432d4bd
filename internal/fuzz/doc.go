// Package fuzztests houses Go fuzz harnesses for the module pipeline
// (source -> lexer -> parser -> comments/annotations -> rewriter). They guard
// against panics and hangs on arbitrary module text and check the lossless
// token round trip.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
