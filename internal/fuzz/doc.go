// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through both lexers and the full parse-and-lower pipeline of both
// dialects. They guard against panics, hangs and out-of-range spans.
//
// Назначение: запускать fuzz-обработчики на корпусе из testdata и
// встроенных фрагментах.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
