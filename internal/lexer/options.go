package lexer

import (
	"cfparse/internal/diag"
	"cfparse/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func report(opts Options, code diag.Code, sp source.Span, msg string) {
	if opts.Reporter != nil {
		diag.ReportError(opts.Reporter, code, sp, msg).Emit()
	}
}
