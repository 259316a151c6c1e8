package earley

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"bytes"
	"fmt"
	"io"
)

// itemString formats an Earley item as [A] ::= α • β, origin.
func (p *Parser) itemString(it item) string {
	prod := p.table.Production(it.rule)
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s] ::=", prod.LHS))
	for n, sym := range prod.RHS() {
		if n == it.dot {
			b.WriteString(" •")
		}
		b.WriteString(fmt.Sprintf(" %s", sym))
	}
	if it.dot == len(prod.RHS()) {
		b.WriteString(" •")
	}
	b.WriteString(fmt.Sprintf(", %d", it.origin))
	return b.String()
}

func dumpState(p *Parser, stateno uint64) {
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	S := p.states[stateno]
	for n := 0; n < S.Size(); n++ {
		tracer().Debugf("[%2d] %s", n+1, p.itemString(S.At(n).(item)))
	}
}

// ChartAsHTML exports the chart of the current parse as an HTML table.
// It is only useful when called from within a production action, i.e.
// while a parse is underway; after Parse returns, the chart is discarded.
func ChartAsHTML(p *Parser, w io.Writer) {
	if p.states == nil {
		tracer().Errorf("no chart present, cannot export to HTML")
		return
	}
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	for i, S := range p.states {
		io.WriteString(w, fmt.Sprintf("<tr bgcolor=#cccccc><td>S%d</td></tr>\n", i))
		if S == nil {
			continue
		}
		for n := 0; n < S.Size(); n++ {
			io.WriteString(w, "<tr><td>")
			io.WriteString(w, p.itemString(S.At(n).(item)))
			io.WriteString(w, "</td></tr>\n")
		}
	}
	io.WriteString(w, "</table></body></html>\n")
}
