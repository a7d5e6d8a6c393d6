package sexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Write renders a datum as Scheme source text. It is the printer the
// un-memoizer's diagnostic output is rendered through; it never
// round-trips reader annotations (Pos) back out.
func Write(d Datum) string {
	var sb strings.Builder
	write(&sb, d)
	return sb.String()
}

func write(sb *strings.Builder, d Datum) {
	switch v := d.(type) {
	case nil:
		sb.WriteString("()")
	case *Pair:
		writePair(sb, v)
	case Symbol:
		sb.WriteString(string(v))
	case Keyword:
		sb.WriteString("#:")
		sb.WriteString(string(v))
	case bool:
		if v {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case int64:
		sb.WriteString(strconv.FormatInt(v, 10))
	case int:
		sb.WriteString(strconv.Itoa(v))
	case float64:
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(v, `"`, `\"`))
		sb.WriteByte('"')
	case rune:
		sb.WriteString("#\\")
		sb.WriteRune(v)
	case unspecifiedType:
		sb.WriteString("#<unspecified>")
	case emptyListType:
		sb.WriteString("()")
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func writePair(sb *strings.Builder, p *Pair) {
	sb.WriteByte('(')
	write(sb, p.Car)
	rest := p.Cdr
	for {
		if IsEmptyList(rest) {
			break
		}
		next, ok := rest.(*Pair)
		if !ok {
			sb.WriteString(" . ")
			write(sb, rest)
			break
		}
		sb.WriteByte(' ')
		write(sb, next.Car)
		rest = next.Cdr
	}
	sb.WriteByte(')')
}
