package duckdb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/wrapped/internal/ports/secondary"
)

// The CLI has no parameter binding, so placeholders are replaced with literals.
// Strings that would need escaping are refused rather than quoted.

// bindArgs replaces each '?' outside a quoted literal with the next argument.
func bindArgs(query string, args []any) (string, error) {
	var b strings.Builder
	b.Grow(len(query) + 16*len(args))

	next := 0
	inLiteral := false
	for _, r := range query {
		switch {
		case r == '\'':
			inLiteral = !inLiteral
			b.WriteRune(r)
		case r == '?' && !inLiteral:
			if next >= len(args) {
				return "", fmt.Errorf("%w: query has more placeholders than arguments (%d)", secondary.ErrQuery, len(args))
			}
			lit, err := literal(args[next])
			if err != nil {
				return "", fmt.Errorf("%w: argument %d: %w", secondary.ErrQuery, next+1, err)
			}
			b.WriteString(lit)
			next++
		default:
			b.WriteRune(r)
		}
	}

	if next != len(args) {
		return "", fmt.Errorf("%w: query has %d placeholders but %d arguments", secondary.ErrQuery, next, len(args))
	}
	return b.String(), nil
}

func literal(arg any) (string, error) {
	switch v := arg.(type) {
	case nil:
		return "NULL", nil
	case string:
		if strings.ContainsAny(v, "'\x00") {
			return "", fmt.Errorf("string %q contains a quote or NUL", v)
		}
		return "'" + v + "'", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05") + "'", nil
	default:
		return "", fmt.Errorf("unsupported argument type %T", arg)
	}
}
