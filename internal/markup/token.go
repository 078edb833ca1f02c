// Package markup turns chat replies written in a small bold/list subset into
// escaped, structured HTML.
//
// Formatting happens in two steps. Tokenize escapes the input and classifies it
// into a flat token sequence; Render turns that sequence into markup. Keeping
// them apart lets the grammar be tested without looking at HTML.
package markup

import "strings"

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	KindText Kind = iota
	KindBold
	KindListItem
	KindLineBreak
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindListItem:
		return "list_item"
	case KindLineBreak:
		return "line_break"
	default:
		return "unknown"
	}
}

// Token is one unit of formatted output. Text holds already-escaped content for
// text and bold runs. List items carry their inline runs in Children.
type Token struct {
	Kind     Kind
	Text     string
	Children []Token
}

const (
	boldMarker = "**"
	listPrefix = "- "
)

// Tokenize escapes text and splits it into tokens. Lines whose trimmed content
// starts with "- " become list items; every other line becomes its inline runs
// followed by a line break.
func Tokenize(text string) []Token {
	escaped := Escape(text)
	lines := strings.Split(escaped, "\n")

	tokens := make([]Token, 0, len(lines)*2)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, listPrefix) {
			tokens = append(tokens, Token{
				Kind:     KindListItem,
				Children: inline(strings.TrimPrefix(trimmed, listPrefix)),
			})
			continue
		}
		tokens = append(tokens, inline(line)...)
		tokens = append(tokens, Token{Kind: KindLineBreak})
	}
	return tokens
}

// inline scans one line left to right. Each "**" opens a bold run that closes at
// the next "**" on the same line; an opener without a closer stays literal.
func inline(line string) []Token {
	var runs []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			runs = append(runs, Token{Kind: KindText, Text: literal.String()})
			literal.Reset()
		}
	}

	rest := line
	for {
		open := strings.Index(rest, boldMarker)
		if open < 0 {
			literal.WriteString(rest)
			break
		}
		afterOpen := rest[open+len(boldMarker):]
		closeAt := strings.Index(afterOpen, boldMarker)
		if closeAt < 0 {
			literal.WriteString(rest)
			break
		}

		literal.WriteString(rest[:open])
		flush()
		runs = append(runs, Token{Kind: KindBold, Text: afterOpen[:closeAt]})
		rest = afterOpen[closeAt+len(boldMarker):]
	}
	flush()
	return runs
}
