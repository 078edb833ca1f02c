package markup

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	listOpen      = `<ul class="list-disc list-inside mt-1 space-y-0.5">`
	listClose     = `</ul>`
	lineBreak     = `<br>`
	typingMarkup  = `<div class="dot-flashing w-6 h-6"></div>`
	boldOpen      = `<strong>`
	boldClose     = `</strong>`
	listItemOpen  = `<li>`
	listItemClose = `</li>`
)

// Render writes tokens as HTML. Consecutive list items share one list. Runs of
// line breaks collapse into one and a trailing break is dropped.
func Render(tokens []Token) string {
	var b strings.Builder
	inList := false
	lastBreak := false

	for _, token := range tokens {
		if token.Kind == KindListItem {
			if !inList {
				b.WriteString(listOpen)
				inList = true
			}
			b.WriteString(listItemOpen)
			writeInline(&b, token.Children)
			b.WriteString(listItemClose)
			lastBreak = false
			continue
		}

		if inList {
			b.WriteString(listClose)
			inList = false
		}

		switch token.Kind {
		case KindLineBreak:
			if lastBreak {
				continue
			}
			b.WriteString(lineBreak)
			lastBreak = true
		default:
			writeInline(&b, []Token{token})
			lastBreak = false
		}
	}

	if inList {
		b.WriteString(listClose)
	}

	return strings.TrimSuffix(b.String(), lineBreak)
}

func writeInline(b *strings.Builder, runs []Token) {
	for _, run := range runs {
		switch run.Kind {
		case KindBold:
			b.WriteString(boldOpen)
			b.WriteString(run.Text)
			b.WriteString(boldClose)
		case KindText:
			b.WriteString(run.Text)
		}
	}
}

var classList = regexp.MustCompile(`^[\w\s.-]+$`)

// Formatter converts reply text into HTML that is safe to insert into a page.
type Formatter struct {
	policy *bluemonday.Policy
}

// NewFormatter builds a formatter whose output is re-checked against an
// allow-list limited to the elements Render emits.
func NewFormatter() *Formatter {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("strong", "ul", "li", "br", "div")
	policy.AllowAttrs("class").Matching(classList).OnElements("ul", "div")
	return &Formatter{policy: policy}
}

// Format escapes, tokenizes and renders text.
func (f *Formatter) Format(text string) template.HTML {
	rendered := Render(Tokenize(text))
	// #nosec G203 -- output was escaped before markup was added and passed the allow-list.
	return template.HTML(f.policy.Sanitize(rendered))
}

// TypingIndicator returns the placeholder shown while a reply is outstanding.
func (f *Formatter) TypingIndicator() template.HTML {
	return template.HTML(typingMarkup)
}
