package display

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render prints summary HTML as plain terminal text. Headings are
// underlined, list items get bullets or numbers, and block elements are
// separated by blank lines. Content of script, style and similar elements
// is dropped.
func Render(w io.Writer, src string) error {
	z := html.NewTokenizer(strings.NewReader(src))
	r := &renderer{w: w}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				r.flush()
				return r.err
			}
			return z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if hidden(tag) {
				if tt == html.StartTagToken {
					r.skip++
				}
				continue
			}
			if r.skip == 0 {
				r.open(tag)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if hidden(tag) {
				if r.skip > 0 {
					r.skip--
				}
				continue
			}
			if r.skip == 0 {
				r.close(tag)
			}

		case html.TextToken:
			if r.skip == 0 {
				r.text(string(z.Text()))
			}
		}

		if r.err != nil {
			return r.err
		}
	}
}

func hidden(tag atom.Atom) bool {
	switch tag {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Noscript, atom.Template, atom.Iframe, atom.Object:
		return true
	}
	return false
}

func heading(tag atom.Atom) bool {
	switch tag {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// spaced reports block elements that get a blank line around them.
func spaced(tag atom.Atom) bool {
	switch tag {
	case atom.P, atom.Ul, atom.Ol, atom.Table, atom.Blockquote, atom.Pre, atom.Section, atom.Article, atom.Dl:
		return true
	}
	return heading(tag)
}

// block reports elements that end the current line.
func block(tag atom.Atom) bool {
	switch tag {
	case atom.Div, atom.Tr, atom.Dt, atom.Dd, atom.Header, atom.Footer, atom.Main, atom.Nav, atom.Aside, atom.Figure, atom.Figcaption:
		return true
	}
	return spaced(tag)
}

type list struct {
	ordered bool
	n       int
}

type renderer struct {
	w   io.Writer
	err error

	line    strings.Builder
	bullet  string
	lists   []list
	heading atom.Atom
	skip    int

	wrote bool // something has been printed
	blank bool // a blank line is owed before the next printed line
}

func (r *renderer) open(tag atom.Atom) {
	switch {
	case tag == atom.Br:
		r.flush()
	case tag == atom.Hr:
		r.flush()
		r.blank = r.wrote
		r.println(strings.Repeat("-", 40))
		r.blank = true
	case tag == atom.Li:
		r.flush()
		if len(r.lists) == 0 {
			r.lists = append(r.lists, list{})
		}
		l := &r.lists[len(r.lists)-1]
		l.n++
		if l.ordered {
			r.bullet = fmt.Sprintf("%d. ", l.n)
		} else {
			r.bullet = "• "
		}
	case tag == atom.Ul || tag == atom.Ol:
		r.flush()
		if len(r.lists) == 0 {
			r.blank = true
		}
		r.lists = append(r.lists, list{ordered: tag == atom.Ol})
	case tag == atom.Td || tag == atom.Th:
		if cur := strings.TrimRight(r.line.String(), " "); cur != "" {
			r.line.Reset()
			r.line.WriteString(cur + " | ")
		}
	case heading(tag):
		r.flush()
		r.blank = true
		r.heading = tag
	case block(tag):
		r.flush()
		if spaced(tag) {
			r.blank = true
		}
	}
}

func (r *renderer) close(tag atom.Atom) {
	switch {
	case tag == atom.Li:
		r.flush()
	case tag == atom.Ul || tag == atom.Ol:
		r.flush()
		if len(r.lists) > 0 {
			r.lists = r.lists[:len(r.lists)-1]
		}
		if len(r.lists) == 0 {
			r.blank = true
		}
	case heading(tag):
		r.flush()
		r.heading = 0
		r.blank = true
	case block(tag):
		r.flush()
		if spaced(tag) {
			r.blank = true
		}
	}
}

func (r *renderer) text(s string) {
	var sb strings.Builder
	space := false
	for _, c := range s {
		if unicode.IsSpace(c) {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(c)
	}
	if space {
		sb.WriteByte(' ')
	}
	t := sb.String()

	cur := r.line.String()
	if cur == "" || strings.HasSuffix(cur, " ") {
		t = strings.TrimLeft(t, " ")
	}
	r.line.WriteString(t)
}

// flush prints the pending line, if any.
func (r *renderer) flush() {
	content := strings.TrimRight(r.line.String(), " ")
	r.line.Reset()
	if content == "" {
		return
	}

	indent := ""
	if n := len(r.lists); n > 1 {
		indent = strings.Repeat("  ", n-1)
	}
	r.println(indent + r.bullet + content)
	r.bullet = ""

	if r.heading != 0 {
		ch := "-"
		if r.heading == atom.H1 {
			ch = "="
		}
		r.println(strings.Repeat(ch, utf8.RuneCountInString(content)))
	}
}

func (r *renderer) println(s string) {
	if r.err != nil {
		return
	}
	if r.blank && r.wrote {
		if _, r.err = io.WriteString(r.w, "\n"); r.err != nil {
			return
		}
	}
	r.blank = false
	_, r.err = io.WriteString(r.w, s+"\n")
	r.wrote = true
}
