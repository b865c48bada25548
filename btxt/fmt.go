package btxt

import (
	"fmt"
	"io"
)

// String renders a MatchKind by name.
func (k MatchKind) String() string {
	switch k {
	case NoMatch:
		return "NoMatch"
	case PartialMatch:
		return "PartialMatch"
	case Matched:
		return "Matched"
	case Invalid:
		return "Invalid"
	default:
		return fmt.Sprintf("InvalidMatchKind%v", int(k))
	}
}

// String renders an EventKind by name.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventHeading:
		return "Heading"
	case EventCode:
		return "Code"
	case EventAnnotation:
		return "Annotation"
	case EventEnd:
		return "End"
	default:
		return fmt.Sprintf("InvalidEventKind%v", int(k))
	}
}

// Format writes a textual representation of the receiver, producing a
// verbose "Kind field=value" form when formatted with "%+v", a terse
// "Kind" form otherwise.
func (ev ScanEvent) Format(f fmt.State, _ rune) {
	if !f.Flag('+') {
		fmt.Fprint(f, ev.Kind)
		return
	}
	switch ev.Kind {
	case EventHeading:
		fmt.Fprintf(f, "%v level=%v text=%q", ev.Kind, ev.Heading.Level, ev.Heading.Heading)
	case EventCode:
		fmt.Fprintf(f, "%v lang=%q bytes=%v", ev.Kind, ev.Code.Lang, len(ev.Code.Contents))
	case EventAnnotation:
		fmt.Fprintf(f, "%v lang=%q hasCode=%v", ev.Kind, ev.AnnotationLang, ev.AnnotationHasCode)
	default:
		fmt.Fprint(f, ev.Kind)
	}
}

// Format writes a textual representation of the receiver's tree shape.
func (s Section) Format(f fmt.State, _ rune) {
	s.format(f, 0)
}

func (s Section) format(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, "  ")
	}
	if depth == 0 {
		io.WriteString(w, "<root>")
	} else {
		fmt.Fprintf(w, "%v %s", headingMarker(s.Part.Level), s.Part.Heading)
	}
	if n := len(s.CodeBlockIndexes); n > 0 {
		fmt.Fprintf(w, " (%v code)", n)
	}
	for _, c := range s.Children {
		io.WriteString(w, "\n")
		c.format(w, depth+1)
	}
}

func headingMarker(level int) string {
	b := make([]byte, level)
	for i := range b {
		b[i] = '#'
	}
	return string(b)
}
