package btxt

// Parse parses input into a Document, using parsers as the recogniser
// cascade and strict to control how an Invalid recognition is handled: in
// strict mode it is surfaced as a *SyntaxError, otherwise it is treated as
// plain text.
func Parse(input []byte, parsers Parsers, strict bool) (Document, error) {
	sc := NewScanner(input, parsers, strict)
	b := newBuilder()

	for sc.Scan() {
		ev := sc.Event()
		switch ev.Kind {
		case EventHeading:
			b.openHeading(ev.Heading)
		case EventCode:
			b.addCode(ev.Code)
		case EventAnnotation:
			b.addAnnotation(ev.AnnotationLang, ev.AnnotationProps, ev.AnnotationHasCode)
		case EventEnd:
			return b.finish(), nil
		}
	}
	return Document{}, sc.Err()
}
