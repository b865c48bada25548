package btxt

import "fmt"

// EventKind identifies what a Scanner produced on the most recent Scan.
type EventKind int

// EventKind values.
const (
	EventNone EventKind = iota
	EventHeading
	EventCode
	EventAnnotation
	EventEnd
)

// ScanEvent is the result of one Scanner.Scan call.
type ScanEvent struct {
	Kind EventKind

	Heading SectionPart
	Code    CodePart

	AnnotationLang    []byte
	AnnotationProps   Properties
	AnnotationHasCode bool
}

// SyntaxError is returned by Scanner.Err when strict mode is enabled and an
// Invalid recognition is hit. LineStart and LineEnd are 1-based and span
// the offending block's pending window; LineText is the literal bytes of
// that window.
type SyntaxError struct {
	LineStart int
	LineEnd   int
	LineText  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("btxt: syntax error at line %d: invalid annotation: %s", e.LineStart, e.LineText)
}

// Parsers bundles the three recognisers a Scanner applies, in cascade
// order: fence, then heading, then annotation.
type Parsers struct {
	Fence      FenceParser
	Heading    HeadingParser
	Annotation AnnotationParser
}

// DefaultParsers returns the Parsers bundle for the standard Markdown-like
// syntax: triple-backtick fences, '#'-marker headings, and annotations
// spelled either "<?btxt ... ?>" or "<!--btxt ... -->".
func DefaultParsers() Parsers {
	return Parsers{
		Fence:   FenceParser{Open: "```", Close: "```"},
		Heading: HeadingParser{Marker: '#'},
		Annotation: AnnotationParser{Delims: []DelimPair{
			{Open: "<?btxt", Close: "?>"},
			{Open: "<!--btxt", Close: "-->"},
		}},
	}
}

// Scanner walks an input buffer one line at a time, growing its pending
// window until one of the configured recognisers resolves it, and emits
// one ScanEvent per Scan call. It never copies input; every byte slice it
// produces aliases the original buffer.
type Scanner struct {
	input   []byte
	parsers Parsers
	strict  bool

	pos        int // start of the pending window
	end        int // end of the pending window (exclusive)
	lineNo     int // 1-based line number of pos
	blockStart int // line number the pending window opened on

	event ScanEvent
	err   error
	done  bool
}

// NewScanner returns a Scanner over input using parsers. When strict is
// true, an Invalid recognition produces a *SyntaxError from Err and stops
// scanning; otherwise the offending block is silently discarded as plain
// text and scanning continues.
func NewScanner(input []byte, parsers Parsers, strict bool) *Scanner {
	return &Scanner{
		input:      input,
		parsers:    parsers,
		strict:     strict,
		lineNo:     1,
		blockStart: 1,
	}
}

// Event returns the most recent event produced by Scan.
func (s *Scanner) Event() ScanEvent { return s.event }

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error { return s.err }

// extend grows the pending window by exactly one more line, including its
// trailing newline when present. It reports whether it grew the window.
func (s *Scanner) extend() bool {
	if s.end >= len(s.input) {
		return false
	}
	nl := indexByteFrom(s.input, s.end, '\n')
	if nl < 0 {
		s.end = len(s.input)
	} else {
		s.end = nl + 1
	}
	return true
}

func indexByteFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// countLines reports how many newline bytes appear in b.
func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

// linesSpanned reports how many lines b covers, counting a trailing
// partial line (one with no terminating newline) as one more.
func linesSpanned(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	n := countLines(b)
	if b[len(b)-1] != '\n' {
		n++
	}
	return n
}

// trimTrailingNewline returns b as a string with one trailing newline
// byte, if present, removed.
func trimTrailingNewline(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Scan advances the scanner and reports whether an event is available via
// Event. At end of input it produces one EventEnd event; it returns false
// on every call after that, or after an error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	for {
		grew := s.extend()
		window := s.input[s.pos:s.end]

		if len(window) == 0 {
			// nothing left at all
			s.event = ScanEvent{Kind: EventEnd}
			s.done = true
			return true
		}

		fr := s.parsers.Fence.Parse(window)
		if fr.Kind == Matched {
			s.emitCode(fr.Part)
			return true
		}
		if fr.Kind == PartialMatch {
			if !grew {
				s.swallowRemainder()
				return true
			}
			continue
		}

		hr := s.parsers.Heading.Parse(window)
		if hr.Kind == Matched {
			s.emitHeading(hr.Part)
			return true
		}

		ar := s.parsers.Annotation.Parse(window)
		if ar.Kind == Matched {
			s.emitAnnotation(ar)
			return true
		}
		if ar.Kind == PartialMatch {
			if !grew {
				s.swallowRemainder()
				return true
			}
			continue
		}
		if ar.Kind == Invalid {
			if s.strict {
				s.err = &SyntaxError{
					LineStart: s.blockStart,
					LineEnd:   s.lineNo + linesSpanned(window) - 1,
					LineText:  trimTrailingNewline(window),
				}
				s.done = true
				return false
			}
			s.advancePast(len(window))
			continue
		}

		// none of the recognisers want this window at all: it is plain
		// text. Since a recogniser only ever grows from PartialMatch, a
		// unanimous NoMatch here means the window is still exactly one
		// line; discard it and resume the cascade at the next line.
		if !grew {
			s.swallowRemainder()
			return true
		}
		s.advancePast(len(window))
	}
}

func (s *Scanner) advancePast(n int) {
	s.lineNo += countLines(s.input[s.pos : s.pos+n])
	s.pos += n
	s.end = s.pos
	s.blockStart = s.lineNo
}

func (s *Scanner) swallowRemainder() {
	s.lineNo += countLines(s.input[s.pos:s.end])
	s.pos = s.end
	s.blockStart = s.lineNo
	s.event = ScanEvent{Kind: EventEnd}
	s.done = true
}

func (s *Scanner) emitCode(part CodePart) {
	consumed := len(s.input[s.pos:s.end])
	s.event = ScanEvent{Kind: EventCode, Code: part}
	s.advancePast(consumed)
}

func (s *Scanner) emitHeading(part SectionPart) {
	consumed := len(s.input[s.pos:s.end])
	s.event = ScanEvent{Kind: EventHeading, Heading: part}
	s.advancePast(consumed)
}

func (s *Scanner) emitAnnotation(ar AnnotationResult) {
	consumed := len(s.input[s.pos:s.end])
	s.event = ScanEvent{
		Kind:              EventAnnotation,
		AnnotationLang:    ar.Lang,
		AnnotationProps:   ar.Props,
		AnnotationHasCode: ar.HasCode,
	}
	s.advancePast(consumed)
}
