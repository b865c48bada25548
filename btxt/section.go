package btxt

// CodePart is the raw, unresolved content of one fenced code block: its
// body and the language tag on its opening fence, if any. Both alias the
// original input buffer.
type CodePart struct {
	Contents []byte
	Lang     []byte
}

// Code is one code block with the Properties that apply to it, resolved
// from the PropertyEnv in effect at the point it was encountered.
type Code struct {
	Part      CodePart
	Effective Properties
}

// SectionPart is the raw content of one heading: its level (1 for a
// single marker, 2 for two, and so on) and its text, aliasing the
// original input buffer.
type SectionPart struct {
	Heading []byte
	Level   int
}

// Section is one node of the document's heading tree. Root has a zero
// SectionPart and holds whatever content appeared before the first
// heading.
type Section struct {
	Part             SectionPart
	Env              PropertyEnv
	CodeBlockIndexes []int
	Children         []Section
}

// Document is the fully parsed result: every code block encountered that
// does not resolve to ignore=true, in source order, plus the heading tree
// referencing them by index.
type Document struct {
	CodeBlocks []Code
	Root       Section
}

// sectionNode is the builder's working representation of a Section. Every
// node is allocated once and referenced only by pointer, so appending a
// sibling to a parent's children never invalidates a pointer to an
// existing child, the way appending directly to a []Section would.
type sectionNode struct {
	part             SectionPart
	env              PropertyEnv
	codeBlockIndexes []int
	children         []*sectionNode
}

func (n *sectionNode) toSection() Section {
	out := Section{
		Part:             n.part,
		Env:              n.env,
		CodeBlockIndexes: n.codeBlockIndexes,
	}
	if len(n.children) > 0 {
		out.Children = make([]Section, len(n.children))
		for i, c := range n.children {
			out.Children[i] = c.toSection()
		}
	}
	return out
}

// builder accumulates a Document from a stream of ScanEvents. It keeps a
// level-ordered stack of currently-open sections; reconciling a new
// heading against the stack pops any section whose level is not
// shallower than the incoming heading (each popped section reattaching,
// one at a time, to whichever section remains as the new top), then
// pushes a fresh child of the new top.
type builder struct {
	root       *sectionNode
	stack      []*sectionNode
	codeBlocks []Code
}

func newBuilder() *builder {
	root := &sectionNode{}
	return &builder{root: root, stack: []*sectionNode{root}}
}

func (b *builder) current() *sectionNode {
	return b.stack[len(b.stack)-1]
}

// openHeading reconciles the stack against a newly encountered heading
// and descends into a fresh child section for it.
func (b *builder) openHeading(part SectionPart) {
	for len(b.stack) > 1 && b.current().part.Level >= part.Level {
		b.popOne()
	}
	parent := b.current()
	child := &sectionNode{part: part, env: parent.env.Clone()}
	parent.children = append(parent.children, child)
	b.stack = append(b.stack, child)
}

// popOne removes the top of the stack, reattaching it to its immediate
// remaining parent. Reattachment already happened when the child was
// appended to parent.children, so popOne need only drop the stack frame.
func (b *builder) popOne() {
	b.stack = b.stack[:len(b.stack)-1]
}

// addAnnotation applies an annotation's properties to the current
// section's environment. Per the global ignore-consistency invariant, the
// environment update always takes effect (so ignore keeps propagating to
// later blocks even when this annotation itself carries none). code= is
// never stored into the environment itself: it names the inline contents
// of this one annotation, not a property subsequent blocks should inherit.
// When the annotation carries a code= property it is an inline-code
// annotation: its Code block is built directly from that property's
// bytes, recorded only if it does not resolve to ignored.
func (b *builder) addAnnotation(lang []byte, props Properties, hasCode bool) {
	cur := b.current()
	envProps := props
	envProps.Code = OptionalBytes{}
	cur.env.Update(lang, envProps)
	if !hasCode {
		return
	}
	effective := cur.env.Resolve(lang)
	if effective.Ignore == True {
		return
	}
	idx := len(b.codeBlocks)
	b.codeBlocks = append(b.codeBlocks, Code{
		Part:      CodePart{Contents: props.Code.Bytes, Lang: lang},
		Effective: effective,
	})
	cur.codeBlockIndexes = append(cur.codeBlockIndexes, idx)
}

// addCode records a fenced code block against the current section,
// resolving its effective Properties from the section's environment.
func (b *builder) addCode(part CodePart) {
	cur := b.current()
	effective := cur.env.Resolve(part.Lang)
	if effective.Ignore == True {
		return
	}
	idx := len(b.codeBlocks)
	b.codeBlocks = append(b.codeBlocks, Code{Part: part, Effective: effective})
	cur.codeBlockIndexes = append(cur.codeBlockIndexes, idx)
}

func (b *builder) finish() Document {
	return Document{CodeBlocks: b.codeBlocks, Root: b.root.toSection()}
}
