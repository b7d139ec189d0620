package semidex

// ValueKind identifies a node's JSON value type without decoding it.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindObject
	KindArray
	KindBool
	KindNull
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Cursor navigates a built Index read-only: no value is decoded until a
// caller asks for it, and moving between siblings or in and out of a
// container only ever touches the BalancedParens tree, never the source
// bytes.
type Cursor struct {
	idx *Index
	pos uint64
}

func (c *Cursor) startOffset() uint64 { return c.idx.offsetAt(c.pos) }

func (c *Cursor) endOffset() uint64 {
	return c.idx.offsetAt(c.idx.bp.FindClose(c.pos))
}

// TextRange returns the half-open byte range [start, end) this node
// occupies in the source document.
func (c *Cursor) TextRange() (start, end uint64) {
	return c.startOffset(), c.endOffset()
}

// ValueBytes returns the node's raw source bytes, unparsed. For a string
// this includes the surrounding quotes and any escape sequences verbatim;
// use StringValue for the decoded form.
func (c *Cursor) ValueBytes() []byte {
	s, e := c.TextRange()
	return c.idx.source[s:e]
}

// Kind reports the node's JSON value type by inspecting its first byte.
func (c *Cursor) Kind() ValueKind {
	switch c.idx.source[c.startOffset()] {
	case byteLBrace:
		return KindObject
	case byteLBracket:
		return KindArray
	case byteQuote:
		return KindString
	case 't', 'f':
		return KindBool
	case 'n':
		return KindNull
	default:
		return KindNumber
	}
}

// IsContainer reports whether the node is an object or array.
func (c *Cursor) IsContainer() bool {
	k := c.Kind()
	return k == KindObject || k == KindArray
}

// FirstChild returns the node's first child, or false if it has none
// (a leaf, or an empty object/array).
func (c *Cursor) FirstChild() (*Cursor, bool) {
	p, ok := c.idx.bp.FirstChild(c.pos)
	if !ok {
		return nil, false
	}
	return &Cursor{idx: c.idx, pos: p}, true
}

// NextSibling returns the node immediately following this one under the
// same parent, or false if this is the last child.
func (c *Cursor) NextSibling() (*Cursor, bool) {
	p, ok := c.idx.bp.NextSibling(c.pos)
	if !ok {
		return nil, false
	}
	return &Cursor{idx: c.idx, pos: p}, true
}

// Parent returns the node's enclosing container, or false at the root.
func (c *Cursor) Parent() (*Cursor, bool) {
	p, ok := c.idx.bp.Parent(c.pos)
	if !ok {
		return nil, false
	}
	return &Cursor{idx: c.idx, pos: p}, true
}

// ChildCount walks every child and counts them exactly, O(children).
func (c *Cursor) ChildCount() int {
	n := 0
	child, ok := c.FirstChild()
	for ok {
		n++
		child, ok = child.NextSibling()
	}
	return n
}

// EstimatedChildCount derives a child count from subtree size alone,
// without walking any children: exact for a container whose children are
// all leaves, an upper bound otherwise (nested containers each count
// their own descendants too). Useful for pre-sizing a caller's slice
// before a real descent.
func (c *Cursor) EstimatedChildCount() uint64 {
	size := c.idx.bp.SubtreeSize(c.pos)
	if size == 0 {
		return 0
	}
	return size - 1
}

// Index returns the i-th child (0-based) of an array or object node, or
// false if there are fewer than i+1 children.
func (c *Cursor) Index(i int) (*Cursor, bool) {
	if i < 0 {
		return nil, false
	}
	child, ok := c.FirstChild()
	for ok && i > 0 {
		child, ok = child.NextSibling()
		i--
	}
	if !ok {
		return nil, false
	}
	return child, true
}

// Field returns the child of an object node whose key matches name, or
// false if no such key exists. Each candidate's key is recovered via
// FieldName, which costs a short backward scan — cheap relative to the
// forward scan Field would otherwise need to locate keys in the first
// place, since keys are never their own BP node (see FieldName).
func (c *Cursor) Field(name string) (*Cursor, bool) {
	child, ok := c.FirstChild()
	for ok {
		if key, kok := child.FieldName(); kok && key == name {
			return child, true
		}
		child, ok = child.NextSibling()
	}
	return nil, false
}

// FieldName recovers this node's key, if it is a direct child of an
// object. Object keys are deliberately not indexed as their own BP node
// (a semi-index over N object entries would otherwise need N extra
// nodes, 2N extra BP bits, that no caller ever navigates to directly), so FieldName instead
// scans backward from the node's start over optional whitespace, a
// colon, optional whitespace, and the preceding quoted string, stopping
// at the first unescaped quote.
func (c *Cursor) FieldName() (string, bool) {
	src := c.idx.source
	i := int(c.startOffset()) - 1
	for i >= 0 && isJSONSpace(src[i]) {
		i--
	}
	if i < 0 || src[i] != byteColon {
		return "", false
	}
	i--
	for i >= 0 && isJSONSpace(src[i]) {
		i--
	}
	if i < 0 || src[i] != byteQuote {
		return "", false
	}
	end := i
	i--
	for i >= 0 {
		if src[i] == byteQuote {
			j := i - 1
			backslashes := 0
			for j >= 0 && src[j] == byteBackslash {
				backslashes++
				j--
			}
			if backslashes%2 == 0 {
				s, err := unescapeJSONString(src[i+1 : end])
				if err != nil {
					return "", false
				}
				return s, true
			}
		}
		i--
	}
	return "", false
}

// StringValue returns the node's decoded string content, or false if the
// node isn't a string. Unlike ValueBytes, the surrounding quotes are
// stripped and any escape sequences are resolved.
func (c *Cursor) StringValue() (string, bool) {
	if c.Kind() != KindString {
		return "", false
	}
	raw := c.ValueBytes()
	if len(raw) < 2 {
		return "", false
	}
	s, err := unescapeJSONString(raw[1 : len(raw)-1])
	if err != nil {
		return "", false
	}
	return s, true
}
