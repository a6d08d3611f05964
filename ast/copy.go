package ast

// DeepCopy clones a subtree. Copies are unindexed (EntryState/ExitState reset
// to -1); callers (principally lister's repetition lowering) reindex them
// via the indexer package before wiring them into lists.
func DeepCopy(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:       n.Kind,
		EntryState: -1,
		ExitState:  -1,
		Min:        n.Min,
		Max:        n.Max,
		Negated:    n.Negated,
	}
	if n.Chars != nil {
		c.Chars = append([]byte(nil), n.Chars...)
	}
	if n.BracketChars != nil {
		c.BracketChars = append([]byte(nil), n.BracketChars...)
	}
	if n.BracketRanges != nil {
		c.BracketRanges = append([]ByteRange(nil), n.BracketRanges...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = DeepCopy(ch)
		}
	}
	if n.Child != nil {
		c.Child = DeepCopy(n.Child)
	}
	return c
}
