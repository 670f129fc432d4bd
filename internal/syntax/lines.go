package syntax

// EndsOfLine returns every EndOfLine node under root in token order.
func EndsOfLine(root *Node) []*Node {
	return root.Find(EndOfLine)
}

// PreviousEndOfLine returns the last logical-line terminator that ends strictly
// before n starts, or nil when n is on the module's first logical line.
func PreviousEndOfLine(n *Node) *Node {
	if n == nil {
		return nil
	}
	var prev *Node
	n.Root().Walk(func(x *Node) bool {
		if x.Start >= n.Start {
			return false
		}
		if x.Kind == EndOfLine && x.Stop < n.Start {
			prev = x
		}
		return true
	})
	return prev
}
