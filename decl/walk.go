package decl

// Walk visits every node reachable from root in pre-order: a node, then its
// children in slot order, then its next sibling. Returning false from visit
// skips the node's children but not its siblings.
//
// Walk keeps its own stack so arbitrarily deep trees do not grow the Go stack.
func Walk(root *Node, visit func(n *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.node == nil {
			continue
		}
		// Push in reverse so the sibling is visited after all the children.
		stack = append(stack, frame{top.node.Next, top.depth})
		if !visit(top.node, top.depth) {
			continue
		}
		for i := MaxChildren - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.Children[i], top.depth + 1})
		}
	}
}

// Count returns the number of nodes under root matching pred.
func Count(root *Node, pred func(*Node) bool) (count int) {
	Walk(root, func(n *Node, _ int) bool {
		if pred(n) {
			count++
		}
		return true
	})
	return
}

// Clone deep copies a forest, children and siblings included.
func Clone(root *Node) *Node {
	if root == nil {
		return nil
	}
	type pending struct {
		src *Node
		dst **Node
	}
	var out *Node
	work := []pending{{root, &out}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		copied := *p.src
		copied.Children = [MaxChildren]*Node{}
		copied.Next = nil
		*p.dst = &copied

		if p.src.Next != nil {
			work = append(work, pending{p.src.Next, &copied.Next})
		}
		for i, child := range p.src.Children {
			if child != nil {
				work = append(work, pending{child, &copied.Children[i]})
			}
		}
	}
	return out
}
