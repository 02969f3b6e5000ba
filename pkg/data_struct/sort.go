package data_struct

// Sort orders the queue ascending by byte-wise string comparison.
// Equal values keep their relative order. Only links are rewritten.
func (q *Queue) Sort() {
	if q == nil || q.size < 2 {
		return
	}
	q.head, q.tail = mergeSort(q.head)
}

// mergeSort sorts the nil-terminated chain starting at head
// and returns its new first and last nodes.
func mergeSort(head *Node) (*Node, *Node) {
	if head == nil || head.next == nil {
		return head, head
	}

	front, back := splitFrontBack(head)
	front, _ = mergeSort(front)
	back, _ = mergeSort(back)

	return sortedMerge(front, back)
}

// splitFrontBack cuts the chain after its middle node.
// For n nodes the front part keeps ceil(n/2) of them.
func splitFrontBack(head *Node) (*Node, *Node) {
	slow := head
	for fast := head.next; fast != nil && fast.next != nil; fast = fast.next.next {
		slow = slow.next
	}

	back := slow.next
	slow.next = nil
	return head, back
}

// sortedMerge links two sorted chains into one. On equal values the node
// from left goes first.
func sortedMerge(left, right *Node) (*Node, *Node) {
	var head, last *Node

	for left != nil && right != nil {
		var next *Node
		if left.Value <= right.Value {
			next = left
			left = left.next
		} else {
			next = right
			right = right.next
		}

		if last == nil {
			head = next
		} else {
			last.next = next
		}
		last = next
	}

	rest := left
	if rest == nil {
		rest = right
	}
	if last == nil {
		head = rest
		last = rest
	} else {
		last.next = rest
	}
	for last != nil && last.next != nil {
		last = last.next
	}

	return head, last
}
