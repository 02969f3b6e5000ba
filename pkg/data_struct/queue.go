package data_struct

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNilQueue        = errors.New("queue is nil")
	ErrEmptyQueue      = errors.New("queue is empty")
	ErrBrokenInvariant = errors.New("queue invariant broken")
)

type Node struct {
	Value string
	next  *Node
}

// Queue is a singly linked queue of strings.
// The zero value is an empty queue. A nil *Queue is accepted by every method
// and behaves as an absent queue: reads return zero values, writes fail with ErrNilQueue.
// Queue is not safe for concurrent use.
type Queue struct {
	head *Node
	tail *Node
	size int
}

func NewQueue() *Queue {
	return &Queue{}
}

// Free drops every node of the chain and leaves the queue empty.
func (q *Queue) Free() {
	if q == nil {
		return
	}
	current := q.head
	for current != nil {
		next := current.next
		current.next = nil
		current.Value = ""
		current = next
	}
	q.head = nil
	q.tail = nil
	q.size = 0
}

func (q *Queue) Size() int {
	if q == nil {
		return 0
	}
	return q.size
}

func (q *Queue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *Queue) InsertHead(value string) error {
	if q == nil {
		return ErrNilQueue
	}
	newNode := &Node{Value: value}

	if q.size == 0 {
		q.head = newNode
		q.tail = newNode
	} else {
		newNode.next = q.head
		q.head = newNode
	}
	q.size++
	return nil
}

func (q *Queue) InsertTail(value string) error {
	if q == nil {
		return ErrNilQueue
	}
	newNode := &Node{Value: value}

	if q.size == 0 {
		q.head = newNode
		q.tail = newNode
	} else {
		q.tail.next = newNode
		q.tail = newNode
	}
	q.size++
	return nil
}

// RemoveHead detaches the first node and returns its value.
// When buf is not empty it receives at most len(buf)-1 bytes of the value
// followed by a zero byte; the rest of buf is zeroed.
func (q *Queue) RemoveHead(buf []byte) (string, error) {
	if q == nil {
		return "", ErrNilQueue
	}
	if q.size == 0 {
		return "", ErrEmptyQueue
	}

	removed := q.head
	q.head = removed.next
	q.size--
	if q.size == 0 {
		q.tail = nil
	}

	value := removed.Value
	removed.next = nil
	removed.Value = ""

	if len(buf) > 0 {
		clear(buf)
		copy(buf[:len(buf)-1], value)
	}
	return value, nil
}

func (q *Queue) Head() (string, bool) {
	if q.IsEmpty() {
		return "", false
	}
	return q.head.Value, true
}

func (q *Queue) Tail() (string, bool) {
	if q.IsEmpty() {
		return "", false
	}
	return q.tail.Value, true
}

// Reverse flips the links in place and swaps head and tail.
func (q *Queue) Reverse() {
	if q.IsEmpty() {
		return
	}

	var prev *Node
	current := q.head
	q.tail = q.head

	for current != nil {
		next := current.next
		current.next = prev
		prev = current
		current = next
	}
	q.head = prev
}

func (q *Queue) Values() []string {
	if q.IsEmpty() {
		return nil
	}
	values := make([]string, 0, q.size)
	for current := q.head; current != nil; current = current.next {
		values = append(values, current.Value)
	}
	return values
}

func (q *Queue) IsSorted() bool {
	if q.IsEmpty() {
		return true
	}
	for current := q.head; current.next != nil; current = current.next {
		if current.next.Value < current.Value {
			return false
		}
	}
	return true
}

// Validate walks the chain and checks the size and tail bookkeeping.
func (q *Queue) Validate() error {
	if q == nil {
		return ErrNilQueue
	}
	if q.size == 0 {
		if q.head != nil || q.tail != nil {
			return fmt.Errorf("%w: empty queue keeps nodes", ErrBrokenInvariant)
		}
		return nil
	}
	if q.head == nil || q.tail == nil {
		return fmt.Errorf("%w: size %d without head or tail", ErrBrokenInvariant, q.size)
	}

	count := 1
	last := q.head
	for last.next != nil {
		last = last.next
		count++
		if count > q.size {
			return fmt.Errorf("%w: chain longer than size %d", ErrBrokenInvariant, q.size)
		}
	}
	if count != q.size {
		return fmt.Errorf("%w: chain has %d nodes, size is %d", ErrBrokenInvariant, count, q.size)
	}
	if last != q.tail {
		return fmt.Errorf("%w: tail is not the last node", ErrBrokenInvariant)
	}
	return nil
}

func (q *Queue) String() string {
	if q.IsEmpty() {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteString("[")
	for current := q.head; current != nil; current = current.next {
		sb.WriteString(current.Value)
		if current.next != nil {
			sb.WriteString(" -> ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
