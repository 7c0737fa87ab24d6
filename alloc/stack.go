package alloc

// stack is the LIFO free-list both allocators reuse addresses from.
type stack[T comparable] struct {
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items = s.items[:n-1]
	return v, true
}

func (s *stack[T]) len() uint64 {
	return uint64(len(s.items))
}

// remove deletes the topmost occurrence of v.
func (s *stack[T]) remove(v T) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}
