package cast

// Signal is a minimal multi-subscriber event bus. Connect returns the
// disconnect function; disconnecting during an emission takes effect for
// the handlers not yet called.
type Signal[T any] struct {
	handlers map[int]func(T)
	order    []int
	nextID   int
}

func (s *Signal[T]) Connect(fn func(T)) (disconnect func()) {
	if s.handlers == nil {
		s.handlers = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.handlers, id)
	}
}

// emit calls every connected handler in connection order. A panicking
// handler is contained: onPanic is told about it and the remaining
// handlers still run.
func (s *Signal[T]) emit(value T, onPanic func(recovered any)) {
	count := len(s.order)
	for i := 0; i < count; i++ {
		fn, ok := s.handlers[s.order[i]]
		if !ok {
			continue
		}
		s.dispatch(fn, value, onPanic)
	}
	if len(s.handlers) < len(s.order) {
		s.compact()
	}
}

func (s *Signal[T]) dispatch(fn func(T), value T, onPanic func(recovered any)) {
	defer func() {
		if recovered := recover(); recovered != nil && onPanic != nil {
			onPanic(recovered)
		}
	}()
	fn(value)
}

func (s *Signal[T]) compact() {
	live := make([]int, 0, len(s.handlers))
	for _, id := range s.order {
		if _, ok := s.handlers[id]; ok {
			live = append(live, id)
		}
	}
	s.order = live
}
