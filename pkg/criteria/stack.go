package criteria

// Stack is a LIFO of Contexts for one statement tree. The root is the first
// context pushed; nested sub-queries push and pop above it.
//
// The zero value is an empty stack. A Stack is not safe for concurrent use.
type Stack struct {
	contexts []*Context
}

// Depth returns the number of contexts on the stack.
func (s *Stack) Depth() int { return len(s.contexts) }

// SetRoot starts a new statement tree with c as its root. It fails with
// ErrStackInUse if a tree is already in progress; the stale tree is
// discarded so a later SetRoot succeeds.
func (s *Stack) SetRoot(c *Context) error {
	if len(s.contexts) > 0 {
		s.forceClear()
		return wrap("set root", ErrStackInUse)
	}
	s.contexts = []*Context{c}
	return nil
}

// Push enters a nested context.
func (s *Stack) Push(c *Context) error {
	if len(s.contexts) == 0 {
		return wrap("push", ErrNoRootContext)
	}
	s.contexts = append(s.contexts, c)
	return nil
}

// Pop leaves the nested context c, which must be the top and not the root.
func (s *Stack) Pop(c *Context) error {
	if err := s.checkPop(c); err != nil {
		return err
	}
	s.contexts[len(s.contexts)-1] = nil
	s.contexts = s.contexts[:len(s.contexts)-1]
	return nil
}

func (s *Stack) checkPop(c *Context) error {
	if len(s.contexts) < 2 || s.contexts[len(s.contexts)-1] != c {
		return wrap("pop", &StackMismatchError{Op: "pop", Depth: len(s.contexts)})
	}
	return nil
}

// Peek returns the current context.
func (s *Stack) Peek() (*Context, error) {
	if len(s.contexts) == 0 {
		return nil, wrap("peek", ErrNoContext)
	}
	return s.contexts[len(s.contexts)-1], nil
}

// ClearRoot ends the statement tree rooted at c. Every nested context must
// have been popped.
func (s *Stack) ClearRoot(c *Context) error {
	if err := s.checkClear(c); err != nil {
		return err
	}
	s.contexts = nil
	return nil
}

func (s *Stack) checkClear(c *Context) error {
	switch {
	case len(s.contexts) == 0:
		return wrap("clear root", ErrNoContext)
	case s.contexts[0] != c:
		return wrap("clear root", &StackMismatchError{Op: "clear", Depth: len(s.contexts)})
	case len(s.contexts) > 1:
		return wrap("clear root", &PendingSubContextError{Depth: len(s.contexts)})
	}
	return nil
}

// contains reports whether c is anywhere on the stack.
func (s *Stack) contains(c *Context) bool {
	for _, x := range s.contexts {
		if x == c {
			return true
		}
	}
	return false
}

// enclosing returns the nearest context below c that has a sub-query bound
// to alias.
func (s *Stack) enclosing(c *Context, alias string) *Context {
	i := len(s.contexts) - 1
	for i >= 0 && s.contexts[i] != c {
		i--
	}
	for i--; i >= 0; i-- {
		if _, ok := s.contexts[i].SubQuery(alias); ok {
			return s.contexts[i]
		}
	}
	return nil
}

// forceClear drops every context.
func (s *Stack) forceClear() {
	clear(s.contexts)
	s.contexts = nil
}
