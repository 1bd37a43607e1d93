// Package resource provides the scoped cleanup machinery of the similars
// tool: a strict LIFO stack of releasable resources and the process context
// that unwinds it on every exit path, normal or fatal.
package resource

// Releaser is implemented by anything that must be cleaned up.
type Releaser interface {
	Release()
}

// ReleaserFunc adapts an ordinary function to the Releaser interface.
type ReleaserFunc func()

// Release calls f().
func (f ReleaserFunc) Release() {
	f()
}

// Mark identifies a point in the registration history of a Stack. Every
// resource pushed after Mark was taken lies above it, even when the stack
// was unwound below the mark in between.
type Mark int

// entry is a registered resource and its push sequence number.
type entry struct {
	seq      int
	releaser Releaser
}

// Stack is a LIFO registry of cleanup actions.
// The zero value is an empty stack ready to use.
type Stack struct {
	entries []entry
	pushed  int
}

// Push registers r on top of the stack.
func (s *Stack) Push(r Releaser) {
	s.entries = append(s.entries, entry{seq: s.pushed, releaser: r})
	s.pushed++
}

// Mark returns a mark that bounds everything pushed from now on.
func (s *Stack) Mark() Mark {
	return Mark(s.pushed)
}

// Len returns the number of registered resources.
func (s *Stack) Len() int {
	return len(s.entries)
}

// ReleaseUntil releases, newest first, every resource pushed after mark was
// taken. Each entry is detached before its Release runs, so a Release that
// unwinds the stack itself observes a consistent stack. Resources released
// earlier are never released again.
func (s *Stack) ReleaseUntil(mark Mark) {
	for len(s.entries) > 0 {
		top := len(s.entries) - 1
		e := s.entries[top]
		if Mark(e.seq) < mark {
			return
		}
		s.entries[top] = entry{}
		s.entries = s.entries[:top]
		e.releaser.Release()
	}
}

// ReleaseAll releases every registered resource, newest first.
func (s *Stack) ReleaseAll() {
	s.ReleaseUntil(0)
}
