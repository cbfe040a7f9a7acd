package varpath

import (
	"sort"
)

// Context is the stack of variable scopes a render resolves names against.
// The root scope holds the top-level variables; constructs that introduce
// bindings (a loop body binding its iteration variable) push a scope on
// entry and pop it on exit.
//
// A Context belongs to one render and is not safe for concurrent use.
type Context struct {
	scopes []*Mapping
}

// NewContext creates a context whose root scope holds data. Values are
// converted with ValueOf; native records and containers stay Opaque and
// must outlive the render.
func NewContext(data map[string]any) *Context {
	return NewContextWithScope(MappingOf(data))
}

// NewContextWithScope creates a context with scope as its root scope.
// A nil scope becomes an empty one.
func NewContextWithScope(scope *Mapping) *Context {
	if scope == nil {
		scope = NewMapping()
	}
	return &Context{scopes: []*Mapping{scope}}
}

// Push enters a new innermost scope.
func (c *Context) Push(scope *Mapping) {
	if scope == nil {
		panic(ErrMsgPushNilScope)
	}
	c.scopes = append(c.scopes, scope)
}

// Pop leaves the innermost scope. Popping more scopes than were pushed is a
// defect in the calling renderer and panics.
func (c *Context) Pop() {
	switch len(c.scopes) {
	case 0:
		panic(ErrMsgPopEmptyContext)
	case 1:
		panic(ErrMsgPopRootScope)
	}
	c.scopes[len(c.scopes)-1] = nil
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Depth returns the number of scopes, including the root scope.
func (c *Context) Depth() int {
	return len(c.scopes)
}

// Insert binds name in the innermost scope.
func (c *Context) Insert(name string, v Value) {
	c.scopes[len(c.scopes)-1].Set(name, v)
}

// ResolveRoot looks name up innermost scope first; the first scope binding
// it wins.
func (c *Context) ResolveRoot(name string) (Value, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i].Get(name); ok {
			return v, true
		}
	}
	return Invalid(), false
}

// Names returns every name visible from the innermost scope, sorted.
func (c *Context) Names() []string {
	seen := make(map[string]struct{})
	for _, scope := range c.scopes {
		for _, k := range scope.Keys() {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
