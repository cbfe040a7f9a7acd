package varpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_ScopeShadowing(t *testing.T) {
	ctx := NewContext(map[string]any{"name": "outer", "only": "root"})
	assert.Equal(t, 1, ctx.Depth())

	ctx.Push(NewMapping().Set("name", Text("inner")))
	assert.Equal(t, 2, ctx.Depth())

	v, ok := ctx.ResolveRoot("name")
	require.True(t, ok)
	assert.True(t, v.Equal(Text("inner")), "innermost scope wins")

	v, ok = ctx.ResolveRoot("only")
	require.True(t, ok)
	assert.True(t, v.Equal(Text("root")), "outer scopes stay visible")

	ctx.Pop()
	v, _ = ctx.ResolveRoot("name")
	assert.True(t, v.Equal(Text("outer")))
}

func TestContext_Insert(t *testing.T) {
	ctx := NewContext(nil)
	ctx.Push(NewMapping())
	ctx.Insert("loop", Int(1))

	_, ok := ctx.ResolveRoot("loop")
	assert.True(t, ok)

	ctx.Pop()
	_, ok = ctx.ResolveRoot("loop")
	assert.False(t, ok, "binding disappears with its scope")
}

func TestContext_Names(t *testing.T) {
	ctx := NewContext(map[string]any{"b": 1, "a": 2})
	ctx.Push(NewMapping().Set("c", Int(3)).Set("a", Int(4)))

	assert.Equal(t, []string{"a", "b", "c"}, ctx.Names())
}

func TestContext_Unbound(t *testing.T) {
	ctx := NewContextWithScope(nil)
	v, ok := ctx.ResolveRoot("missing")
	assert.False(t, ok)
	assert.False(t, v.IsValid())
}

func TestContext_PopPanics(t *testing.T) {
	t.Run("root scope", func(t *testing.T) {
		ctx := NewContext(nil)
		assert.PanicsWithValue(t, ErrMsgPopRootScope, func() { ctx.Pop() })
	})

	t.Run("empty stack", func(t *testing.T) {
		ctx := &Context{}
		assert.PanicsWithValue(t, ErrMsgPopEmptyContext, func() { ctx.Pop() })
	})

	t.Run("push nil", func(t *testing.T) {
		ctx := NewContext(nil)
		assert.PanicsWithValue(t, ErrMsgPushNilScope, func() { ctx.Push(nil) })
	})
}
