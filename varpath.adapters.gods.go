package varpath

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"github.com/emirpasic/gods/maps/hashmap"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// valuer is the common surface of gods containers.
type valuer interface {
	Values() []interface{}
}

// registerGodsAdapters registers the gods list, stack, queue and map types.
func registerGodsAdapters(r *Registry) {
	mustRegister(registerValuer[*arraylist.List](r, false))
	mustRegister(registerValuer[*doublylinkedlist.List](r, false))
	mustRegister(registerValuer[*singlylinkedlist.List](r, false))
	mustRegister(registerValuer[*arrayqueue.Queue](r, false))
	mustRegister(registerValuer[*linkedlistqueue.Queue](r, false))

	// gods stacks enumerate top first; expose them bottom to top so index i
	// is the i-th pushed element
	mustRegister(registerValuer[*arraystack.Stack](r, true))
	mustRegister(registerValuer[*linkedliststack.Stack](r, true))

	mustRegister(r.RegisterKeyedContainer(TypeOf[*linkedhashmap.Map](), func(v Value) *Mapping {
		ref, _ := v.Ref()
		native, ok := ref.(*linkedhashmap.Map)
		if !ok || native == nil {
			return nil
		}
		m := NewMapping()
		it := native.Iterator()
		for it.Next() {
			m.Set(godsKey(it.Key()), ValueOf(it.Value()))
		}
		return m
	}))

	mustRegister(r.RegisterKeyedContainer(TypeOf[*treemap.Map](), func(v Value) *Mapping {
		ref, _ := v.Ref()
		native, ok := ref.(*treemap.Map)
		if !ok || native == nil {
			return nil
		}
		m := NewMapping()
		it := native.Iterator()
		for it.Next() {
			m.Set(godsKey(it.Key()), ValueOf(it.Value()))
		}
		return m
	}))

	mustRegister(r.RegisterKeyedContainer(TypeOf[*hashmap.Map](), func(v Value) *Mapping {
		ref, _ := v.Ref()
		native, ok := ref.(*hashmap.Map)
		if !ok || native == nil {
			return nil
		}
		m := NewUnorderedMapping()
		for _, k := range native.Keys() {
			item, _ := native.Get(k)
			m.Set(godsKey(k), ValueOf(item))
		}
		return m
	}))
}

// registerValuer registers a gods container enumerated through Values().
func registerValuer[C valuer](r *Registry, reverse bool) error {
	return r.RegisterOrderedContainer(TypeOf[C](), func(v Value) Iteration {
		ref, _ := v.Ref()
		c, ok := ref.(C)
		if !ok {
			return NotIterable()
		}
		items := c.Values()
		values := make([]Value, len(items))
		for i, item := range items {
			if reverse {
				values[len(items)-1-i] = ValueOf(item)
			} else {
				values[i] = ValueOf(item)
			}
		}
		return Elements(values...)
	})
}

func godsKey(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
