package varpath

// Iteration is the result of converting a value to a sequence. It separates
// "not iterable in its current state" from "an iterable collection that
// happens to be empty", which an empty slice alone cannot express.
type Iteration struct {
	elements []Value
	iterable bool
}

// NotIterable reports that a value does not denote a collection right now.
func NotIterable() Iteration {
	return Iteration{}
}

// Elements reports an iterable collection with the given members.
func Elements(values ...Value) Iteration {
	if values == nil {
		values = []Value{}
	}
	return Iteration{elements: values, iterable: true}
}

// Iterable reports whether the value denoted a collection.
func (it Iteration) Iterable() bool { return it.iterable }

// Values returns the members; empty for NotIterable.
func (it Iteration) Values() []Value {
	if it.elements == nil {
		return []Value{}
	}
	return it.elements
}

// Len returns the member count.
func (it Iteration) Len() int { return len(it.elements) }

// Sequence returns the members as a Sequence value (empty for NotIterable).
func (it Iteration) Sequence() Value { return Sequence(it.Values()...) }
