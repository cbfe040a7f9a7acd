// Package varpath resolves dotted variable paths against a template context.
//
// A template expression such as {{ person.friends.0.name }} is a root name
// followed by segments. varpath walks the segments one at a time over a
// uniform Value model and collapses every failure to Invalid, so a missing
// key, a bad index or an unknown host type simply renders as empty output:
//
//	engine := varpath.MustNew()
//	ctx := varpath.NewContext(map[string]any{
//	    "people": []string{"Claire", "Grant", "Alan"},
//	})
//	engine.Render(ctx, "people.1") // "Grant"
//	engine.Render(ctx, "people.9") // ""
//
// # Values
//
// Value is a tagged union of Invalid, Bool, Integer, Float, Text, SafeText,
// Sequence, Mapping and Opaque. Native Go values enter through ValueOf;
// anything without a direct representation becomes Opaque and keeps its
// Go type as a TypeID.
//
// # Registry
//
// Opaque values are introspected through a Registry of per-type
// capabilities. A record type registers a lookup function:
//
//	type Person struct{ Name string; Age int }
//
//	varpath.RegisterRecord(engine.Registry(), func(p Person, property string) varpath.Value {
//	    switch property {
//	    case "name":
//	        return varpath.Text(p.Name)
//	    case "age":
//	        return varpath.Int(int64(p.Age))
//	    }
//	    return varpath.Invalid()
//	})
//
// Container types register as ordered (unwrapped to a Sequence, indexed
// numerically) or keyed (unwrapped to a Mapping). NewRegistry comes with
// adapters for common slices and maps, container/list, the gods lists,
// stacks, queues and maps, time.Time, Enum and RowSet. RegisterStruct maps
// exported struct fields by their varpath tag or Go name.
//
// # Mappings
//
// A Mapping answers its own keys first. The reserved segments "values" and
// "items" then yield its values and [key, value] pairs; ordered mappings
// keep insertion order, unordered ones make no ordering promise.
//
// # Filters
//
// A FilterSet holds named output filters (upper, join, yesno, date, ...).
// Filters never fail: unknown names pass the input through and panics are
// recovered. SafeText is never escaped again under autoescape.
//
// # Diagnostics
//
// Registry misses are logged at Warn and resolution failures at Debug
// through the configured zap logger. Trace reports the failing segment,
// its FailureKind and "did you mean" suggestions.
//
// # Data sources
//
// ContextFromYAML builds a context from a YAML or JSON document with key
// order preserved. QueryRows materialises an SQL result into a RowSet.
package varpath
