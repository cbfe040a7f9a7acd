package varpath

import (
	"reflect"
)

// StructTagName is the struct tag RegisterStruct reads property names from.
// A tag value of "-" hides the field.
const StructTagName = "varpath"

// RegisterRecord registers a typed lookup for application record type T.
// fn receives the native value and the requested property name and returns
// Invalid for properties it does not expose:
//
//	varpath.RegisterRecord(reg, func(p Person, property string) varpath.Value {
//	    switch property {
//	    case "name":
//	        return varpath.Text(p.Name)
//	    case "age":
//	        return varpath.Int(int64(p.Age))
//	    }
//	    return varpath.Invalid()
//	})
func RegisterRecord[T any](r *Registry, fn func(record T, property string) Value) error {
	if fn == nil {
		return NewRegistrationError(ErrMsgNilLookup, TypeOf[T]())
	}
	return r.RegisterLookup(TypeOf[T](), func(v Value, property string) Value {
		ref, _ := v.Ref()
		record, ok := ref.(T)
		if !ok {
			return Invalid()
		}
		return fn(record, property)
	})
}

// RegisterStruct registers a reflection-based lookup for struct type T (or
// pointer to struct). Exported fields are visible under their Go name and,
// when present, under the name given by the `varpath` struct tag.
func RegisterStruct[T any](r *Registry) error {
	id := TypeOf[T]()
	st := id.Type()
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return NewRegistrationError(ErrMsgStructNotStruct, id)
	}

	fields := structFields(st)
	return r.RegisterLookup(id, func(v Value, property string) Value {
		index, ok := fields[property]
		if !ok {
			return Invalid()
		}
		ref, _ := v.Ref()
		rv := reflect.ValueOf(ref)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return Invalid()
			}
			rv = rv.Elem()
		}
		field, err := rv.FieldByIndexErr(index)
		if err != nil {
			return Invalid()
		}
		return ValueOf(field.Interface())
	})
}

// structFields maps property names to field index paths, including
// promoted fields of embedded structs.
func structFields(st reflect.Type) map[string][]int {
	fields := make(map[string][]int)
	for _, f := range reflect.VisibleFields(st) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag := f.Tag.Get(StructTagName)
		if tag == "-" {
			continue
		}
		if _, taken := fields[f.Name]; !taken {
			fields[f.Name] = f.Index
		}
		if tag != StringValueEmpty {
			fields[tag] = f.Index
		}
	}
	return fields
}
