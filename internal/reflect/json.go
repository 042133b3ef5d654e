package reflect

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// GetPath reads the value at dotted path (gjson syntax, e.g. "transform.x")
// out of a JSON document and boxes it as a MetaAny, without per-type
// marshal code -- an inspector or editor panel bridge to reflected
// components. Callers typically serialize a component instance to JSON
// once and then read several fields out of the same doc with GetPath.
func GetPath(doc []byte, path string) (MetaAny, bool) {
	result := gjson.GetBytes(doc, path)
	if !result.Exists() {
		return MetaAny{}, false
	}

	if v, ok := jsonResultAs(result); ok {
		return v, true
	}
	return NewAny(result.Value()), true
}

// SetPath writes value into doc at dotted path, returning the updated JSON
// document. It does not mutate a live Go instance; callers round-trip
// through their own instance<->JSON conversion the way an editor's
// property panel does.
func SetPath(doc []byte, path string, value any) ([]byte, error) {
	return sjson.SetBytes(doc, path, value)
}

// Pretty renders doc with indentation, backing a readable debug dump of a
// TypeNode tree or a component instance to the log.
func Pretty(doc []byte) []byte {
	return pretty.Pretty(doc)
}

func jsonResultAs(result gjson.Result) (MetaAny, bool) {
	switch result.Type {
	case gjson.Number:
		return NewAny(result.Num), true
	case gjson.String:
		return NewAny(result.Str), true
	case gjson.True, gjson.False:
		return NewAny(result.Bool()), true
	default:
		return MetaAny{}, false
	}
}
