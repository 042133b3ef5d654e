package reflect

import colorful "github.com/lucasb-eyer/go-colorful"

// UIElement is the closed set of editor widget descriptors a field's Custom
// metadata may hold. It is modelled as an interface implemented only by the
// types in this file rather than an open-ended metadata bag, so adding a new
// widget kind is a deliberate, visible change instead of a stringly-typed one.
type UIElement interface {
	isUIElement()
}

// FloatElement describes a float field edited with a bounded slider.
type FloatElement struct {
	Min, Max, Speed float32
}

func (FloatElement) isUIElement() {}

// IntElement describes an integer field edited with a bounded slider.
type IntElement struct {
	Min, Max int
}

func (IntElement) isUIElement() {}

// EditTextElement describes a free-form text field, optionally multiline.
type EditTextElement struct {
	Placeholder string
	Multiline   bool
}

func (EditTextElement) isUIElement() {}

// EnumElement describes a field restricted to one of a fixed label set.
type EnumElement struct {
	Labels []string
}

func (EnumElement) isUIElement() {}

// ColorElement describes a colour-picker field. The value type is
// go-colorful's Color rather than a hand-rolled RGB struct, so the picker
// gets correct HSL/Lab conversions and gamma-correct blending for free.
type ColorElement struct {
	Default colorful.Color
}

func (ColorElement) isUIElement() {}

// Vector2Element, Vector3Element and Vector4Element describe fixed-size
// float vector fields edited as a row of per-component sliders sharing one
// range.
type Vector2Element struct{ Min, Max float32 }

func (Vector2Element) isUIElement() {}

type Vector3Element struct{ Min, Max float32 }

func (Vector3Element) isUIElement() {}

type Vector4Element struct{ Min, Max float32 }

func (Vector4Element) isUIElement() {}

// AssetRefElement describes a field that references an asset by path,
// restricted to the given extensions (e.g. []string{".png", ".jpg"}).
type AssetRefElement struct {
	Extensions []string
}

func (AssetRefElement) isUIElement() {}
