package model

import (
	"encoding/json"
	"fmt"
)

// GlobalFilterKey is the reserved FilterModel key carrying the global/quick
// filter that applies across all columns.
const GlobalFilterKey = "__global"

// FilterValue is the closed set of filter variants a column filter can take.
// The concrete types are TextFilter, RangeFilter, SetFilter and BoolFilter.
type FilterValue interface {
	filterValue()
}

// TextOp is the comparison operator of a TextFilter.
type TextOp string

const (
	TextContains   TextOp = "contains"
	TextEquals     TextOp = "equals"
	TextStartsWith TextOp = "startsWith"
)

// TextFilter matches string cell values against Value using Op.
type TextFilter struct {
	Op    TextOp `json:"op"`
	Value string `json:"value"`
}

// RangeFilter matches numeric cell values against an inclusive interval.
// A nil bound is open.
type RangeFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SetFilter matches cell values against an explicit allow-list.
type SetFilter struct {
	Values []string `json:"values"`
}

// BoolFilter matches boolean cell values.
type BoolFilter struct {
	Value bool `json:"value"`
}

func (TextFilter) filterValue()  {}
func (RangeFilter) filterValue() {}
func (SetFilter) filterValue()   {}
func (BoolFilter) filterValue()  {}

// FilterModel maps column IDs to active filters.
type FilterModel map[string]FilterValue

const (
	filterKindText  = "text"
	filterKindRange = "range"
	filterKindSet   = "set"
	filterKindBool  = "bool"
)

type filterEnvelope struct {
	Kind string          `json:"type"`
	Body json.RawMessage `json:"filter"`
}

// MarshalJSON encodes each filter with a type tag so an untyped consumer can
// dispatch on it.
func (m FilterModel) MarshalJSON() ([]byte, error) {
	out := make(map[string]filterEnvelope, len(m))
	for col, fv := range m {
		var kind string
		switch fv.(type) {
		case TextFilter:
			kind = filterKindText
		case RangeFilter:
			kind = filterKindRange
		case SetFilter:
			kind = filterKindSet
		case BoolFilter:
			kind = filterKindBool
		default:
			return nil, fmt.Errorf("filter model: unknown filter type %T for column %q", fv, col)
		}
		body, err := json.Marshal(fv)
		if err != nil {
			return nil, err
		}
		out[col] = filterEnvelope{Kind: kind, Body: body}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes tagged filters back into their concrete variants.
func (m *FilterModel) UnmarshalJSON(data []byte) error {
	var raw map[string]filterEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fm := make(FilterModel, len(raw))
	for col, env := range raw {
		var fv FilterValue
		switch env.Kind {
		case filterKindText:
			var f TextFilter
			if err := json.Unmarshal(env.Body, &f); err != nil {
				return err
			}
			fv = f
		case filterKindRange:
			var f RangeFilter
			if err := json.Unmarshal(env.Body, &f); err != nil {
				return err
			}
			fv = f
		case filterKindSet:
			var f SetFilter
			if err := json.Unmarshal(env.Body, &f); err != nil {
				return err
			}
			fv = f
		case filterKindBool:
			var f BoolFilter
			if err := json.Unmarshal(env.Body, &f); err != nil {
				return err
			}
			fv = f
		default:
			return fmt.Errorf("filter model: unknown filter kind %q for column %q", env.Kind, col)
		}
		fm[col] = fv
	}
	*m = fm
	return nil
}

// Clone returns a shallow copy of the filter model. Filter variants are
// value types, so a shallow copy is sufficient for snapshotting.
func (m FilterModel) Clone() FilterModel {
	if m == nil {
		return nil
	}
	out := make(FilterModel, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
