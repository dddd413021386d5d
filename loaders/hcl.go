package loaders

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// HCL loads attribute-only HCL documents. Nested values are written as object
// expressions (db = { host = "x" }); blocks are rejected.
var HCL = Ref{Name: "hcl", Builtin: true, Loader: Func(loadHCL)}

func loadHCL(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}

	file, diags := hclparse.NewParser().ParseHCL(content, fileName)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse HCL file %s: %s", fileName, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse HCL file %s: %s", fileName, diags.Error())
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluate %s in HCL file %s: %s", name, fileName, diags.Error())
		}
		converted, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("convert %s in HCL file %s: %w", name, fileName, err)
		}
		out[name] = converted
	}
	return out, nil
}

// ctyToGo converts a cty value into plain Go values (string, bool, int64,
// float64, []any, map[string]any).
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return val.AsString(), nil
	case ty.Equals(cty.Bool):
		return val.True(), nil
	case ty.Equals(cty.Number):
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			converted, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = converted
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0)
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			converted, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
