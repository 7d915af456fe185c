// Package worksheet reads a batch of calculations from an HCL file.
//
// A worksheet holds labelled amount, alloy, interest and words blocks plus an
// optional locals block:
//
//	locals {
//	  rate = 7200
//	}
//
//	amount "ring" {
//	  weight     = 10
//	  purity     = karat(22)
//	  rate_24k   = local.rate
//	  misc_mode  = "percent"
//	  misc_value = 12
//	}
//
//	interest "loan" {
//	  principal = 100000
//	  rate      = 12
//	  start     = "2024-01-01"
//	  end       = today
//	}
//
// Expressions can use the today variable (YYYY-MM-DD), local.<name> values
// and the karat(k) function. Locals cannot reference each other.
package worksheet

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"gold-calc/core/amount"
	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "locals"},
		{Type: "amount", LabelNames: []string{"name"}},
		{Type: "alloy", LabelNames: []string{"name"}},
		{Type: "interest", LabelNames: []string{"name"}},
		{Type: "words", LabelNames: []string{"name"}},
	},
}

// AmountBlock is an amount calculation. Purity may be given directly or as
// karat; the rate as rate_24k or rate_22k.
type AmountBlock struct {
	Weight    float64  `hcl:"weight"`
	Purity    *float64 `hcl:"purity,optional"`
	Karat     *float64 `hcl:"karat,optional"`
	Rate24k   *float64 `hcl:"rate_24k,optional"`
	Rate22k   *float64 `hcl:"rate_22k,optional"`
	MiscMode  string   `hcl:"misc_mode,optional"`
	MiscValue float64  `hcl:"misc_value,optional"`
}

// AlloyBlock is an alloy adjustment
type AlloyBlock struct {
	Weight           float64  `hcl:"weight"`
	CurrentPurity    float64  `hcl:"current_purity"`
	TargetPurity     float64  `hcl:"target_purity"`
	AddedMetalPurity *float64 `hcl:"added_metal_purity,optional"`
}

// InterestBlock is an interest schedule; end defaults to today
type InterestBlock struct {
	Principal  float64 `hcl:"principal"`
	Rate       float64 `hcl:"rate"`
	RatePeriod string  `hcl:"rate_period,optional"`
	Type       string  `hcl:"type,optional"`
	Start      string  `hcl:"start"`
	End        string  `hcl:"end,optional"`
}

// WordsBlock spells out a value
type WordsBlock struct {
	Value float64 `hcl:"value"`
}

// Item is one decoded block, in file order
type Item struct {
	Name string
	Kind string
	Line int

	Amount   *AmountBlock
	Alloy    *AlloyBlock
	Interest *InterestBlock
	Words    *WordsBlock
}

// Worksheet is a parsed worksheet file
type Worksheet struct {
	// Path is the source file
	Path string

	// Today is the date bound to the today variable
	Today time.Time

	// Items are the calculation blocks in file order
	Items []Item
}

// ParseFile reads and decodes the worksheet at path
func ParseFile(path string, today time.Time) (*Worksheet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parsing("failed to read worksheet", err)
	}
	return Parse(src, path, today)
}

// Parse decodes worksheet source. filename is used in diagnostics only.
func Parse(src []byte, filename string, today time.Time) (*Worksheet, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid worksheet syntax", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid worksheet structure", diags)
	}

	today = types.Truncate(today)
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"today": cty.StringVal(today.Format(types.DateLayout)),
		},
		Functions: map[string]function.Function{
			"karat": karatFunc,
		},
	}

	locals := map[string]cty.Value{}
	for _, block := range content.Blocks.OfType("locals") {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, errors.Parsing("invalid locals block", diags)
		}
		for name, attr := range attrs {
			if _, dup := locals[name]; dup {
				return nil, errors.Parsing(fmt.Sprintf("local %q declared twice", name), nil)
			}
			val, diags := attr.Expr.Value(ctx)
			if diags.HasErrors() {
				return nil, errors.Parsing(fmt.Sprintf("invalid local %q", name), diags)
			}
			locals[name] = val
		}
	}
	ctx.Variables["local"] = cty.ObjectVal(locals)

	ws := &Worksheet{Path: filename, Today: today}
	seen := map[string]bool{}
	for _, block := range content.Blocks {
		if block.Type == "locals" {
			continue
		}
		name := block.Labels[0]
		key := block.Type + "." + name
		if seen[key] {
			return nil, errors.Parsing(fmt.Sprintf("%s %q declared twice (line %d)", block.Type, name, block.DefRange.Start.Line), nil)
		}
		seen[key] = true

		item := Item{Name: name, Kind: block.Type, Line: block.DefRange.Start.Line}
		var target interface{}
		switch block.Type {
		case "amount":
			item.Amount = &AmountBlock{}
			target = item.Amount
		case "alloy":
			item.Alloy = &AlloyBlock{}
			target = item.Alloy
		case "interest":
			item.Interest = &InterestBlock{}
			target = item.Interest
		case "words":
			item.Words = &WordsBlock{}
			target = item.Words
		}

		if diags := gohcl.DecodeBody(block.Body, ctx, target); diags.HasErrors() {
			return nil, errors.Parsing(fmt.Sprintf("invalid %s %q", block.Type, name), diags)
		}
		ws.Items = append(ws.Items, item)
	}

	return ws, nil
}

// karatFunc converts karats to a purity percentage inside expressions
var karatFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "karat", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		k, _ := args[0].AsBigFloat().Float64()
		if k < 0 || k > 24 {
			return cty.NilVal, fmt.Errorf("karat must be between 0 and 24, got %g", k)
		}
		return cty.NumberFloatVal(amount.PurityFromKarat(k)), nil
	},
})
