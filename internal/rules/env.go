package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Registry manages the CEL environment used for balance expectations.
type Registry struct {
	env *cel.Env
}

// NewRegistry initializes the CEL environment with batch metrics and helper functions.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		// Batch metrics
		cel.Variable("win_rate", cel.DoubleType),
		cel.Variable("r", cel.DoubleType),
		cel.Variable("pc_mean_run", cel.DoubleType),
		cel.Variable("npc_mean_run", cel.DoubleType),
		cel.Variable("offset", cel.DoubleType),
		cel.Variable("ratio", cel.DoubleType),
		cel.Variable("battles", cel.IntType),
		cel.Variable("pc_count", cel.IntType),
		cel.Variable("npc_count", cel.IntType),

		// win_rate > 50 compares a double with an int literal
		cel.CrossTypeNumericComparisons(true),

		// within(x, lo, hi) checks lo <= x <= hi for any mix of ints and doubles
		cel.Function("within",
			cel.Overload("within_num_num_num",
				[]*cel.Type{cel.DynType, cel.DynType, cel.DynType},
				cel.BoolType,
				cel.FunctionBinding(func(args ...ref.Val) ref.Val {
					var v [3]float64
					for i, arg := range args {
						f, ok := number(arg)
						if !ok {
							return types.NewErr("within: argument %d is %s, not a number", i+1, arg.Type().TypeName())
						}
						v[i] = f
					}
					return types.Bool(v[0] >= v[1] && v[0] <= v[2])
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

func number(v ref.Val) (float64, bool) {
	switch n := v.(type) {
	case types.Double:
		return float64(n), true
	case types.Int:
		return float64(n), true
	case types.Uint:
		return float64(n), true
	}
	return 0, false
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// Check evaluates an expression that must produce a boolean.
func (r *Registry) Check(expression string, context map[string]any) (bool, error) {
	out, err := r.Eval(expression, context)
	if err != nil {
		return false, err
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("expectation %q returned %T, not bool", expression, out)
	}
	return ok, nil
}
