package rules

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/google/cel-go/cel"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL.
type RuleManager struct {
	env *cel.Env
}

// NewRuleManager inicializa o ambiente CEL com as variáveis expostas às
// condições de notificação.
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable("input", cel.DynType),  // Evento recebido
		cel.Variable("report", cel.DynType), // key, content, size
		cel.Variable("stats", cel.DynType),  // Estatísticas agregadas (pode ser vazio)
		cel.Variable("env", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	return &RuleManager{env: env}, nil
}

// Rule é uma expressão booleana já compilada.
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile valida a expressão e gera o programa. Expressão vazia resulta em
// uma regra que sempre aprova.
func (rm *RuleManager) Compile(expression string) (*Rule, error) {
	if strings.TrimSpace(expression) == "" {
		return &Rule{}, nil
	}

	ast, issues := rm.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro compilação CEL '%s': %w", expression, issues.Err())
	}
	if t := ast.OutputType(); !reflect.DeepEqual(t, cel.BoolType) && !reflect.DeepEqual(t, cel.DynType) {
		return nil, fmt.Errorf("expressão CEL '%s' deve retornar bool, retorna %s", expression, t)
	}

	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro programa CEL: %w", err)
	}
	return &Rule{expr: expression, prg: prg}, nil
}

// String devolve a expressão original.
func (r *Rule) String() string {
	return r.expr
}

// EvaluateBool avalia a regra. Variáveis não informadas recebem mapas vazios.
func (r *Rule) EvaluateBool(vars map[string]any) (bool, error) {
	if r == nil || r.prg == nil {
		return true, nil // Expressão vazia = aprova
	}

	activation := map[string]any{
		"input":  map[string]any{},
		"report": map[string]any{},
		"stats":  map[string]any{},
		"env":    environ(),
	}
	for k, v := range vars {
		activation[k] = v
	}

	out, _, err := r.prg.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("erro execução CEL: %w", err)
	}

	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado não é booleano")
}

func environ() map[string]string {
	out := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
