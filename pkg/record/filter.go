package record

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over a user record.
//
// Expressions see the fields id, fullName, email and phone, e.g.
//
//	email endsWith "@example.com" && fullName contains "Ana"
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles a filter expression.
func CompileFilter(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(filterEnv(UserRecord{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

// String returns the filter source.
func (f *Filter) String() string {
	return f.source
}

// Match reports whether the record satisfies the filter.
func (f *Filter) Match(rec UserRecord) (bool, error) {
	out, err := expr.Run(f.program, filterEnv(rec))
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.source, err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Apply returns the records matching the filter, in order.
func (f *Filter) Apply(records []UserRecord) ([]UserRecord, error) {
	out := make([]UserRecord, 0, len(records))
	for _, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func filterEnv(rec UserRecord) map[string]interface{} {
	return map[string]interface{}{
		FieldID:       rec.ID.String(),
		FieldFullName: rec.FullName,
		FieldEmail:    rec.Email,
		FieldPhone:    rec.Phone,
	}
}
