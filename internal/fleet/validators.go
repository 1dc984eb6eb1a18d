package fleet

import (
	"fmt"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/validate"
)

// periodOrder rejects a settlement whose period ends before it starts. Both
// bounds must be in the same patch to be compared.
func periodOrder(f entity.Fields) validate.Result {
	start, ok := f["periodStart"].(string)
	if !ok || start == "" {
		return validate.OK()
	}
	end, ok := f["periodEnd"].(string)
	if !ok || end == "" {
		return validate.OK()
	}

	// DateLayout sorts lexicographically
	if end < start {
		return validate.Result{Errors: []string{"Period end must not be before period start"}}
	}
	return validate.OK()
}

// derived rejects any value for a field that is computed from another
// collection and never stored.
func derived(field, label string) validate.Func {
	reason := fmt.Sprintf("%s is derived and cannot be set", label)
	return func(f entity.Fields) validate.Result {
		if _, ok := f[field]; ok {
			return validate.Result{Errors: []string{reason}}
		}
		return validate.OK()
	}
}
