package suggestion

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/vidahq/suggestions-backend/internal/domain"
)

// conditionsFor translates a SuggestionFilter into a conjunction of SQL
// predicates. Nil fields contribute nothing.
func conditionsFor(f domain.SuggestionFilter) sq.And {
	conds := sq.And{}
	if f.Status != nil {
		conds = append(conds, sq.Eq{"s.status": *f.Status})
	}
	if f.Type != nil {
		conds = append(conds, sq.Eq{"s.type": *f.Type})
	}
	if f.Priority != nil {
		conds = append(conds, sq.Eq{"s.priority": *f.Priority})
	}
	if f.Source != nil {
		conds = append(conds, sq.Eq{"s.source": *f.Source})
	}
	if f.EmployeeID != nil {
		conds = append(conds, sq.Eq{"s.employee_id": *f.EmployeeID})
	}
	return conds
}
