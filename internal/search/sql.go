package search

import (
	"strconv"
	"strings"

	"github.com/mvaleed/personnel/internal/domain"
)

// Aliases: e = employees, d = departments, sc = the selected certification.
const listSelect = `
		SELECT e.id, e.full_name, e.birth_date, d.name, e.email, e.phone,
			   sc.id, sc.certification_id, sc.certification_name, sc.level,
			   sc.start_date, sc.end_date, sc.score
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		LEFT JOIN LATERAL (
			SELECT ec.id, ec.certification_id, c.name AS certification_name, c.level,
				   ec.start_date, ec.end_date, ec.score
			FROM employee_certifications ec
			JOIN certifications c ON c.id = ec.certification_id
			WHERE ec.employee_id = e.id
			ORDER BY ` + SelectionOrderSQL + `
			LIMIT 1
		) sc ON TRUE`

const countSelect = `
		SELECT COUNT(*)
		FROM employees e
		JOIN departments d ON d.id = e.department_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// args collects positional parameters.
type args struct {
	values []any
}

func (a *args) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func renderWhere(f Filter, a *args) string {
	var conds []string
	if f.Name != "" {
		conds = append(conds, `e.full_name LIKE `+a.add("%"+likeEscaper.Replace(f.Name)+"%")+` ESCAPE '\'`)
	}
	if f.DepartmentID != 0 {
		conds = append(conds, "e.department_id = "+a.add(f.DepartmentID))
	}
	if len(conds) == 0 {
		return ""
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND ")
}

func renderOrderKey(k OrderKey) string {
	dir := string(k.Direction)
	// NULL compares lowest.
	nulls := " NULLS FIRST"
	if k.Direction == domain.SortDesc {
		nulls = " NULLS LAST"
	}
	switch k.Field {
	case FieldName:
		return `e.full_name COLLATE "C" ` + dir
	case FieldCertPresent:
		return "(sc.level IS NULL) " + dir
	case FieldCertLevel:
		return "sc.level " + dir + nulls
	case FieldCertEndDate:
		return "sc.end_date " + dir + nulls
	default:
		return "e.id " + dir
	}
}

// RenderSQL renders the page query of p for PostgreSQL. Selected columns
// match the order scanned into domain.EmployeeRow by the postgres store.
func RenderSQL(p Plan) (string, []any) {
	a := &args{}
	var b strings.Builder
	b.WriteString(listSelect)
	b.WriteString(renderWhere(p.Filter, a))

	terms := make([]string, len(p.Order))
	for i, k := range p.Order {
		terms[i] = renderOrderKey(k)
	}
	b.WriteString("\n\t\tORDER BY " + strings.Join(terms, ", "))
	b.WriteString("\n\t\tLIMIT " + a.add(p.Limit) + " OFFSET " + a.add(p.Offset))

	return b.String(), a.values
}

// RenderCountSQL renders the total-count query for f. It has no ordering,
// no window and no certification join.
func RenderCountSQL(f Filter) (string, []any) {
	a := &args{}
	return countSelect + renderWhere(f, a), a.values
}
