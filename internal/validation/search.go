package validation

import (
	"github.com/mvaleed/personnel/internal/domain"
)

// ValidateSearch converts a raw listing request into criteria. Checks run in
// order: department, the three sort directives, offset, limit.
func (p *Pipeline) ValidateSearch(req domain.SearchRequest) (domain.SearchCriteria, error) {
	return p.fields.SearchCriteria(req)
}

func (f *Fields) SearchCriteria(req domain.SearchRequest) (domain.SearchCriteria, error) {
	c := domain.NewSearchCriteria()
	c.Name = req.Name

	var err error
	if c.DepartmentID, err = f.PositiveID(req.DepartmentID, domain.FieldDepartment); err != nil {
		return c, err
	}
	if c.SortName, err = f.SortDirection(req.SortName, domain.FieldSortName); err != nil {
		return c, err
	}
	if c.SortCertLevel, err = f.SortDirection(req.SortCertLevel, domain.FieldSortCertLevel); err != nil {
		return c, err
	}
	if c.SortEndDate, err = f.SortDirection(req.SortEndDate, domain.FieldSortEndDate); err != nil {
		return c, err
	}
	if c.Offset, err = f.NonNegativeInt(req.Offset, domain.FieldOffset, 0); err != nil {
		return c, err
	}
	if c.Limit, err = f.NonNegativeInt(req.Limit, domain.FieldLimit, domain.DefaultSearchLimit); err != nil {
		return c, err
	}
	return c, nil
}
