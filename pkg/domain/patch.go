package domain

import "time"

// CompanyPatch carries a partial company update. Nil fields are left as is;
// Subsidiaries and Emissions replace the stored lists wholesale when set.
type CompanyPatch struct {
	Name            *string
	Country         *string
	BusinessType    *string
	Industry        *string
	EstablishedYear *int
	EmployeeCount   *int
	Revenue         *float64
	ParentCompanyID *string
	Subsidiaries    *[]Subsidiary
	Emissions       *[]GhgEmission
}

// Apply returns a copy of c with the patch merged in.
func (p CompanyPatch) Apply(c Company) Company {
	out := CloneCompany(c)
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Country != nil {
		out.Country = *p.Country
	}
	if p.BusinessType != nil {
		out.BusinessType = *p.BusinessType
	}
	if p.Industry != nil {
		out.Industry = *p.Industry
	}
	if p.EstablishedYear != nil {
		out.EstablishedYear = *p.EstablishedYear
	}
	if p.EmployeeCount != nil {
		out.EmployeeCount = *p.EmployeeCount
	}
	if p.Revenue != nil {
		out.Revenue = *p.Revenue
	}
	if p.ParentCompanyID != nil {
		parent := *p.ParentCompanyID
		out.ParentCompanyID = &parent
	}
	if p.Subsidiaries != nil {
		out.Subsidiaries = cloneSubsidiaries(*p.Subsidiaries)
	}
	if p.Emissions != nil {
		out.Emissions = cloneEmissions(*p.Emissions)
	}
	return out
}

// UserPatch carries a partial user update. Nil fields are left as is.
type UserPatch struct {
	Name      *string
	Email     *string
	Role      *Role
	Company   *string
	Country   *string
	Status    *UserStatus
	LastLogin *time.Time
	JoinDate  *time.Time
}

// Apply returns a copy of u with the patch merged in.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.LastLogin != nil {
		u.LastLogin = *p.LastLogin
	}
	if p.JoinDate != nil {
		u.JoinDate = *p.JoinDate
	}
	return u
}

// Toggled flips active and inactive.
func (s UserStatus) Toggled() UserStatus {
	if s == UserActive {
		return UserInactive
	}
	return UserActive
}
