package domain

// CloneCompany deep-copies a company so callers never alias store-owned slices.
func CloneCompany(c Company) Company {
	cp := c
	if c.ParentCompanyID != nil {
		parent := *c.ParentCompanyID
		cp.ParentCompanyID = &parent
	}
	cp.Subsidiaries = cloneSubsidiaries(c.Subsidiaries)
	cp.Emissions = cloneEmissions(c.Emissions)
	return cp
}

// CloneSubsidiary deep-copies a subsidiary and its emissions.
func CloneSubsidiary(s Subsidiary) Subsidiary {
	cp := s
	cp.Emissions = cloneEmissions(s.Emissions)
	return cp
}

// CloneCompanies deep-copies a company slice. A nil input yields an empty slice.
func CloneCompanies(in []Company) []Company {
	out := make([]Company, len(in))
	for i, c := range in {
		out[i] = CloneCompany(c)
	}
	return out
}

func cloneSubsidiaries(in []Subsidiary) []Subsidiary {
	if in == nil {
		return nil
	}
	out := make([]Subsidiary, len(in))
	for i, s := range in {
		out[i] = CloneSubsidiary(s)
	}
	return out
}

func cloneEmissions(in []GhgEmission) []GhgEmission {
	if in == nil {
		return nil
	}
	return append([]GhgEmission(nil), in...)
}
