// Package seed holds the demonstration dataset loaded into a fresh store.
package seed

import (
	"time"

	"emissiondesk/internal/infra/persistence/memory"
	"emissiondesk/pkg/domain"
)

// Snapshot returns a fresh copy of the seed dataset.
func Snapshot() memory.Snapshot {
	return memory.Snapshot{
		Countries:     Countries(),
		Companies:     Companies(),
		Reports:       Reports(),
		Notifications: Notifications(),
		Users:         Users(),
	}
}

// NewStore returns a store pre-loaded with the seed dataset.
func NewStore() *memory.Store {
	return memory.NewSeededStore(Snapshot())
}

// Countries returns the seeded countries.
func Countries() []domain.Country {
	return []domain.Country{
		{ID: "kr", Name: "South Korea", Code: "KR", Region: "Asia", Population: 51_780_000, GDP: 1810, Emissions: 659},
		{ID: "us", Name: "United States", Code: "US", Region: "North America", Population: 331_900_000, GDP: 25400, Emissions: 4713},
		{ID: "cn", Name: "China", Code: "CN", Region: "Asia", Population: 1_439_000_000, GDP: 17900, Emissions: 10668},
		{ID: "jp", Name: "Japan", Code: "JP", Region: "Asia", Population: 125_800_000, GDP: 4230, Emissions: 1038},
		{ID: "de", Name: "Germany", Code: "DE", Region: "Europe", Population: 83_200_000, GDP: 4220, Emissions: 644},
		{ID: "gb", Name: "United Kingdom", Code: "GB", Region: "Europe", Population: 67_000_000, GDP: 3100, Emissions: 322},
		{ID: "fr", Name: "France", Code: "FR", Region: "Europe", Population: 67_800_000, GDP: 2930, Emissions: 302},
		{ID: "in", Name: "India", Code: "IN", Region: "Asia", Population: 1_380_000_000, GDP: 3390, Emissions: 2651},
		{ID: "br", Name: "Brazil", Code: "BR", Region: "South America", Population: 213_000_000, GDP: 1600, Emissions: 466},
		{ID: "ca", Name: "Canada", Code: "CA", Region: "North America", Population: 38_000_000, GDP: 2000, Emissions: 536},
		{ID: "au", Name: "Australia", Code: "AU", Region: "Oceania", Population: 25_600_000, GDP: 1550, Emissions: 386},
		{ID: "it", Name: "Italy", Code: "IT", Region: "Europe", Population: 59_000_000, GDP: 2100, Emissions: 303},
	}
}

func quarter(jan, feb, mar float64) []domain.GhgEmission {
	return []domain.GhgEmission{
		{Period: "2024-01", Emissions: jan},
		{Period: "2024-02", Emissions: feb},
		{Period: "2024-03", Emissions: mar},
	}
}

// Companies returns the seeded companies with their subsidiaries.
func Companies() []domain.Company {
	return []domain.Company{
		{
			ID: "c1", Name: "Samsung Electronics", Country: "KR", BusinessType: "Manufacturing", Industry: "Electronics",
			EstablishedYear: 1969, EmployeeCount: 267_937, Revenue: 2_790_000,
			Subsidiaries: []domain.Subsidiary{
				{ID: "s1", Name: "Samsung Display", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 84.8, EstablishedYear: 2012, EmployeeCount: 25_000, Emissions: quarter(45, 42, 48)},
				{ID: "s2", Name: "Samsung SDI", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 20.7, EstablishedYear: 1970, EmployeeCount: 30_000, Emissions: quarter(35, 38, 32)},
			},
			Emissions: quarter(120, 110, 95),
		},
		{
			ID: "c2", Name: "LG Electronics", Country: "KR", BusinessType: "Manufacturing", Industry: "Electronics",
			EstablishedYear: 1958, EmployeeCount: 51_000, Revenue: 742_000,
			Subsidiaries: []domain.Subsidiary{
				{ID: "s3", Name: "LG Display", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 81.9, EstablishedYear: 1999, EmployeeCount: 20_000, Emissions: quarter(28, 25, 30)},
				// separately listed
				{ID: "s4", Name: "LG Chem", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 0, EstablishedYear: 1947, EmployeeCount: 18_000, Emissions: quarter(55, 58, 52)},
			},
			Emissions: quarter(80, 105, 120),
		},
		{
			ID: "c3", Name: "Hyundai Motor", Country: "KR", BusinessType: "Manufacturing", Industry: "Automotive",
			EstablishedYear: 1967, EmployeeCount: 120_000, Revenue: 1_180_000,
			Subsidiaries: []domain.Subsidiary{
				{ID: "s5", Name: "Kia", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 33.9, EstablishedYear: 1944, EmployeeCount: 52_000, Emissions: quarter(65, 68, 62)},
				{ID: "s6", Name: "Hyundai Mobis", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 20.8, EstablishedYear: 1977, EmployeeCount: 30_000, Emissions: quarter(40, 42, 38)},
			},
			Emissions: quarter(150, 145, 160),
		},
		{
			ID: "c4", Name: "SK hynix", Country: "KR", BusinessType: "Manufacturing", Industry: "Semiconductors",
			EstablishedYear: 1983, EmployeeCount: 35_000, Revenue: 440_000,
			Subsidiaries: []domain.Subsidiary{
				{ID: "s7", Name: "SK Siltron", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 100, EstablishedYear: 1989, EmployeeCount: 2_000, Emissions: quarter(15, 18, 16)},
			},
			Emissions: quarter(90, 95, 88),
		},
		{
			ID: "c5", Name: "POSCO", Country: "KR", BusinessType: "Manufacturing", Industry: "Steel",
			EstablishedYear: 1968, EmployeeCount: 40_000, Revenue: 760_000,
			Subsidiaries: []domain.Subsidiary{
				{ID: "s8", Name: "POSCO Holdings", Country: "KR", BusinessType: "Holding company", OwnershipPercentage: 100, EstablishedYear: 2000, EmployeeCount: 500, Emissions: quarter(5, 5, 5)},
				{ID: "s9", Name: "POSCO Chemical", Country: "KR", BusinessType: "Manufacturing", OwnershipPercentage: 100, EstablishedYear: 1979, EmployeeCount: 8_000, Emissions: quarter(25, 28, 26)},
			},
			Emissions: quarter(200, 195, 210),
		},
	}
}

// Reports returns the seeded reports.
func Reports() []domain.Report {
	return []domain.Report{
		{ID: "p1", Title: "Sustainability Report", CompanyID: "c1", DateTime: "2024-02", Content: "Quarterly CO2 update"},
	}
}

func at(stamp string) time.Time {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		panic(err)
	}
	return t
}

func day(stamp string) time.Time {
	t, err := time.Parse("2006-01-02", stamp)
	if err != nil {
		panic(err)
	}
	return t
}

// Notifications returns the seeded notifications.
func Notifications() []domain.Notification {
	return []domain.Notification{
		{ID: 1, Title: "Emission threshold exceeded", Message: "CO2 emissions for China (CN) exceeded the configured threshold.", Type: domain.NotificationWarning, CreatedAt: at("2024-01-15T10:30:00Z"), Priority: domain.PriorityHigh, Category: domain.CategoryEmission},
		{ID: 2, Title: "New report submitted", Message: "Samsung Electronics submitted its 2024 sustainability report.", Type: domain.NotificationInfo, CreatedAt: at("2024-01-15T09:15:00Z"), Priority: domain.PriorityMedium, Category: domain.CategoryReport},
		{ID: 3, Title: "System update complete", Message: "The emissions monitoring system was updated successfully.", Type: domain.NotificationSuccess, IsRead: true, CreatedAt: at("2024-01-14T16:45:00Z"), Priority: domain.PriorityLow, Category: domain.CategorySystem},
		{ID: 4, Title: "Data synchronization error", Message: "An error occurred while synchronizing some country data.", Type: domain.NotificationError, IsRead: true, CreatedAt: at("2024-01-14T14:20:00Z"), Priority: domain.PriorityHigh, Category: domain.CategorySystem},
		{ID: 5, Title: "New company registered", Message: "LG Electronics was registered in the system.", Type: domain.NotificationInfo, IsRead: true, CreatedAt: at("2024-01-14T11:30:00Z"), Priority: domain.PriorityMedium, Category: domain.CategoryCompany},
		{ID: 6, Title: "Monthly report generated", Message: "The January 2024 monthly emissions report was generated.", Type: domain.NotificationSuccess, IsRead: true, CreatedAt: at("2024-01-13T18:00:00Z"), Priority: domain.PriorityLow, Category: domain.CategoryReport},
	}
}

// Users returns the seeded users.
func Users() []domain.User {
	return []domain.User{
		{ID: "u1", Name: "Kim Chulsoo", Email: "kim@example.com", Role: domain.RoleAdmin, Company: "Acme Corp", Country: "KR", Status: domain.UserActive, LastLogin: day("2024-01-15"), JoinDate: day("2023-06-01")},
		{ID: "u2", Name: "Lee Younghee", Email: "lee@example.com", Role: domain.RoleUser, Company: "Globex", Country: "DE", Status: domain.UserActive, LastLogin: day("2024-01-14"), JoinDate: day("2023-08-15")},
		{ID: "u3", Name: "John Smith", Email: "john@example.com", Role: domain.RoleUser, Company: "Acme Corp", Country: "US", Status: domain.UserInactive, LastLogin: day("2024-01-10"), JoinDate: day("2023-09-20")},
		{ID: "u4", Name: "Maria Garcia", Email: "maria@example.com", Role: domain.RoleAuditor, Company: "Globex", Country: "ES", Status: domain.UserActive, LastLogin: day("2024-01-15"), JoinDate: day("2023-11-05")},
		{ID: "u5", Name: "Tanaka Taro", Email: "tanaka@example.com", Role: domain.RoleUser, Company: "TechCorp", Country: "JP", Status: domain.UserActive, LastLogin: day("2024-01-13"), JoinDate: day("2023-12-01")},
	}
}
