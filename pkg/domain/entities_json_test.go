package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWireFieldNames(t *testing.T) {
	parent := "c0"
	cases := []struct {
		name  string
		value any
		want  []string
	}{
		{"emission", GhgEmission{Period: "2024-01", Emissions: 1}, []string{`"yearMonth":"2024-01"`, `"emissions":1`}},
		{"emission without source", GhgEmission{Period: "2024-01"}, []string{`"yearMonth"`}},
		{"report", Report{ID: "p1", CompanyID: "c1"}, []string{`"resourceId":"c1"`, `"dateTime"`}},
		{"company", Company{ID: "c1", ParentCompanyID: &parent}, []string{`"parentCompanyId":"c0"`, `"subsidiaries":null`}},
		{"notification", Notification{ID: 3, IsRead: true, CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}, []string{`"id":3`, `"isRead":true`, `"createdAt":"2024-01-15T00:00:00Z"`}},
		{"user", User{ID: "u1", Role: RoleAdmin, Status: UserActive}, []string{`"role":"admin"`, `"status":"active"`}},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.value)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		for _, w := range tc.want {
			if !strings.Contains(string(data), w) {
				t.Errorf("%s: %s missing %s", tc.name, data, w)
			}
		}
	}
	if data, _ := json.Marshal(GhgEmission{Period: "2024-01"}); strings.Contains(string(data), "source") {
		t.Errorf("empty source should be omitted: %s", data)
	}
	if data, _ := json.Marshal(Company{ID: "c1"}); strings.Contains(string(data), "parentCompanyId") {
		t.Errorf("nil parent should be omitted: %s", data)
	}
}
