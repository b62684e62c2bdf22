package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExportURLKeepsParameterOrder(t *testing.T) {
	locator, ok := BuildExportURL("http://localhost:8000/api", ExportRequest{
		StartDate: "20240101",
		EndDate:   "20240105",
		Investors: []Investor{InvestorForeigner, InvestorIndividual},
	})

	assert.True(t, ok)
	assert.Equal(t,
		"http://localhost:8000/api/download?start_date=20240101&end_date=20240105&investors=foreigner&investors=individual",
		locator)
}

func TestBuildExportURLAllInvestors(t *testing.T) {
	locator, ok := BuildExportURL("http://localhost:8000/api", ExportRequest{
		StartDate: "20240101",
		EndDate:   "20240131",
		Investors: AllInvestors,
	})

	assert.True(t, ok)
	assert.Equal(t,
		"http://localhost:8000/api/download?start_date=20240101&end_date=20240131"+
			"&investors=foreigner&investors=individual&investors=institution",
		locator)
}

func TestBuildExportURLMissingBoundaryDates(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"missing end", "20240101", ""},
		{"missing start", "", "20240105"},
		{"missing both", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locator, ok := BuildExportURL("http://localhost:8000/api", ExportRequest{
				StartDate: tt.start,
				EndDate:   tt.end,
				Investors: AllInvestors,
			})
			assert.False(t, ok)
			assert.Empty(t, locator)
		})
	}
}
