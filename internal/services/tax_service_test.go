package services

import (
	"math"
	"testing"

	"resto_pos_backend/internal/models"
)

func TestCalculateTaxes(t *testing.T) {
	subtotals := map[string]float64{
		"food":     100.00,
		"beverage": 50.00,
		"alcohol":  30.00,
	}

	tests := []struct {
		name         string
		rules        []models.TaxRule
		subtotals    map[string]float64
		wantLines    int
		wantTotalTax float64
	}{
		{
			name: "wildcard rule taxes the full subtotal",
			rules: []models.TaxRule{
				{ID: 1, Name: "GST", Rate: 10, Categories: []string{models.TaxCategoryAll}, IsActive: true},
			},
			subtotals:    subtotals,
			wantLines:    1,
			wantTotalTax: 18.00,
		},
		{
			name: "category rule taxes only its categories",
			rules: []models.TaxRule{
				{ID: 2, Name: "Liquor tax", Rate: 20, Categories: []string{"alcohol"}, IsActive: true},
			},
			subtotals:    subtotals,
			wantLines:    1,
			wantTotalTax: 6.00,
		},
		{
			name: "multiple rules stack per category",
			rules: []models.TaxRule{
				{ID: 1, Name: "GST", Rate: 10, Categories: []string{models.TaxCategoryAll}, IsActive: true},
				{ID: 2, Name: "Liquor tax", Rate: 20, Categories: []string{"alcohol"}, IsActive: true},
			},
			subtotals:    subtotals,
			wantLines:    2,
			wantTotalTax: 24.00,
		},
		{
			name: "inactive rules are skipped",
			rules: []models.TaxRule{
				{ID: 1, Name: "GST", Rate: 10, Categories: []string{models.TaxCategoryAll}, IsActive: false},
			},
			subtotals:    subtotals,
			wantLines:    0,
			wantTotalTax: 0,
		},
		{
			name: "rule with no matching base contributes nothing",
			rules: []models.TaxRule{
				{ID: 3, Name: "Tobacco tax", Rate: 50, Categories: []string{"tobacco"}, IsActive: true},
			},
			subtotals:    subtotals,
			wantLines:    0,
			wantTotalTax: 0,
		},
		{
			name: "amounts are rounded to cents",
			rules: []models.TaxRule{
				{ID: 1, Name: "GST", Rate: 7.5, Categories: []string{models.TaxCategoryAll}, IsActive: true},
			},
			subtotals:    map[string]float64{"food": 10.33},
			wantLines:    1,
			wantTotalTax: 0.77, // 10.33 * 0.075 = 0.77475
		},
		{
			name:         "no rules means no tax",
			rules:        nil,
			subtotals:    subtotals,
			wantLines:    0,
			wantTotalTax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := CalculateTaxes(tt.rules, tt.subtotals)
			if len(breakdown.Taxes) != tt.wantLines {
				t.Fatalf("got %d tax lines, want %d", len(breakdown.Taxes), tt.wantLines)
			}
			if breakdown.TotalTax != tt.wantTotalTax {
				t.Errorf("got total tax %v, want %v", breakdown.TotalTax, tt.wantTotalTax)
			}
		})
	}
}

func TestCalculateTaxesLineAmounts(t *testing.T) {
	rules := []models.TaxRule{
		{ID: 1, Name: "GST", Rate: 10, Categories: []string{models.TaxCategoryAll}, IsActive: true},
		{ID: 2, Name: "Service", Rate: 5, Categories: []string{"food"}, IsActive: true},
	}
	breakdown := CalculateTaxes(rules, map[string]float64{"food": 200, "beverage": 100})

	if len(breakdown.Taxes) != 2 {
		t.Fatalf("got %d tax lines, want 2", len(breakdown.Taxes))
	}
	if breakdown.Taxes[0].Amount != 30.00 {
		t.Errorf("GST line: got %v, want 30.00", breakdown.Taxes[0].Amount)
	}
	if breakdown.Taxes[1].Amount != 10.00 {
		t.Errorf("service line: got %v, want 10.00", breakdown.Taxes[1].Amount)
	}
	if breakdown.TotalTax != 40.00 {
		t.Errorf("total tax: got %v, want 40.00", breakdown.TotalTax)
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{1.004, 1.00},
		{0, 0},
		{99.999, 100.00},
		{-2.678, -2.68},
	}
	for _, tt := range tests {
		if got := roundCurrency(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("roundCurrency(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
