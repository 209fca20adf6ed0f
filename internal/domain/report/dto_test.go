package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlySummaryRequest_Validate(t *testing.T) {
	assert.NoError(t, (&MonthlySummaryRequest{Month: 2, Year: 2024}).Validate())
	assert.ErrorContains(t, (&MonthlySummaryRequest{Month: 13, Year: 2024}).Validate(), "month")
	assert.ErrorContains(t, (&MonthlySummaryRequest{Month: 1, Year: 0}).Validate(), "year")
}

func TestExportMonthlySummaryRequest_Validate(t *testing.T) {
	ok := ExportMonthlySummaryRequest{MonthlySummaryRequest: MonthlySummaryRequest{Month: 1, Year: 2024}, Format: FormatXLSX}
	assert.NoError(t, ok.Validate())

	bad := ExportMonthlySummaryRequest{MonthlySummaryRequest: MonthlySummaryRequest{Month: 0, Year: 2024}, Format: "pdf"}
	err := bad.Validate()
	assert.ErrorContains(t, err, "month")
	assert.ErrorContains(t, err, "format")
}
