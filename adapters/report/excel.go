package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"godrift/app"
)

// resultSheet is the sheet drift records land on. Kept at the excelize
// default so downstream tooling reading Sheet1 keeps working.
const resultSheet = "Sheet1"

// WriteXLSX writes a suite result to an Excel workbook, one record per
// row with the frozen ResultRecord column set.
func WriteXLSX(path string, result *app.SuiteResult) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []interface{}{
		"feature_name", "feature_type",
		"control_mean", "treatment_mean", "control_std", "treatment_std",
		"test_name", "p_value", "statistic", "conclusion", "test_datetime",
	}
	if err := f.SetSheetRow(resultSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range result.Records {
		var pValue interface{} = "-"
		if r.HasPValue() {
			pValue = r.PValue
		}
		row := []interface{}{
			r.FeatureName, string(r.FeatureType),
			r.ControlMean, r.TreatmentMean, r.ControlStd, r.TreatmentStd,
			r.TestName, pValue, r.Statistic, string(r.Conclusion), r.CreatedAt.String(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(resultSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
