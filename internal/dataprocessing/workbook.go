package dataprocessing

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "hdicli/internal/errors"
)

// readWorkbookRows returns the cell text of the first sheet of an Excel workbook
func readWorkbookRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", filePath), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", filePath), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	return rows, nil
}
