package controllers

import (
	"fmt"
	"time"

	"buildflow-backend/database"
	"buildflow-backend/services"
	"buildflow-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" must be a YYYY-MM-DD date")
	}
	return &t, nil
}

// GET /api/client/:id/statement?from=YYYY-MM-DD&to=YYYY-MM-DD
func GetClientStatement(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}
	st, err := services.NewStatementService(database.DB).ForClient(c.Params("id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(st)
}

// cell names a spreadsheet coordinate. The coordinates used here are static
// and always in range, so the conversion cannot fail.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// GET /api/client/:id/statement/export
// Renders the statement as a spreadsheet.
func ExportClientStatement(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}
	st, err := services.NewStatementService(database.DB).ForClient(c.Params("id"), from, to)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Statement for %s (%s)", st.ClientName, st.ClientNumber))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period %s to %s", st.From.Format("2006-01-02"), st.To.Format("2006-01-02")))

	headers := []string{"Date", "Type", "Number", "Description", "Debit", "Credit", "Balance"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(i+1, 4), h)
	}
	for row, e := range st.Entries {
		values := []any{
			e.Date.Format("2006-01-02"),
			e.DocType,
			e.Number,
			e.Description,
			utils.Round2(e.Debit),
			utils.Round2(e.Credit),
			utils.Round2(e.Balance),
		}
		for col, v := range values {
			f.SetCellValue(sheet, cell(col+1, row+5), v)
		}
	}
	f.SetCellValue(sheet, cell(7, len(st.Entries)+6), utils.Round2(st.ClosingBalance))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("statement-%s.xlsx", st.ClientNumber)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
