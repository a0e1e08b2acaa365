// Package export writes monthly archives as CSV.
//
// The YNAB format can be imported into YNAB. The report format is meant
// for reading and formats amounts for a locale.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format is a CSV layout.
type Format string

const (
	FormatYNAB   Format = "ynab"
	FormatReport Format = "report"
)

var ErrFormatUnknown = fmt.Errorf("%w: the export format must be one of %q, %q", models.ErrValidation, FormatYNAB, FormatReport)

// ParseFormat returns the format for s. The empty string selects the YNAB format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatYNAB:
		return FormatYNAB, nil
	case FormatReport:
		return FormatReport, nil
	}
	return "", ErrFormatUnknown
}

// Filename is the suggested download name for an export.
func Filename(month types.Month, f Format) string {
	return fmt.Sprintf("goals-wallet-%s-%s.csv", month, f)
}

// Write writes the archive in the given format.
func Write(w io.Writer, archive models.MonthlyArchive, f Format, tag language.Tag) error {
	switch f {
	case FormatYNAB:
		return YNAB(w, archive)
	case FormatReport:
		return Report(w, archive, tag)
	}
	return ErrFormatUnknown
}

// row is a record of either kind, in the order it is exported.
type row struct {
	date        string
	kind        string
	name        string
	description string
	amount      decimal.Decimal
	inflow      bool
}

func rows(archive models.MonthlyArchive) []row {
	out := make([]row, 0, len(archive.Expenses)+len(archive.Income))
	for _, e := range archive.Expenses {
		out = append(out, row{date: e.Date, kind: "expense", name: e.Category, description: e.Description, amount: e.Amount})
	}
	for _, i := range archive.Income {
		out = append(out, row{date: i.Date, kind: "income", name: i.Source, description: i.Description, amount: i.Amount, inflow: true})
	}

	slices.SortStableFunc(out, func(a, b row) int {
		switch {
		case a.date < b.date:
			return -1
		case a.date > b.date:
			return 1
		}
		return 0
	})
	return out
}

// YNAB writes the archive in the YNAB import format: Date, Payee, Memo, Outflow, Inflow.
func YNAB(w io.Writer, archive models.MonthlyArchive) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Date", "Payee", "Memo", "Outflow", "Inflow"}); err != nil {
		return err
	}

	for _, r := range rows(archive) {
		date, err := time.Parse(types.DateLayout, r.date)
		if err != nil {
			return fmt.Errorf("record dated %q: %w", r.date, err)
		}

		record := []string{date.Format("01/02/2006"), r.name, r.description, "", ""}
		if r.inflow {
			record[4] = r.amount.StringFixed(2)
		} else {
			record[3] = r.amount.StringFixed(2)
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Report writes every record followed by the archive totals. Amounts are formatted for the locale.
func Report(w io.Writer, archive models.MonthlyArchive, tag language.Tag) error {
	p := message.NewPrinter(tag)
	format := func(d decimal.Decimal) string {
		return p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
	}

	writer := csv.NewWriter(w)
	records := [][]string{{"Type", "Date", "Category", "Description", "Amount"}}
	for _, r := range rows(archive) {
		records = append(records, []string{r.kind, r.date, r.name, r.description, format(r.amount)})
	}

	records = append(records,
		[]string{},
		[]string{"Total spent", "", "", "", format(archive.TotalSpent)},
		[]string{"Total income", "", "", "", format(archive.TotalIncome)},
		[]string{"Net", "", "", "", format(archive.NetAmount)},
	)

	err := writer.WriteAll(records)
	if err != nil {
		return errors.Join(fmt.Errorf("could not write report for %s", archive.Month), err)
	}
	return nil
}
