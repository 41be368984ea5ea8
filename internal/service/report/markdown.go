package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Markdown writes the report of an unfiltered view as Markdown.
func Markdown(w io.Writer, ds models.DatasetSummary, view *models.FilteredView) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Ride report: %s\n\n", escape(ds.Name))
	fmt.Fprintf(&b, "- Rows: %s\n", humanize.Comma(int64(ds.Rows)))
	fmt.Fprintf(&b, "- Format: %s\n", ds.Format)
	fmt.Fprintf(&b, "- Size: %s\n", humanize.Bytes(uint64(max(ds.Size, 0))))
	fmt.Fprintf(&b, "- Fingerprint: `%s`\n", ds.Fingerprint)
	if !view.Selection.From.IsZero() {
		fmt.Fprintf(&b, "- Dates: %s to %s\n", view.Selection.From.Format(types.DateLayout), view.Selection.To.Format(types.DateLayout))
	}

	b.WriteString("\n## Metrics\n\n")
	writeTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Total Rides", view.Display.TotalRides},
		{"Total Revenue", view.Display.TotalRevenue},
		{"Average Distance", view.Display.AvgDistance},
		{"Total Distance", view.Display.TotalDistance},
		{"Cancellation Rate", view.Display.CancelRate},
	})

	if len(view.Notices) > 0 {
		b.WriteString("\n## Notices\n\n")
		for _, n := range view.Notices {
			fmt.Fprintf(&b, "- **%s** %s\n", n.Level, escape(n.Message))
		}
	}

	agg := view.Aggregates

	section(&b, "Daily Revenue", []string{"Date", "Revenue"}, rows(agg.DailyRevenue, func(p models.DateValue) []string {
		return []string{p.Date, money(p.Value)}
	}))
	section(&b, "Booking Status", []string{"Status", "Rides"}, labelCounts(agg.StatusCounts))
	section(&b, "Revenue by Payment Method", []string{"Payment Method", "Revenue"}, rows(agg.PaymentRevenue, func(p models.LabelValue) []string {
		return []string{p.Label, money(p.Value)}
	}))
	if agg.CustomerCancellations != nil {
		section(&b, "Reasons for Cancellation by Customers", []string{"Reason", "Rides"}, labelCounts(agg.CustomerCancellations))
	}
	if agg.DriverCancellations != nil {
		section(&b, "Reasons for Cancellation by Drivers", []string{"Reason", "Rides"}, labelCounts(agg.DriverCancellations))
	}
	section(&b, "Ride Volume Over Time", []string{"Date", "Rides"}, rows(agg.DailyVolume, func(p models.DateCount) []string {
		return []string{p.Date, humanize.Comma(int64(p.Count))}
	}))
	if agg.Hourly != nil {
		section(&b, "Rides by Hour", []string{"Hour", "Rides"}, rows(agg.Hourly, func(p models.HourCount) []string {
			return []string{fmt.Sprintf("%02d:00", p.Hour), humanize.Comma(int64(p.Count))}
		}))
	}
	section(&b, "Ratings by Vehicle Type", []string{"Vehicle Type", "Rating", "Average"}, rows(agg.Ratings, func(p models.RatingPoint) []string {
		return []string{p.VehicleType, p.RatingType, rating(p.Average)}
	}))

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string, header []string, body [][]string) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	if len(body) == 0 {
		b.WriteString("_No data._\n")
		return
	}
	writeTable(b, header, body)
}

func writeTable(b *strings.Builder, header []string, body [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, row := range body {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escape(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func rows[T any](items []T, cells func(T) []string) [][]string {
	out := make([][]string, 0, len(items))
	for _, it := range items {
		out = append(out, cells(it))
	}
	return out
}

func labelCounts(counts []models.LabelCount) [][]string {
	return rows(counts, func(c models.LabelCount) []string {
		return []string{c.Label, humanize.Comma(int64(c.Count))}
	})
}

func money(v float64) string {
	return "₹" + humanize.CommafWithDigits(v, 2)
}

func rating(avg *float64) string {
	if avg == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *avg)
}

// escape keeps cell text from breaking the table layout.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
