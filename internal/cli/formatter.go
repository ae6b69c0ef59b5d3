package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/services"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Bold(true)
)

// Formatter renders command output, coloured only when writing to a terminal
type Formatter struct {
	out        io.Writer
	color      bool
	dateFormat string
}

// NewFormatter creates a formatter for out using the display settings
func NewFormatter(out io.Writer, display config.DisplayConfig) *Formatter {
	dateFormat := display.DateFormat
	if dateFormat == "" {
		dateFormat = config.DefaultDisplayDateFormat
	}
	return &Formatter{
		out:        out,
		color:      colorEnabled(out, display.NoColor),
		dateFormat: dateFormat,
	}
}

// colorEnabled reports whether ANSI styling should be written to w.
// NO_COLOR follows https://no-color.org.
func colorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (f *Formatter) paint(style lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return style.Render(text)
}

// Println writes a plain line
func (f *Formatter) Println(format string, args ...interface{}) {
	fmt.Fprintf(f.out, format+"\n", args...)
}

// Success writes a confirmation line
func (f *Formatter) Success(format string, args ...interface{}) {
	fmt.Fprintln(f.out, f.paint(styleGreen, fmt.Sprintf(format, args...)))
}

// Header renders a section header with an underline
func (f *Formatter) Header(text string) {
	upper := strings.ToUpper(text)
	fmt.Fprintln(f.out, f.paint(styleHeader, upper))
	fmt.Fprintln(f.out, f.paint(styleDim, strings.Repeat("─", lipgloss.Width(upper))))
}

// Hours renders a signed hour count. Negative values are shown in red.
func (f *Formatter) Hours(hours float64) string {
	text := domain.FormatHours(hours)
	if hours < 0 {
		return f.paint(styleRed, text)
	}
	return text
}

// EntryHours renders an entry's hours, compensation in red
func (f *Formatter) EntryHours(entry domain.TimeEntry) string {
	text := domain.FormatHours(entry.TotalHours)
	if entry.Type == domain.EntryTypeCompensation {
		return f.paint(styleRed, text)
	}
	return text
}

// Status renders an approval status
func (f *Formatter) Status(status domain.EntryStatus) string {
	switch status {
	case domain.StatusApproved:
		return f.paint(styleGreen, string(status))
	case domain.StatusRejected:
		return f.paint(styleRed, string(status))
	default:
		return f.paint(styleYellow, string(status))
	}
}

// Date renders a calendar date with the configured layout
func (f *Formatter) Date(entry domain.TimeEntry) string {
	return entry.Date.Format(f.dateFormat)
}

// Entry prints the details of a single entry
func (f *Formatter) Entry(entry domain.TimeEntry) {
	rows := [][]string{
		{"ID", entry.ID},
		{"Date", f.Date(entry)},
		{"Activity", entry.Activity},
		{"Type", entry.Type.Label()},
		{"Time", entry.StartTime + " - " + entry.EndTime},
		{"Hours", f.EntryHours(entry)},
		{"Status", f.Status(entry.Status)},
	}
	for _, row := range rows {
		fmt.Fprintf(f.out, "%s %s\n", f.paint(styleDim, fmt.Sprintf("%-9s", row[0]+":")), row[1])
	}
}

// EntryTable prints entries one per row
func (f *Formatter) EntryTable(entries []domain.TimeEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(f.out, f.paint(styleDim, "No entries found"))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.ID,
			f.Date(entry),
			entry.Activity,
			entry.Type.Label(),
			entry.StartTime,
			entry.EndTime,
			f.EntryHours(entry),
			f.Status(entry.Status),
		})
	}
	f.table([]string{"ID", "Date", "Activity", "Type", "Start", "End", "Hours", "Status"}, rows)
}

// Balance prints the totals of a balance
func (f *Formatter) Balance(balance domain.Balance) {
	rows := [][]string{
		{"Extra hours", domain.FormatHours(balance.Extra)},
		{"Compensation", f.paint(styleRed, domain.FormatHours(balance.Compensation))},
		{"Balance", f.paint(styleBold, f.Hours(balance.Total()))},
		{"Entries", fmt.Sprintf("%d (%d pending, %d approved, %d rejected)",
			balance.EntryCount, balance.Pending, balance.Approved, balance.Rejected)},
	}
	for _, row := range rows {
		fmt.Fprintf(f.out, "%s %s\n", f.paint(styleDim, fmt.Sprintf("%-13s", row[0]+":")), row[1])
	}
}

// Report prints a report as a table with its totals
func (f *Formatter) Report(report *services.Report) {
	f.Header("Overtime report")
	f.Println("User:      %s <%s>", report.Subject.String(), report.Subject.Email)
	f.Println("Generated: %s by %s", report.GeneratedAt.Format("2006-01-02 15:04"), report.GeneratedBy.String())
	fmt.Fprintln(f.out)
	f.EntryTable(report.Entries)
	fmt.Fprintln(f.out)
	f.Balance(report.Balance)
}

// UserTable prints users one per row
func (f *Formatter) UserTable(users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(f.out, f.paint(styleDim, "No users found"))
		return
	}
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{user.Name, user.Email, string(user.Role)})
	}
	f.table([]string{"Name", "Email", "Role"}, rows)
}

// Overviews prints one summary row per user
func (f *Formatter) Overviews(overviews []services.UserOverview) {
	if len(overviews) == 0 {
		fmt.Fprintln(f.out, f.paint(styleDim, "No users found"))
		return
	}
	rows := make([][]string, 0, len(overviews))
	for _, overview := range overviews {
		rows = append(rows, []string{
			overview.User.Name,
			overview.User.Email,
			string(overview.User.Role),
			strconv.Itoa(len(overview.Entries)),
			strconv.Itoa(overview.Balance.Pending),
			domain.FormatHours(overview.Balance.Extra),
			f.paint(styleRed, domain.FormatHours(overview.Balance.Compensation)),
			f.Hours(overview.Balance.Total()),
		})
	}
	f.table([]string{"Name", "Email", "Role", "Entries", "Pending", "Extra", "Compensation", "Balance"}, rows)
}

// table renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up.
func (f *Formatter) table(headers []string, rows [][]string) {
	const colGap = 2
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = f.paint(*style, cell)
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &styleHeader)
	separators := make([]string, cols)
	for i, w := range widths {
		separators[i] = strings.Repeat("─", w)
	}
	writeRow(separators, &styleDim)
	for _, row := range rows {
		writeRow(row, nil)
	}

	fmt.Fprint(f.out, b.String())
}
