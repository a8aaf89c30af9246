// Package printout renders a purchase request as a printable text document:
// letterhead, line-item table, grand total, notes, terms and signature blocks.
// The output is for people; nothing reads it back.
package printout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/amalmed/opstrack/internal/record"
)

// Fixed document text.
const (
	FacilityName     = "مجمع الأمل الطبي"
	FacilityNameEN   = "Al-Amal Medical Polyclinic"
	DocumentTitle    = "طلب تعميد وتوريد أصناف"
	Currency         = "ر.س"
	ApprovedStamp    = "تم الاعتماد إلكترونياً"
	grandTotalLabel  = "الإجمالي الكلي المعتمد:"
	notesHeading     = "ملاحظات إضافية وتفاصيل الطلب:"
	termsHeading     = "الاشتراطات العامة:"
	signRequester    = "مقدم الطلب"
	signFinance      = "الإدارة المالية"
	signManager      = "مدير المنشأة"
	defaultPageWidth = 88
)

// ErrNotPurchase is returned for tasks without purchase data.
var ErrNotPurchase = errors.New("task is not a purchase request")

// ItemHeaders are the column titles of the line-item table.
var ItemHeaders = []string{"م", "الرمز", "الصنف", "الوحدة", "الكمية", "السعر", "المجموع"}

var (
	brandStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1B3F94"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ED1C24"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

// Options controls rendering.
type Options struct {
	// Width is the page width in cells; zero means 88.
	Width int
	// Lang selects digit grouping for amounts; zero means English grouping.
	Lang language.Tag
}

// Amount formats v with grouped digits and at most two decimals.
func Amount(v float64, lang language.Tag) string {
	if lang == language.Und {
		lang = language.English
	}
	return message.NewPrinter(lang).Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Render returns the printable document for a purchase request.
func Render(t *record.Task, opts Options) (string, error) {
	if t.PurchaseData == nil {
		return "", ErrNotPurchase
	}
	if opts.Width <= 0 {
		opts.Width = defaultPageWidth
	}
	pd := t.PurchaseData
	amount := func(v float64) string { return Amount(v, opts.Lang) }

	var b strings.Builder

	// Letterhead: facility on one side, date and number on the other.
	left := lipgloss.JoinVertical(lipgloss.Left,
		brandStyle.Render(FacilityName),
		accentStyle.Render(FacilityNameEN),
	)
	right := lipgloss.JoinVertical(lipgloss.Right,
		"التاريخ: "+t.Date,
		"الرقم: "+pd.SerialNumber,
	)
	gap := max(opts.Width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", opts.Width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(opts.Width, lipgloss.Center, titleStyle.Render(DocumentTitle)))
	b.WriteString("\n\n")

	if pd.Recipient != "" {
		b.WriteString(pd.Recipient)
		b.WriteString("\n")
	}
	b.WriteString("الموضوع: " + t.Title)
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(pd.Items))
	for i, it := range pd.Items {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			it.ItemCode,
			it.Name,
			it.Unit,
			amount(it.Quantity),
			amount(it.Price),
			amount(it.Total),
		})
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(ItemHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		})
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s %s", grandTotalLabel, amount(pd.GrandTotal), Currency))
	b.WriteString("\n\n")

	if notes := strings.TrimSpace(t.Notes); notes != "" {
		box := boxStyle.Width(opts.Width - 2).Render(titleStyle.Render(notesHeading) + "\n" + notes)
		b.WriteString(box)
		b.WriteString("\n\n")
	}

	if len(pd.Terms) > 0 {
		b.WriteString(titleStyle.Render(termsHeading))
		b.WriteString("\n")
		for i, term := range pd.Terms {
			b.WriteString(fmt.Sprintf("%d/ %s\n", i+1, term))
		}
		b.WriteString("\n")
	}

	b.WriteString(signatures(t, opts.Width))
	b.WriteString("\n")
	return b.String(), nil
}

func signatures(t *record.Task, width int) string {
	col := max(width/3-2, 16)
	block := func(heading, below string) string {
		return lipgloss.NewStyle().Width(col).Align(lipgloss.Center).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				heading,
				strings.Repeat("─", col-4),
				"",
				below,
			))
	}
	stamp := ""
	if t.Status == record.StatusApproved {
		stamp = ApprovedStamp
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		block(signRequester, t.Assignee),
		"  ",
		block(signFinance, ""),
		"  ",
		block(signManager, stamp),
	)
}
