package mailer

import "embed"

// Templates holds the built-in mail templates and layouts.
//
//go:embed templates
var Templates embed.FS

// Template names
const (
	TemplateBirthday      = "birthday.md"
	TemplateHoliday       = "holiday.md"
	TemplateMonthlyReport = "monthly_report.md"

	DefaultLayout = "base.html"
)

// NewDefaultRenderer renders the embedded templates.
func NewDefaultRenderer() *Renderer {
	return NewRenderer(Templates, "templates")
}
