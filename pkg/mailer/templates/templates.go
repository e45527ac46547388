package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"

	"github.com/rizkypratama/survey-api/pkg/mailer"
)

var welcomeHTML = htmpl.Must(htmpl.New("welcome").Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account on {{.AppName}} is ready. You can sign in and start
  filling in your survey whenever you like.</p>
  <p style="color:#888; font-size:12px;">If you did not create this account, ignore this email.</p>
</body>
</html>`))

var receiptHTML = htmpl.Must(htmpl.New("survey_receipt").Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Thanks for your submission, {{.Name}}</h2>
  <p>We received your {{.Category}} survey response on {{.SubmittedAt}}.</p>
  <p>You can review your answers from the dashboard at any time.</p>
</body>
</html>`))

// Render produces subject and HTML body for a queued email job template.
func Render(template string, data map[string]any) (subject, html string, err error) {
	var buf bytes.Buffer
	switch template {
	case mailer.TemplateWelcome:
		if err := welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", err
		}
		return "Welcome to the survey portal", buf.String(), nil
	case mailer.TemplateReceipt:
		if err := receiptHTML.Execute(&buf, data); err != nil {
			return "", "", err
		}
		return "We received your survey response", buf.String(), nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", template)
	}
}
