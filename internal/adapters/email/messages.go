package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var messageTemplates = template.Must(template.New("").Parse(`
{{define "ban"}}<p>Hi {{.Name}},</p>
<p>Your {{.Gym}} account has been suspended.</p>{{if .Reason}}
<p>Reason: {{.Reason}}</p>{{end}}
<p>If you think this is a mistake, reply to this email.</p>{{end}}
{{define "unban"}}<p>Hi {{.Name}},</p>
<p>Your {{.Gym}} account has been restored. You can log in again.</p>{{end}}
{{define "testimonial_submitted"}}<p>{{.Name}} submitted a testimonial ({{.Rating}}/5) awaiting moderation.</p>
<blockquote>{{.Content}}</blockquote>{{end}}
{{define "testimonial_approved"}}<p>Hi {{.Name}},</p>
<p>Thanks for your review. It is now live on the {{.Gym}} website.</p>{{end}}
`))

// MessageData carries the values interpolated into notification emails.
type MessageData struct {
	Gym     string
	Name    string
	Reason  string
	Content string
	Rating  int
}

// Render executes the named notification template with HTML escaping.
// PRE: name is one of ban, unban, testimonial_submitted, testimonial_approved
func Render(name string, data MessageData) (string, error) {
	var buf bytes.Buffer
	if err := messageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
