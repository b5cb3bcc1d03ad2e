// Package welcome generates onboarding emails for migrated users.
//
// Emails are rendered from a text template and written to a CSV that a
// mail-merge tool can send; nothing is sent directly. The rendered
// message contains the user's passphrase, so the output file is the
// one place a passphrase is ever written and callers should treat it
// accordingly.
package welcome

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/mediashift/mediashift/internal/records"
)

// defaultTemplate is the stock welcome email body.
const defaultTemplate = `Hello {{.Username}},

Welcome to {{.ServerName}}!

Your account has been created and is ready to use. Here are your login details:

Server URL: {{.ServerURL}}
Username: {{.Username}}
Password: {{.Passphrase}}

For security reasons, we recommend changing your password after your first login.

If you have any questions or need assistance, please contact {{.AdminName}} at {{.AdminEmail}}.

Enjoy your media experience!

Best regards,
The {{.ServerName}} Team
`

// Params customize the rendered emails. Zero values fall back to
// generic placeholders so a minimal config still produces usable mail.
type Params struct {
	ServerURL  string
	ServerName string
	AdminName  string
	AdminEmail string
}

func (p Params) withDefaults() Params {
	if p.ServerName == "" {
		p.ServerName = "Media Server"
	}
	if p.AdminName == "" {
		p.AdminName = "Server Admin"
	}
	if p.AdminEmail == "" {
		p.AdminEmail = "admin@example.com"
	}
	return p
}

// Email is one rendered welcome message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Generator renders welcome emails from a template.
type Generator struct {
	tmpl   *template.Template
	params Params
}

// NewGenerator creates a Generator using the stock template.
func NewGenerator(params Params) *Generator {
	tmpl := template.Must(template.New("welcome").Parse(defaultTemplate))
	return &Generator{tmpl: tmpl, params: params.withDefaults()}
}

// NewGeneratorFromFile creates a Generator using a custom template
// file. The template sees the same fields as the stock one.
func NewGeneratorFromFile(params Params, path string) (*Generator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tmpl, err := template.New("welcome").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return &Generator{tmpl: tmpl, params: params.withDefaults()}, nil
}

// templateData is what the template renders against.
type templateData struct {
	Username   string
	Passphrase string
	ServerURL  string
	ServerName string
	AdminName  string
	AdminEmail string
}

// Render produces the welcome email for one record. Records without a
// username, email address, or passphrase cannot be welcomed and return
// an error.
func (g *Generator) Render(record records.UserRecord) (Email, error) {
	if record.Username == "" || record.Email == "" || record.Passphrase == "" {
		return Email{}, fmt.Errorf("record %q is missing username, email, or passphrase", record.Username)
	}

	var body strings.Builder
	err := g.tmpl.Execute(&body, templateData{
		Username:   record.Username,
		Passphrase: record.Passphrase,
		ServerURL:  g.params.ServerURL,
		ServerName: g.params.ServerName,
		AdminName:  g.params.AdminName,
		AdminEmail: g.params.AdminEmail,
	})
	if err != nil {
		return Email{}, fmt.Errorf("failed to render email for %s: %w", record.Username, err)
	}

	return Email{
		To:      record.Email,
		Subject: fmt.Sprintf("Welcome to %s - Your Account is Ready", g.params.ServerName),
		Body:    body.String(),
	}, nil
}

// WriteCSV renders an email per record and writes them as
// Email,Subject,Message rows. Records that cannot be rendered are
// skipped; the count of written emails is returned.
func (g *Generator) WriteCSV(w io.Writer, batch []records.UserRecord) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Email", "Subject", "Message"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for _, record := range batch {
		email, err := g.Render(record)
		if err != nil {
			continue
		}
		if err := cw.Write([]string{email.To, email.Subject, email.Body}); err != nil {
			return count, fmt.Errorf("failed to write email row: %w", err)
		}
		count++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return count, fmt.Errorf("failed to flush output: %w", err)
	}
	return count, nil
}
