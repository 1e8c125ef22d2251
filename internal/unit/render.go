package unit

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/service.tmpl
var templateFS embed.FS

var serviceTemplate = template.Must(template.ParseFS(templateFS, "templates/service.tmpl"))

// templateData is the view of a Service the unit template reads.
type templateData struct {
	Domain          string
	Description     string
	Directory       string
	Port            int
	PreStartCommand string
	StartCommand    string
}

// Render returns the unit file text for s.
//
// The first line is "#<domain>" when a domain is registered; it is how the
// domain is recovered on delete. Commands are written verbatim.
func Render(s Service) string {
	var buf bytes.Buffer
	err := serviceTemplate.Execute(&buf, templateData{
		Domain:          s.domain,
		Description:     s.description,
		Directory:       s.directory,
		Port:            s.port,
		PreStartCommand: s.preStartCommand,
		StartCommand:    s.startCommand,
	})
	if err != nil {
		// Only reachable if the embedded template is broken.
		panic(fmt.Sprintf("execute unit template: %v", err))
	}
	return buf.String()
}
