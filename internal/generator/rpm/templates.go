package rpm

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/ralt/rpmbundle/internal/models"
)

//go:embed resources/*.tmpl resources/icon.png
var resources embed.FS

var templates = template.Must(template.New("rpm").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(resources, "resources/*.tmpl"))

// script is one lifecycle script section of the spec file
type script struct {
	Hook string
	Body string
}

// templateData is what the spec and desktop templates are rendered with
type templateData struct {
	*models.Configuration
	Summary string
	Scripts []script
	Files   []string
}

func newTemplateData(cfg *models.Configuration) templateData {
	data := templateData{
		Configuration: cfg,
		Summary:       cfg.Description,
		Files: []string{
			"/usr/bin/" + cfg.Name,
			"/usr/lib/" + cfg.Name + "/",
			"/usr/share/applications/" + cfg.Name + ".desktop",
			"/usr/share/doc/" + cfg.Name + "/",
		},
	}
	if data.Summary == "" {
		data.Summary = firstLine(cfg.ProductDescription)
	}

	for _, s := range []script{
		{Hook: "pre", Body: cfg.Pre},
		{Hook: "post", Body: cfg.Post},
		{Hook: "preun", Body: cfg.Preun},
		{Hook: "postun", Body: cfg.Postun},
	} {
		if s.Body != "" {
			s.Body = strings.TrimRight(s.Body, "\n")
			data.Scripts = append(data.Scripts, s)
		}
	}

	for _, icon := range iconFiles(cfg) {
		data.Files = append(data.Files, icon.installPath)
	}
	return data
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// renderTemplate executes one of the embedded templates
func renderTemplate(name string, cfg *models.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, newTemplateData(cfg)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// expandPath executes the template actions in a path against cfg
func expandPath(path string, cfg *models.Configuration) (string, error) {
	if !strings.Contains(path, "{{") {
		return path, nil
	}

	t, err := template.New("path").Parse(path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
