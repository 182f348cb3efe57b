package turbobunny

import (
	"bytes"
	"embed"
	"errors"
	htmltemplate "html/template"
	"io/fs"
	"os"
	"path/filepath"
	texttemplate "text/template"
)

//go:embed resources
var embeddedResources embed.FS

type pageMetadata struct {
	AppName    string
	AppVersion string
	AppAuthors string
	Route      string
	ServerFQDN string
}

// renderer reads templates from the resources path on every render so they
// can be edited in place, falling back to the embedded copies.
type renderer struct {
	resourcesPath string
	embedded      fs.FS
}

func newRenderer(resourcesPath string) *renderer {
	embedded, _ := fs.Sub(embeddedResources, "resources")

	return &renderer{
		resourcesPath: resourcesPath,
		embedded:      embedded,
	}
}

func (r *renderer) read(name string) ([]byte, error) {
	if r.resourcesPath != "" {
		content, err := os.ReadFile(filepath.Join(r.resourcesPath, name))
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fs.ReadFile(r.embedded, name)
}

func (r *renderer) renderHTML(buf *bytes.Buffer, name string, data any) error {
	content, err := r.read(name)
	if err != nil {
		return err
	}

	tmpl, err := htmltemplate.New(name).Parse(string(content))
	if err != nil {
		return err
	}

	return tmpl.Execute(buf, data)
}

// renderPage renders name wrapped in the shared header and footer.
func (r *renderer) renderPage(name string, data any, metadata pageMetadata) (string, error) {
	buf := new(bytes.Buffer)
	buf.WriteString("<html>\n")

	err := r.renderHTML(buf, "header.html", metadata)
	if err != nil {
		return "", err
	}

	err = r.renderHTML(buf, name, data)
	if err != nil {
		return "", err
	}

	err = r.renderHTML(buf, "footer.html", metadata)
	if err != nil {
		return "", err
	}

	buf.WriteString("</html>\n")

	return buf.String(), nil
}

// renderRaw renders a non-HTML template such as the OpenSearch description.
func (r *renderer) renderRaw(name string, data any) (string, error) {
	content, err := r.read(name)
	if err != nil {
		return "", err
	}

	tmpl, err := texttemplate.New(name).Parse(string(content))
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)

	err = tmpl.Execute(buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// staticFS serves files under the resources path, or the embedded resources
// when no path is configured.
func (r *renderer) staticFS() fs.FS {
	if r.resourcesPath == "" {
		return r.embedded
	}

	return os.DirFS(r.resourcesPath)
}
