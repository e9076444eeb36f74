package mailer

import (
	"bytes"
	"html/template"
	"path/filepath"
	"sync"
)

// Renderer renders named HTML templates from a directory. Templates are
// parsed on first use and cached for the lifetime of the renderer; the
// cache is never invalidated at runtime.
type Renderer struct {
	dir   string
	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{
		dir:   dir,
		cache: make(map[string]*template.Template),
	}
}

// Render executes the template <dir>/<name>.html with the given data.
func (r *Renderer) Render(name string, data map[string]interface{}) (string, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	tmpl, err := template.ParseFiles(filepath.Join(r.dir, name+".html"))
	if err != nil {
		return nil, err
	}
	r.cache[name] = tmpl
	return tmpl, nil
}
