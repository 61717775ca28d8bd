package templatemanager

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type TemplateManager struct {
	mu        sync.RWMutex
	templates map[string]templateManagerRender
}

type templateManagerRender struct {
	Main string
	Tmpl *template.Template
}

// TemplateManagerTemplates describes one named template set.
// Files are parsed in order and the first one is executed; Text is used when no files are given.
type TemplateManagerTemplates struct {
	Name  string
	Files []string
	Text  string
}

var templateFuncMap = template.FuncMap{
	"contains": strings.Contains,
	"replace":  strings.ReplaceAll,
	"date": func(layout string, t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	},
}

func NewTemplateManager(templates ...TemplateManagerTemplates) (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]templateManagerRender, len(templates))}

	for _, tmplStruct := range templates {
		var err error
		if len(tmplStruct.Files) > 0 {
			err = tm.Add(tmplStruct.Name, tmplStruct.Files...)
		} else {
			err = tm.AddText(tmplStruct.Name, tmplStruct.Text)
		}
		if err != nil {
			return nil, err
		}
	}

	return tm, nil
}

func (tm *TemplateManager) Render(name string, data any) ([]byte, error) {
	tm.mu.RLock()
	tmpl, exists := tm.templates[name]
	tm.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("template %s is not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Tmpl.ExecuteTemplate(&buf, tmpl.Main, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (tm *TemplateManager) Has(name string) bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	_, ok := tm.templates[name]
	return ok
}

func (tm *TemplateManager) Add(name string, files ...string) error {
	if len(files) == 0 {
		return fmt.Errorf("you can't add template without any files")
	}

	tmpl, err := template.New(name).Funcs(templateFuncMap).ParseFiles(files...)
	if err != nil {
		return fmt.Errorf("failed to add template into manager: %w", err)
	}

	tm.set(name, templateManagerRender{Main: filepath.Base(files[0]), Tmpl: tmpl})
	return nil
}

func (tm *TemplateManager) AddText(name, text string) error {
	tmpl, err := template.New(name).Funcs(templateFuncMap).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to add template into manager: %w", err)
	}

	tm.set(name, templateManagerRender{Main: name, Tmpl: tmpl})
	return nil
}

func (tm *TemplateManager) set(name string, r templateManagerRender) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.templates[name] = r
}
