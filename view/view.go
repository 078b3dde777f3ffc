// Package view renders page templates with a shared layout and func map.
// Parsed templates are cached outside dev mode; DEV=1 re-parses on every
// render so template edits show up without a restart.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/salesdesk/salesdesk/internal/middleware"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard func map shared by all templates.
func Funcs(r *http.Request) template.FuncMap {
	theme := middleware.ThemeFrom(r)
	return template.FuncMap{
		"theme": func() string { return theme },
		"year":  func() int { return time.Now().Year() },
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"date":  func(t time.Time) string { return t.Format("2006-01-02") },
		"score": func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
}

// Render parses and executes a page template wrapped in layout.html, unless
// the page provides a full document of its own.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			// The cached template was parsed with another request's func
			// map; rebind before executing so per-request funcs like theme
			// resolve against this request, not the one that parsed it.
			ct, err := t.Clone()
			if err != nil {
				return err
			}
			return ct.Funcs(Funcs(r)).Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}
	content, err := os.ReadFile(mainPath)
	if err != nil {
		return err
	}

	funcMap := Funcs(r)
	layoutPath := filepath.Join(baseDir, "layout.html")
	useLayout := !bytes.Contains(bytes.ToLower(content), []byte("<!doctype"))
	if useLayout {
		if fi, err := os.Stat(layoutPath); err != nil || fi.IsDir() {
			useLayout = false
		}
	}

	var t *template.Template
	if useLayout {
		t, err = template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, mainPath)
	} else {
		t, err = template.New(name).Funcs(funcMap).ParseFiles(mainPath)
	}
	if err != nil {
		return err
	}

	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t.Execute(w, data)
}
