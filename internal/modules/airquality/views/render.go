package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"airquality-server/internal/modules/airquality/analysis"
	"airquality-server/internal/modules/airquality/charts"
	"airquality-server/internal/modules/airquality/service"
	"airquality-server/internal/modules/airquality/types"
)

var pageTmpl *template.Template

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"num": func(n analysis.Number) string {
		if !n.Defined() {
			return "n/a"
		}
		return printer.Sprintf("%.2f", n.Float())
	},
	"thousands": func(n int) string { return printer.Sprintf("%d", n) },
	"date":      func(t time.Time) string { return t.Format("2006-01-02") },
	"heat": func(n analysis.Number) template.CSS {
		return template.CSS(charts.DivergingColor(n.Float()))
	},
	"heatText": func(n analysis.Number) template.CSS {
		return template.CSS(charts.TextColor(n.Float()))
	},
	"row": func(m [][]analysis.Number, i int) []analysis.Number { return m[i] },
}

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	pageTmpl = tmpl
	return nil
}

// LoadTemplates loads the embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// StaticFS is the embedded stylesheet directory served under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(viewsFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NavItem is one entry of the exclusive page selector in the sidebar.
type NavItem struct {
	Page   types.Page
	Label  string
	Active bool
}

type Sidebar struct {
	AuthorName    string
	DataSourceURL string

	AuthorEmail      string
	AuthorProfile    string
	AuthorProfileURL string
}

// PageData is the view model for a full dashboard page.
type PageData struct {
	Nav     []NavItem
	Sidebar Sidebar
	View    *service.RenderedView
	// Notice is shown above the content, e.g. when an unknown page was requested.
	Notice string
}

func NewPageData(view *service.RenderedView, sidebar Sidebar) *PageData {
	nav := make([]NavItem, 0, len(types.Pages))
	for _, p := range types.Pages {
		nav = append(nav, NavItem{Page: p, Label: p.Label(), Active: view != nil && view.Page == p})
	}
	return &PageData{Nav: nav, Sidebar: sidebar, View: view}
}

func RenderPage(w io.Writer, data *PageData) error {
	if pageTmpl == nil {
		return errors.New("page template not loaded: call views.LoadTemplates during startup")
	}
	if data == nil || data.View == nil {
		return errors.New("render page: no view")
	}
	return pageTmpl.ExecuteTemplate(w, "page.html", data)
}
