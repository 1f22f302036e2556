package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// pageTitles lists the pages the UI knows about. Job detail pages are
// matched separately.
var pageTitles = map[string]string{
	"/":                    "Job Board",
	"/sign-in":             "Sign in",
	"/sign-up":             "Sign up",
	"/jobs":                "Open positions",
	"/jobs/create":         "Post a job",
	"/about":               "About",
	"/contact":             "Contact",
	"/profile":             "Your profile",
	"/dashboard/candidate": "Candidate dashboard",
	"/dashboard/recruiter": "Recruiter dashboard",
	"/dashboard/admin":     "Admin dashboard",
	"/admin":               "Administration",
	"/admin/users":         "Users",
}

var pageShell = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body data-path="{{.Path}}"><main id="app"><h1>{{.Title}}</h1></main></body>
</html>
`))

type pageData struct {
	Title string
	Path  string
}

// PageHandler renders the HTML shell for UI routes. Access to a page has
// already been decided by the route guard by the time Render runs.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Render(c echo.Context) error {
	p := path.Clean("/" + c.Request().URL.Path)

	title, ok := pageTitles[p]
	if !ok {
		title, ok = jobDetailTitle(p)
	}
	if !ok {
		return echo.ErrNotFound
	}

	var buf bytes.Buffer
	if err := pageShell.Execute(&buf, pageData{Title: title, Path: p}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// jobDetailTitle matches /jobs/<id>.
func jobDetailTitle(p string) (string, bool) {
	id, found := strings.CutPrefix(p, "/jobs/")
	if !found || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return "Job details", true
}
