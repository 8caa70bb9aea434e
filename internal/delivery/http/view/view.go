// Package view renders the HTML pages. Templates are embedded and parsed once
// at startup, each page together with the shared layout.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"hospital-management/internal/domain/entity"

	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageLogin           = "login.html"
	PageAccess          = "user_access.html"
	PageRegister        = "register.html"
	PageAdminHome       = "index.html"
	PagePatients        = "patients.html"
	PageAddDoctor       = "add_doctor.html"
	PageBookAppointment = "book_appointment.html"
	PageAppointments    = "appointments.html"
)

var pages = []string{
	PageLogin,
	PageAccess,
	PageRegister,
	PageAdminHome,
	PagePatients,
	PageAddDoctor,
	PageBookAppointment,
	PageAppointments,
}

// PageData is what every template receives
type PageData struct {
	Session   *entity.Session
	CSRFField template.HTML
	Data      interface{}
}

type Renderer struct {
	log       *logrus.Logger
	templates map[string]*template.Template
}

func NewRenderer(log *logrus.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"can": func(session *entity.Session, capability string) bool {
			return session != nil && session.Role.Can(entity.Capability(capability))
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tpl
	}

	return &Renderer{log: log, templates: templates}, nil
}

// Render writes page with status 200. session may be nil on public pages.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, session *entity.Session, data interface{}) {
	tpl, ok := v.templates[page]
	if !ok {
		v.log.Errorf("Unknown template %s", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := tpl.Execute(&buf, PageData{
		Session:   session,
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	})
	if err != nil {
		v.log.Errorf("Failed to render %s: %+v", page, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
