// components/contact/contact.go
//
// Contact component: the marketing page and its contact modal.
//
// Context
//   Every request builds its own pageSurface and workflow Controller, runs at
//   most one submit attempt, and renders the surface.  The shared pieces (the
//   transport, the CSRF signer, the parsed form, and the templates) are built
//   once in New.
//
// Routes
//   •  GET  /             – marketing page, modal closed.
//   •  GET  /contact      – same page with the modal open.
//   •  POST /contact      – HTML form post; re-renders with inline errors or
//                           the success banner.
//   •  POST /api/contact  – JSON submit for script-driven pages.
//   •  GET  /static/*     – embedded stylesheet and script.
//
// Response codes
//   200 delivered, 403 bad form token, 409 the same form is already sending,
//   422 invalid input, 502 delivery failed, 503 the client went away or the
//   server is shutting down mid-send.
//
//------------------------------------------------------------------------------

package contact

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/apoconsult/internal/config"
	workflow "github.com/yanizio/apoconsult/internal/contact"
	"github.com/yanizio/apoconsult/internal/csrf"
	"github.com/yanizio/apoconsult/internal/form"
	"github.com/yanizio/apoconsult/internal/view"
)

//go:embed templates/*.html forms/*.yaml static/*
var assets embed.FS

// Site copy shown on the page around the modal.
const (
	siteTitle   = "ApoConsult"
	siteTagline = "Independent consulting for regulated industries."
)

// Deps bundles what the component needs from cmd/web.
type Deps struct {
	Config    *config.Config
	Transport workflow.Transport
	Signer    *csrf.Signer
}

// Component implements component.Component.
type Component struct {
	cfg       *config.Config
	transport workflow.Transport
	signer    *csrf.Signer

	view     *view.Engine
	form     *form.FormDef
	subjects []form.Option

	// inflight holds the CSRF tokens of forms currently sending.  One
	// rendered form is one surface, so a second post of the same form while
	// the first is sending is refused.
	inflight sync.Map
}

// New parses the embedded form and templates.
func New(d Deps) (*Component, error) {
	if d.Config == nil || d.Transport == nil || d.Signer == nil {
		return nil, errors.New("contact: config, transport, and signer are required")
	}

	fd, err := form.LoadFS(assets, "forms/inquiry.yaml")
	if err != nil {
		return nil, err
	}
	for _, in := range workflow.Inputs {
		if _, ok := fd.Field(in); !ok {
			return nil, fmt.Errorf("contact: form %s lacks input %q", fd.ID, in)
		}
	}

	eng, err := view.New(assets, "templates", nil)
	if err != nil {
		return nil, err
	}

	subjects := make([]form.Option, 0, len(d.Config.Contact.Subjects))
	for _, s := range d.Config.Contact.Subjects {
		subjects = append(subjects, form.Option{Value: s.Value, Label: s.Label})
	}

	return &Component{
		cfg:       d.Config,
		transport: d.Transport,
		signer:    d.Signer,
		view:      eng,
		form:      fd,
		subjects:  subjects,
	}, nil
}

// Name implements component.Component.
func (c *Component) Name() string { return "contact" }

// Routes implements component.Component.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.showPage(false))
	r.Get("/contact", c.showPage(true))
	r.Post("/contact", c.submitForm)
	r.Post("/api/contact", c.submitJSON)

	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	return r
}

// options maps configuration onto the workflow's Controller options.
func (c *Component) options(log *zap.SugaredLogger) workflow.Options {
	cc := c.cfg.Contact
	return workflow.Options{
		SubmitLabel:     cc.SubmitLabel,
		PendingLabel:    cc.PendingLabel,
		Timeout:         cc.Timeout,
		NotificationTTL: cc.NotificationTTL,
		SuccessMessage:  cc.SuccessMessage,
		FailureMessage:  cc.FailureMessage,
		RejectMessage:   cc.RejectMessage,
		Logger:          log,
	}
}

// label is the idle submit label.
func (c *Component) label() string {
	if l := c.cfg.Contact.SubmitLabel; l != "" {
		return l
	}
	return workflow.DefaultSubmitLabel
}

// statusFor maps a Submit result onto an HTTP status.
func statusFor(err error) int {
	var te *workflow.TransportError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errBadToken):
		return http.StatusForbidden
	case workflow.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrCanceled):
		return http.StatusServiceUnavailable
	case errors.As(err, &te):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
