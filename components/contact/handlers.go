// components/contact/handlers.go
//
// HTTP handlers.  Both submit routes share run(), which verifies the form
// token, guards against a double post of the same form, and drives one
// workflow attempt against a fresh pageSurface.  The HTML route renders the
// surface into the page; the JSON route serializes it.

package contact

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	workflow "github.com/yanizio/apoconsult/internal/contact"
	"github.com/yanizio/apoconsult/internal/csrf"
	"github.com/yanizio/apoconsult/internal/form"
	"github.com/yanizio/apoconsult/internal/head"
	"github.com/yanizio/apoconsult/internal/logger"
	"github.com/yanizio/apoconsult/internal/requestinfo"
)

// User-facing copy for outcomes the workflow does not produce itself.
const (
	msgBadToken = "This form has expired.  Please review your details and send again."
	msgBusy     = "Your message is already being sent."
)

// csrfHeader lets script clients send the token outside the JSON body.
const csrfHeader = "X-CSRF-Token"

// maxBody caps a submission body.
const maxBody = 64 << 10

var errBadToken = errors.New("contact: invalid form token")

// -----------------------------------------------------------------------------
// Page routes
// -----------------------------------------------------------------------------

func (c *Component) showPage(open bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps := newPageSurface(nil, c.label())
		if open {
			workflow.NewModal(ps).Show()
		}
		c.render(w, r, http.StatusOK, ps)
	}
}

func (c *Component) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	vals := make(workflow.Values, len(workflow.Inputs))
	for _, in := range workflow.Inputs {
		vals[in] = r.PostForm.Get(in)
	}

	ps, err := c.run(r, vals, r.PostForm.Get(csrf.FieldName))
	c.render(w, r, statusFor(err), ps)
}

// -----------------------------------------------------------------------------
// JSON route
// -----------------------------------------------------------------------------

type apiRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CSRFToken string `json:"csrf_token"`
}

type apiFieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type apiNotification struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	TTLMs    int64  `json:"ttl_ms"`
}

type apiResponse struct {
	Status       string           `json:"status"`
	Errors       []apiFieldError  `json:"errors"`
	Notification *apiNotification `json:"notification,omitempty"`
	CSRFToken    string           `json:"csrf_token,omitempty"`
}

func (c *Component) submitJSON(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Status: "bad_request", Errors: []apiFieldError{}})
		return
	}

	tok := req.CSRFToken
	if tok == "" {
		tok = r.Header.Get(csrfHeader)
	}

	ps, err := c.run(r, workflow.Values{
		workflow.InputName:    req.Name,
		workflow.InputEmail:   req.Email,
		workflow.InputPhone:   req.Phone,
		workflow.InputSubject: req.Subject,
		workflow.InputMessage: req.Message,
	}, tok)

	resp := apiResponse{Status: statusLabel(err), Errors: []apiFieldError{}}
	var ve *workflow.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Fields {
			resp.Errors = append(resp.Errors, apiFieldError{
				Field:   string(fe.Field),
				Kind:    fe.Kind.String(),
				Message: fe.Message,
			})
		}
	}
	if n := ps.snapshot().Notification; n != nil {
		resp.Notification = &apiNotification{
			ID:       n.ID,
			Message:  n.Message,
			Severity: string(n.Severity),
			TTLMs:    n.TTL.Milliseconds(),
		}
	}
	// A fresh token for the next attempt, unless the current one is still
	// sending elsewhere.
	if !errors.Is(err, workflow.ErrSubmissionInFlight) {
		if next, terr := c.signer.Token(); terr == nil {
			resp.CSRFToken = next
		}
	}
	writeJSON(w, statusFor(err), resp)
}

func statusLabel(err error) string {
	switch statusFor(err) {
	case http.StatusOK:
		return "sent"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusUnprocessableEntity:
		return "invalid"
	case http.StatusConflict:
		return "busy"
	case http.StatusServiceUnavailable:
		return "canceled"
	default:
		return "failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// -----------------------------------------------------------------------------
// Shared attempt
// -----------------------------------------------------------------------------

// run drives one attempt.  The modal is shown first because a post always
// originates from the open modal; success dismisses it again.
func (c *Component) run(r *http.Request, vals workflow.Values, tok string) (*pageSurface, error) {
	log := requestLogger(r)
	ps := newPageSurface(vals, c.label())

	ctrl := workflow.New(ps, c.transport, c.options(log))
	defer ctrl.Close()
	ctrl.Modal().Show()

	if !c.signer.Verify(tok) {
		ctrl.Notifier().Show(msgBadToken, workflow.SeverityError)
		log.Warnw("contact form token rejected")
		return ps, errBadToken
	}

	if _, busy := c.inflight.LoadOrStore(tok, struct{}{}); busy {
		ctrl.Notifier().Show(msgBusy, workflow.SeverityInfo)
		log.Infow("contact form posted twice while sending")
		return ps, workflow.ErrSubmissionInFlight
	}
	defer c.inflight.Delete(tok)

	return ps, ctrl.Submit(r.Context(), workflow.Collect(ps))
}

// requestLogger tags the request-scoped logger with UA and geo hints.
func requestLogger(r *http.Request) *zap.SugaredLogger {
	return logger.FromContext(r.Context()).With(requestinfo.FromContext(r.Context()).LogFields()...)
}

// -----------------------------------------------------------------------------
// Page rendering
// -----------------------------------------------------------------------------

type pageData struct {
	Head         *head.Builder
	Title        string
	Tagline      string
	FormTitle    string
	Form         template.HTML
	ModalOpen    bool
	SubmitLabel  string
	PendingLabel string
	Pending      bool
	Notification *workflow.Notification
}

func (c *Component) render(w http.ResponseWriter, r *http.Request, status int, ps *pageSurface) {
	snap := ps.snapshot()

	tok, err := c.signer.Token()
	if err != nil {
		c.fail(w, r, err)
		return
	}

	markup, err := form.Render(c.form, form.RenderOptions{
		Prefill: snap.Values,
		Errors:  snap.Errors,
		Options: map[string][]form.Option{workflow.InputSubject: c.subjects},
		Hidden:  map[string]string{csrf.FieldName: tok},
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}

	pending := c.cfg.Contact.PendingLabel
	if pending == "" {
		pending = workflow.DefaultPendingLabel
	}

	hb, err := c.headTags(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}

	data := pageData{
		Head:         hb,
		Title:        siteTitle,
		Tagline:      siteTagline,
		FormTitle:    c.form.Title,
		Form:         markup,
		ModalOpen:    snap.ModalOpen,
		SubmitLabel:  snap.Label,
		PendingLabel: pending,
		Pending:      snap.Pending,
		Notification: snap.Notification,
	}
	if err := c.view.Render(w, status, "page", data); err != nil {
		c.fail(w, r, err)
	}
}

// headTags assembles the page's <head> tags.
func (c *Component) headTags(r *http.Request) (*head.Builder, error) {
	hb := head.New()
	hb.SetTitle(siteTitle + " | " + c.form.Title)
	hb.Description(siteTagline)
	hb.Canonical(canonicalURL(r))
	hb.Stylesheet("/static/contact.css")
	hb.DeferScript("/static/contact.js")
	err := hb.JSONLD(map[string]any{
		"@context":    "https://schema.org",
		"@type":       "ContactPage",
		"name":        c.form.Title,
		"description": siteTagline,
		"publisher":   map[string]string{"@type": "Organization", "name": siteTitle},
	})
	return hb, err
}

// canonicalURL points both "/" and "/contact" at the home page.
func canonicalURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

func (c *Component) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Errorw("contact page render failed", "err", err)
	http.Error(w, strings.ToLower(http.StatusText(http.StatusInternalServerError)), http.StatusInternalServerError)
}
