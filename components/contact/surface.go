// components/contact/surface.go
//
// pageSurface is the server-rendered implementation of contact.Surface.  One
// exists per request: it starts with the posted values, records whatever the
// workflow does to it, and is then rendered into HTML or JSON.  Nothing is
// written to the response until the workflow has settled.

package contact

import (
	"sync"

	workflow "github.com/yanizio/apoconsult/internal/contact"
)

type pageSurface struct {
	mu sync.Mutex

	values       workflow.Values
	errors       map[string]string
	pending      bool
	label        string
	note         *workflow.Notification
	modalVisible bool
}

func newPageSurface(values workflow.Values, label string) *pageSurface {
	if values == nil {
		values = workflow.Values{}
	}
	return &pageSurface{
		values: values,
		errors: map[string]string{},
		label:  label,
	}
}

func (p *pageSurface) FieldValue(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[name]
}

func (p *pageSurface) SetFieldError(field workflow.FieldID, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors[string(field)] = message
}

func (p *pageSurface) ClearFieldErrors() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = map[string]string{}
}

func (p *pageSurface) ClearFields() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = workflow.Values{}
}

func (p *pageSurface) SetSubmitting(pending bool, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = pending
	p.label = label
}

func (p *pageSurface) ShowNotification(n workflow.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.note = &n
}

func (p *pageSurface) DismissNotification(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.note != nil && p.note.ID == id {
		p.note = nil
	}
}

func (p *pageSurface) SetModalVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalVisible = visible
}

// snapshot is an immutable copy used by the renderers.
type snapshot struct {
	Values       workflow.Values
	Errors       map[string]string
	Pending      bool
	Label        string
	Notification *workflow.Notification
	ModalOpen    bool
}

func (p *pageSurface) snapshot() snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	vals := make(workflow.Values, len(p.values))
	for k, v := range p.values {
		vals[k] = v
	}
	errs := make(map[string]string, len(p.errors))
	for k, v := range p.errors {
		errs[k] = v
	}
	var note *workflow.Notification
	if p.note != nil {
		n := *p.note
		note = &n
	}
	return snapshot{
		Values:       vals,
		Errors:       errs,
		Pending:      p.pending,
		Label:        p.label,
		Notification: note,
		ModalOpen:    p.modalVisible,
	}
}
