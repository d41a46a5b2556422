package main

import (
	"html/template"

	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/format"
	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/inquiry"
	"kalakrutiassociates.com/web/internal/seo"
)

// MethodCard is a contact method with its deep link.
type MethodCard struct {
	content.ContactMethod
	Href     template.URL
	External bool
}

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// InquiryView renders the consultation form in one of its four states.
type InquiryView struct {
	Status     string
	Form       inquiry.Form
	Errors     inquiry.Errors
	Reference  string
	ReceivedAt string
	Failure    string
	Services   []Option
	Budgets    []Option
	CSRFToken  string
	Contact    handlersPkg.ContactLinks
}

func (v InquiryView) Idle() bool    { return v.Status == inquiry.StatusIdle.String() }
func (v InquiryView) Success() bool { return v.Status == inquiry.StatusSuccess.String() }
func (v InquiryView) Failed() bool  { return v.Status == inquiry.StatusError.String() }

// ContactView is the contact page payload.
type ContactView struct {
	Methods      []MethodCard
	ServiceAreas []string
	Stats        []content.Stat
	Inquiry      InquiryView
}

func buildInquiryView(snap inquiry.Snapshot, errs inquiry.Errors, csrf string, links handlersPkg.ContactLinks) InquiryView {
	status := inquiry.ParseStatus(snap.Status)
	if status == inquiry.StatusSubmitting {
		status = inquiry.StatusIdle
	}
	v := InquiryView{
		Status:    status.String(),
		Form:      snap.Form,
		Errors:    errs,
		Failure:   snap.Failure,
		CSRFToken: csrf,
		Contact:   links,
	}
	if status == inquiry.StatusSuccess {
		v.Reference = snap.Receipt.Reference
		if !snap.Receipt.ReceivedAt.IsZero() {
			v.ReceivedAt = format.Date(snap.Receipt.ReceivedAt)
		}
	}
	for _, s := range inquiry.Services() {
		v.Services = append(v.Services, Option{Value: string(s), Label: s.Label(), Selected: s == snap.Form.Service})
	}
	for _, b := range inquiry.Budgets() {
		v.Budgets = append(v.Budgets, Option{Value: string(b), Label: b.Label(), Selected: b == snap.Form.Budget})
	}
	return v
}

func (a *app) buildContactView(vm *handlersPkg.PageData, snap inquiry.Snapshot, errs inquiry.Errors) ContactView {
	page := a.store.Contact()
	methods := make([]MethodCard, 0, len(page.Methods))
	for _, m := range page.Methods {
		card := MethodCard{ContactMethod: m}
		switch m.Kind {
		case "call":
			card.Href = vm.Contact.Call
		case "whatsapp":
			card.Href, card.External = template.URL(vm.Contact.WhatsApp), true
		case "email":
			card.Href = template.URL(vm.Contact.Email)
		}
		methods = append(methods, card)
	}
	vm.AddJSONLD(seo.ContactPage(vm.Business, vm.SEO.Canonical))
	return ContactView{
		Methods:      methods,
		ServiceAreas: page.ServiceAreas,
		Stats:        page.Stats,
		Inquiry:      buildInquiryView(snap, errs, vm.CSRFToken, vm.Contact),
	}
}
