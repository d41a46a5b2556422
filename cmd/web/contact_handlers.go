package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/inquiry"
	mw "kalakrutiassociates.com/web/internal/middleware"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/observability"
)

const inquiryAnchor = "#inquiry"

// newIntake restores the visitor's form state from the session.
func (a *app) newIntake(r *http.Request) (*inquiry.Intake, *mw.SessionData) {
	sess := mw.GetSession(r)
	in := inquiry.New(inquiry.Deps{
		Submitter: a.submitter,
		Clock:     a.now,
		Logger:    observability.FromContext(r.Context()),
	})
	in.Restore(sess.InquirySnapshot())
	return in, sess
}

// ContactSubmitHandler validates and submits the consultation form. htmx
// posts get the form fragment back; plain posts are redirected to the
// contact page (post/redirect/get) unless validation failed.
func (a *app) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	in, sess := a.newIntake(r)
	form := inquiry.FromValues(r.PostForm)

	_, err := in.Submit(r.Context(), form)
	sess.SetInquiry(in.Snapshot())

	var (
		verr *inquiry.ValidationError
		errs inquiry.Errors
		code = http.StatusOK
	)
	switch {
	case errors.As(err, &verr):
		errs = verr.Fields
		code = http.StatusUnprocessableEntity
	case errors.Is(err, inquiry.ErrBusy):
		// a finished submission only leaves via reset; show it again
		st := in.Status()
		observability.FromContext(r.Context()).Debug("inquiry busy", zap.String("status", st.String()))
		if !st.Terminal() {
			code = http.StatusConflict
		}
	}

	if mw.IsHTMX(r.Context()) {
		a.renderInquiry(w, r, in.Snapshot(), errs, code)
		return
	}
	if errs != nil {
		vm := a.buildLayout(r, nav.Contact)
		vm.Content = a.buildContactView(&vm, in.Snapshot(), errs)
		a.renderPage(w, r, string(nav.Contact), vm, http.StatusOK)
		return
	}
	http.Redirect(w, r, nav.Contact.Path()+inquiryAnchor, http.StatusSeeOther)
}

// ContactResetHandler returns a finished form to idle.
func (a *app) ContactResetHandler(w http.ResponseWriter, r *http.Request) {
	in, sess := a.newIntake(r)
	in.Reset()
	sess.SetInquiry(in.Snapshot())

	if mw.IsHTMX(r.Context()) {
		a.renderInquiry(w, r, in.Snapshot(), nil, http.StatusOK)
		return
	}
	http.Redirect(w, r, nav.Contact.Path()+inquiryAnchor, http.StatusSeeOther)
}

func (a *app) renderInquiry(w http.ResponseWriter, r *http.Request, snap inquiry.Snapshot, errs inquiry.Errors, code int) {
	links := handlersPkg.ContactLinksFor(a.store.Business())
	a.renderTemplate(w, r, "frag_inquiry_form", buildInquiryView(snap, errs, mw.CSRFToken(r), links), code)
}
