package inquiry

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Service is the kind of project an inquiry is about.
type Service string

const (
	ServiceResidential    Service = "residential"
	ServiceCommercial     Service = "commercial"
	ServiceModularKitchen Service = "modular-kitchen"
	ServiceRenovation     Service = "renovation"
)

var serviceLabels = map[Service]string{
	ServiceResidential:    "Residential Interior",
	ServiceCommercial:     "Commercial Interior",
	ServiceModularKitchen: "Modular Kitchen",
	ServiceRenovation:     "Home Renovation",
}

// Services lists the selectable services in display order.
func Services() []Service {
	return []Service{ServiceResidential, ServiceCommercial, ServiceModularKitchen, ServiceRenovation}
}

// Label is the option text.
func (s Service) Label() string { return serviceLabels[s] }

// Valid reports whether s is one of the known services.
func (s Service) Valid() bool {
	_, ok := serviceLabels[s]
	return ok
}

// Budget is the project budget bracket.
type Budget string

const (
	Budget3To5   Budget = "3-5lakhs"
	Budget5To10  Budget = "5-10lakhs"
	Budget10To20 Budget = "10-20lakhs"
	Budget20Plus Budget = "20plus"
)

var budgetLabels = map[Budget]string{
	Budget3To5:   "₹3-5 Lakhs",
	Budget5To10:  "₹5-10 Lakhs",
	Budget10To20: "₹10-20 Lakhs",
	Budget20Plus: "₹20+ Lakhs",
}

// Budgets lists the brackets in display order.
func Budgets() []Budget {
	return []Budget{Budget3To5, Budget5To10, Budget10To20, Budget20Plus}
}

func (b Budget) Label() string { return budgetLabels[b] }

func (b Budget) Valid() bool {
	_, ok := budgetLabels[b]
	return ok
}

// Form field names, shared by the HTML form and the validation errors.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldService = "service"
	FieldBudget  = "budget"
	FieldMessage = "message"
)

// Form is a consultation request as typed by the visitor.
type Form struct {
	Name    string  `json:"name,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Email   string  `json:"email,omitempty"`
	Service Service `json:"service,omitempty"`
	Budget  Budget  `json:"budget,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Input caps, in bytes of the value's JSON encoding. The form round-trips
// through the session cookie, which securecookie limits to 4096 bytes after
// signing and two rounds of base64.
const (
	MaxFieldLen   = 96
	MaxOptionLen  = 32
	MaxMessageLen = 1000
	MaxFailureLen = 160
)

// FromValues reads a form from posted values, trimming surrounding space and
// clipping overlong input.
func FromValues(v url.Values) Form {
	get := func(k string, n int) string { return Clip(strings.TrimSpace(v.Get(k)), n) }
	return Form{
		Name:    get(FieldName, MaxFieldLen),
		Phone:   get(FieldPhone, MaxFieldLen),
		Email:   get(FieldEmail, MaxFieldLen),
		Service: Service(get(FieldService, MaxOptionLen)),
		Budget:  Budget(get(FieldBudget, MaxOptionLen)),
		Message: get(FieldMessage, MaxMessageLen),
	}
}

// Clip cuts s so its JSON encoding takes at most n bytes. Runes are never
// split.
func Clip(s string, n int) string {
	cost := 0
	for i, r := range s {
		c := jsonCost(r)
		if cost+c > n {
			return s[:i]
		}
		cost += c
	}
	return s
}

// jsonCost is an upper bound on the encoded size of r inside a JSON string,
// matching encoding/json's HTML-safe escaping.
func jsonCost(r rune) int {
	switch {
	case r < 0x20, r == '<', r == '>', r == '&', r == '\u2028', r == '\u2029', r == utf8.RuneError:
		return 6
	case r == '"', r == '\\':
		return 2
	}
	return utf8.RuneLen(r)
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool { return f == Form{} }

// Errors maps a field name to a message.
type Errors map[string]string

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Validate checks required fields and option values. It returns nil when the
// form can be submitted.
func (f Form) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs[FieldName] = "Please enter your full name."
	}
	if f.Phone == "" {
		errs[FieldPhone] = "Please enter a phone number."
	}
	switch {
	case f.Service == "":
		errs[FieldService] = "Please select a service type."
	case !f.Service.Valid():
		errs[FieldService] = "Please choose one of the listed services."
	}
	switch {
	case f.Budget == "":
		errs[FieldBudget] = "Please select a project budget."
	case !f.Budget.Valid():
		errs[FieldBudget] = "Please choose one of the listed budgets."
	}
	if f.Email != "" && !validEmail(f.Email) {
		errs[FieldEmail] = "Please enter a valid email address."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
