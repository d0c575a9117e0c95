package registration

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ruteri/trainer-intake/interfaces"
)

// Length bounds shared by the server-side checks and the rendered form.
const (
	NameMinLen      = 2
	AcademiesMinLen = 1
	CrefMinLen      = 4
	CrefMaxLen      = 20
	WhatsappMinLen  = 10
)

// Field names as they appear in the JSON submission.
const (
	FieldName                    = "name"
	FieldDateOfBirth             = "dateOfBirth"
	FieldPhotoURL                = "photoUrl"
	FieldGender                  = "gender"
	FieldStudentGenderPreference = "studentGenderPreference"
	FieldAcademies               = "academies"
	FieldResidentialAvailable    = "residentialAvailable"
	FieldCref                    = "cref"
	FieldCrefValidity            = "crefValidity"
	FieldWhatsapp                = "whatsapp"
	FieldEmail                   = "email"
	FieldInstagram               = "instagram"
	FieldContactConsent          = "contactConsent"
)

const (
	msgRequired       = "Campo obrigatório"
	msgExpectedString = "Deve ser um texto"
	msgExpectedBool   = "Deve ser verdadeiro ou falso"
)

// FieldErrors maps a submission field to its validation messages, in rule order.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Error renders the errors sorted by field, for logs.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(fe[field], "; ")))
	}
	return strings.Join(parts, ", ")
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindOptionalString
	kindBool
)

type fieldSpec struct {
	name string
	kind fieldKind
}

// fields fixes the shape of a submission.
var fields = []fieldSpec{
	{FieldName, kindString},
	{FieldDateOfBirth, kindString},
	{FieldPhotoURL, kindOptionalString},
	{FieldGender, kindString},
	{FieldStudentGenderPreference, kindString},
	{FieldAcademies, kindString},
	{FieldResidentialAvailable, kindBool},
	{FieldCref, kindString},
	{FieldCrefValidity, kindString},
	{FieldWhatsapp, kindString},
	{FieldEmail, kindString},
	{FieldInstagram, kindOptionalString},
	{FieldContactConsent, kindBool},
}

type fieldRule struct {
	field   string
	tag     string
	message string
}

// rules are the constraints checked once every field has the right type.
// A field may carry several rules; each failing rule adds its message.
var rules = []fieldRule{
	{FieldName, fmt.Sprintf("min=%d", NameMinLen), "Nome é obrigatório"},
	{FieldDateOfBirth, "calendardate", "Data inválida"},
	{FieldGender, "oneof=" + joinValues(interfaces.Genders), "Selecione o sexo"},
	{FieldStudentGenderPreference, "oneof=" + joinValues(interfaces.StudentGenderPreferences), "Selecione uma preferência"},
	{FieldAcademies, fmt.Sprintf("min=%d", AcademiesMinLen), "Informe as academias"},
	{FieldCref, fmt.Sprintf("min=%d", CrefMinLen), "CREF inválido"},
	{FieldCref, fmt.Sprintf("max=%d", CrefMaxLen), "CREF muito longo"},
	{FieldCrefValidity, "calendardate", "Data inválida"},
	{FieldWhatsapp, fmt.Sprintf("min=%d", WhatsappMinLen), "WhatsApp inválido"},
	{FieldEmail, "email", "Email inválido"},
	{FieldContactConsent, "eq=true", "É necessário autorizar o contato"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

func joinValues[T ~string](values []T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, " ")
}

// Validate checks a decoded JSON submission and converts it into a
// TrainerApplication. String values are trimmed before any rule runs, empty
// optional strings become absent, and both dates are coerced to UTC midnight.
//
// Malformed input never panics: missing fields, wrong JSON types and broken
// constraints are all reported through FieldErrors. The returned
// application has no ID or CreatedAt; those belong to persistence.
func Validate(input map[string]any) (*interfaces.TrainerApplication, FieldErrors) {
	errs := FieldErrors{}
	strs := make(map[string]string, len(fields))
	bools := make(map[string]bool, 2)

	for _, f := range fields {
		raw, present := input[f.name]
		if !present || raw == nil {
			if f.kind != kindOptionalString {
				errs.Add(f.name, msgRequired)
			}
			continue
		}

		switch f.kind {
		case kindString, kindOptionalString:
			s, ok := raw.(string)
			if !ok {
				errs.Add(f.name, msgExpectedString)
				continue
			}
			strs[f.name] = strings.TrimSpace(s)
		case kindBool:
			b, ok := raw.(bool)
			if !ok {
				errs.Add(f.name, msgExpectedBool)
				continue
			}
			bools[f.name] = b
		}
	}

	for _, r := range rules {
		var value any
		if s, ok := strs[r.field]; ok {
			value = s
		} else if b, ok := bools[r.field]; ok {
			value = b
		} else {
			continue
		}
		if err := validate.Var(value, r.tag); err != nil {
			errs.Add(r.field, r.message)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// Both parse: the calendardate rule passed.
	dob, _ := ParseDate(strs[FieldDateOfBirth])
	crefValidity, _ := ParseDate(strs[FieldCrefValidity])

	return &interfaces.TrainerApplication{
		Name:                    strs[FieldName],
		DateOfBirth:             dob,
		PhotoURL:                optional(strs, FieldPhotoURL),
		Gender:                  interfaces.Gender(strs[FieldGender]),
		StudentGenderPreference: interfaces.StudentGenderPreference(strs[FieldStudentGenderPreference]),
		Academies:               strs[FieldAcademies],
		ResidentialAvailable:    bools[FieldResidentialAvailable],
		Cref:                    strs[FieldCref],
		CrefValidity:            crefValidity,
		Whatsapp:                strs[FieldWhatsapp],
		Email:                   strs[FieldEmail],
		Instagram:               optional(strs, FieldInstagram),
		ContactConsent:          bools[FieldContactConsent],
	}, nil
}

func optional(strs map[string]string, field string) *string {
	s, ok := strs[field]
	if !ok || s == "" {
		return nil
	}
	return &s
}
