package registration

import "github.com/ruteri/trainer-intake/interfaces"

// Option is a select entry on the registration form.
type Option struct {
	Value string
	Label string
}

var genderLabels = map[interfaces.Gender]string{
	interfaces.GenderMale:   "Masculino",
	interfaces.GenderFemale: "Feminino",
	interfaces.GenderOther:  "Outro",
}

var preferenceLabels = map[interfaces.StudentGenderPreference]string{
	interfaces.PreferenceOnlyMale:            "Somente sexo masculino",
	interfaces.PreferenceOnlyFemale:          "Somente sexo feminino",
	interfaces.PreferenceEveryone:            "Todos os sexos",
	interfaces.PreferenceEveryonePreferWomen: "Todos, mas prefiro mulher",
	interfaces.PreferenceEveryonePreferMen:   "Todos, mas prefiro homem",
}

// FormSchema carries the constraints the HTML form renders as input
// attributes. It is built from the same constants Validate enforces.
type FormSchema struct {
	NameMinLen         int
	AcademiesMinLen    int
	CrefMinLen         int
	CrefMaxLen         int
	WhatsappMinLen     int
	GenderOptions      []Option
	PreferenceOptions  []Option
	AcceptedDateLayout string
}

// Form returns the schema for rendering the registration form.
func Form() FormSchema {
	genders := make([]Option, 0, len(interfaces.Genders))
	for _, g := range interfaces.Genders {
		genders = append(genders, Option{Value: string(g), Label: genderLabels[g]})
	}
	prefs := make([]Option, 0, len(interfaces.StudentGenderPreferences))
	for _, p := range interfaces.StudentGenderPreferences {
		prefs = append(prefs, Option{Value: string(p), Label: preferenceLabels[p]})
	}
	return FormSchema{
		NameMinLen:         NameMinLen,
		AcademiesMinLen:    AcademiesMinLen,
		CrefMinLen:         CrefMinLen,
		CrefMaxLen:         CrefMaxLen,
		WhatsappMinLen:     WhatsappMinLen,
		GenderOptions:      genders,
		PreferenceOptions:  prefs,
		AcceptedDateLayout: DateLayouts[0],
	}
}
