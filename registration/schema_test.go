package registration

import (
	"testing"
	"time"

	"github.com/ruteri/trainer-intake/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() map[string]any {
	return map[string]any{
		"name":                    "Maria Souza",
		"dateOfBirth":             "1990-05-17",
		"gender":                  "feminino",
		"studentGenderPreference": "todos_pref_mulher",
		"academies":               "Ironberg, Bluefit",
		"residentialAvailable":    true,
		"cref":                    "012345-G/SP",
		"crefValidity":            "31/12/2027",
		"whatsapp":                "(11) 99999-9999",
		"email":                   "maria@example.com",
		"instagram":               "@maria",
		"contactConsent":          true,
	}
}

func TestValidate_Success(t *testing.T) {
	app, errs := Validate(validSubmission())
	require.Nil(t, errs)
	require.NotNil(t, app)

	assert.Equal(t, "Maria Souza", app.Name)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), app.DateOfBirth)
	assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), app.CrefValidity)
	assert.Equal(t, interfaces.GenderFemale, app.Gender)
	assert.Equal(t, interfaces.PreferenceEveryonePreferWomen, app.StudentGenderPreference)
	assert.True(t, app.ResidentialAvailable)
	assert.True(t, app.ContactConsent)
	require.NotNil(t, app.Instagram)
	assert.Equal(t, "@maria", *app.Instagram)
	assert.Nil(t, app.PhotoURL)
	assert.Empty(t, app.ID)
}

func TestValidate_TrimsAndDropsEmptyOptionals(t *testing.T) {
	in := validSubmission()
	in["name"] = "  Ana  "
	in["instagram"] = "   "
	in["photoUrl"] = "https://cdn.example.com/p.png"

	app, errs := Validate(in)
	require.Nil(t, errs)
	assert.Equal(t, "Ana", app.Name)
	assert.Nil(t, app.Instagram)
	require.NotNil(t, app.PhotoURL)
	assert.Equal(t, "https://cdn.example.com/p.png", *app.PhotoURL)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	required := []string{
		FieldName, FieldDateOfBirth, FieldGender, FieldStudentGenderPreference,
		FieldAcademies, FieldResidentialAvailable, FieldCref, FieldCrefValidity,
		FieldWhatsapp, FieldEmail, FieldContactConsent,
	}

	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			in := validSubmission()
			delete(in, field)

			app, errs := Validate(in)
			assert.Nil(t, app)
			require.Contains(t, errs, field)
			assert.Equal(t, []string{msgRequired}, errs[field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidate_OptionalFieldsMayBeAbsent(t *testing.T) {
	in := validSubmission()
	delete(in, FieldInstagram)
	in[FieldPhotoURL] = nil

	app, errs := Validate(in)
	require.Nil(t, errs)
	assert.Nil(t, app.Instagram)
	assert.Nil(t, app.PhotoURL)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{"short name", FieldName, "A", "Nome é obrigatório"},
		{"blank name", FieldName, "   ", "Nome é obrigatório"},
		{"invalid calendar date", FieldDateOfBirth, "31/02/2024", "Data inválida"},
		{"invalid iso date", FieldCrefValidity, "2024-02-30", "Data inválida"},
		{"garbage date", FieldDateOfBirth, "ontem", "Data inválida"},
		{"unknown gender", FieldGender, "masc", "Selecione o sexo"},
		{"unknown preference", FieldStudentGenderPreference, "nenhum", "Selecione uma preferência"},
		{"empty academies", FieldAcademies, "", "Informe as academias"},
		{"short cref", FieldCref, "123", "CREF inválido"},
		{"long cref", FieldCref, "123456789012345678901", "CREF muito longo"},
		{"short whatsapp", FieldWhatsapp, "119999", "WhatsApp inválido"},
		{"bad email", FieldEmail, "maria@", "Email inválido"},
		{"consent refused", FieldContactConsent, false, "É necessário autorizar o contato"},
		{"string name expected", FieldName, 42.0, msgExpectedString},
		{"bool consent expected", FieldContactConsent, "true", msgExpectedBool},
		{"bool residential expected", FieldResidentialAvailable, 1.0, msgExpectedBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmission()
			in[tt.field] = tt.value

			app, errs := Validate(in)
			assert.Nil(t, app)
			assert.Equal(t, FieldErrors{tt.field: {tt.message}}, errs)
		})
	}
}

func TestValidate_CrefBounds(t *testing.T) {
	for _, cref := range []string{"1234", "12345678901234567890"} {
		in := validSubmission()
		in[FieldCref] = cref
		_, errs := Validate(in)
		assert.Nil(t, errs, cref)
	}
}

func TestValidate_ResidentialAcceptsFalse(t *testing.T) {
	in := validSubmission()
	in[FieldResidentialAvailable] = false

	app, errs := Validate(in)
	require.Nil(t, errs)
	assert.False(t, app.ResidentialAvailable)
}

func TestValidate_CollectsEveryField(t *testing.T) {
	app, errs := Validate(map[string]any{})
	assert.Nil(t, app)
	assert.Len(t, errs, 11)
	assert.NotContains(t, errs, FieldInstagram)
	assert.NotContains(t, errs, FieldPhotoURL)
}

func TestFieldErrors_Error(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "Email inválido")
	errs.Add("cref", "CREF inválido")
	errs.Add("cref", "outro")
	assert.Equal(t, "cref: CREF inválido; outro, email: Email inválido", errs.Error())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{in: "29/02/2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{in: " 01/03/2024 ", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T23:30:00-03:00", want: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T20:59:00-03:00", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T01:00:00+05:00", want: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T10:00:00.123Z", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{in: "29/02/2023", wantErr: true},
		{in: "31/02/2024", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_MatchesValidation(t *testing.T) {
	f := Form()
	assert.Equal(t, CrefMinLen, f.CrefMinLen)
	assert.Equal(t, CrefMaxLen, f.CrefMaxLen)
	require.Len(t, f.GenderOptions, len(interfaces.Genders))
	require.Len(t, f.PreferenceOptions, len(interfaces.StudentGenderPreferences))

	for _, opt := range f.GenderOptions {
		in := validSubmission()
		in[FieldGender] = opt.Value
		_, errs := Validate(in)
		assert.Nil(t, errs, opt.Value)
		assert.NotEmpty(t, opt.Label)
	}
	for _, opt := range f.PreferenceOptions {
		in := validSubmission()
		in[FieldStudentGenderPreference] = opt.Value
		_, errs := Validate(in)
		assert.Nil(t, errs, opt.Value)
	}
}
