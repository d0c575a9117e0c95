package interfaces

import (
	"time"
)

// Gender is the trainer's self-declared gender.
type Gender string

const (
	GenderMale   Gender = "masculino"
	GenderFemale Gender = "feminino"
	GenderOther  Gender = "outro"
)

// Genders lists the accepted Gender values in form order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// StudentGenderPreference describes which students a trainer is willing to take.
type StudentGenderPreference string

const (
	PreferenceOnlyMale            StudentGenderPreference = "somente_masculino"
	PreferenceOnlyFemale          StudentGenderPreference = "somente_feminino"
	PreferenceEveryone            StudentGenderPreference = "todos"
	PreferenceEveryonePreferWomen StudentGenderPreference = "todos_pref_mulher"
	PreferenceEveryonePreferMen   StudentGenderPreference = "todos_pref_homem"
)

// StudentGenderPreferences lists the accepted StudentGenderPreference values in form order.
var StudentGenderPreferences = []StudentGenderPreference{
	PreferenceOnlyMale,
	PreferenceOnlyFemale,
	PreferenceEveryone,
	PreferenceEveryonePreferWomen,
	PreferenceEveryonePreferMen,
}

// TrainerApplication is a single personal-trainer registration.
//
// Records are created once by the intake endpoint and never updated or deleted.
// Cref is unique across all records; the storage layer enforces it.
type TrainerApplication struct {
	ID                      string                  `json:"id"`
	Name                    string                  `json:"name"`
	DateOfBirth             time.Time               `json:"dateOfBirth"`
	PhotoURL                *string                 `json:"photoUrl,omitempty"`
	Gender                  Gender                  `json:"gender"`
	StudentGenderPreference StudentGenderPreference `json:"studentGenderPreference"`
	Academies               string                  `json:"academies"`
	ResidentialAvailable    bool                    `json:"residentialAvailable"`
	Cref                    string                  `json:"cref"`
	CrefValidity            time.Time               `json:"crefValidity"`
	Whatsapp                string                  `json:"whatsapp"`
	Email                   string                  `json:"email"`
	Instagram               *string                 `json:"instagram,omitempty"`
	ContactConsent          bool                    `json:"contactConsent"`
	CreatedAt               time.Time               `json:"createdAt"`
}
