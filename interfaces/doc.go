// Package interfaces defines the domain types and the contracts between the
// trainer intake service and its collaborators.
//
// # Domain Types
//
// TrainerApplication is the only persisted entity. Gender and
// StudentGenderPreference are closed enumerations; the accepted values are
// listed in Genders and StudentGenderPreferences.
//
// # Storage
//
// TrainerStore is the relational storage capability: insert one record and
// list records newest first with an optional limit. Failures are reported
// through the ErrStorage* and ErrDuplicateCref sentinels so that the HTTP
// layer can map them to responses without knowing the driver.
//
// # External Collaborators
//
// PhotoStore hides the object storage used for trainer photos and Notifier
// the channel used to announce new registrations.
package interfaces
