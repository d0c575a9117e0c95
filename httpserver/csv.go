package httpserver

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ruteri/trainer-intake/interfaces"
)

const (
	csvFilename   = "personal-agora-cadastros.csv"
	csvTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

var csvHeader = []string{
	"createdAt",
	"name",
	"whatsapp",
	"email",
	"cref",
	"crefValidity",
	"academies",
	"residentialAvailable",
	"gender",
	"studentGenderPreference",
	"instagram",
	"photoUrl",
	"contactConsent",
	"dateOfBirth",
	"id",
}

// csvEscape quotes v only when it contains a comma, a double quote or a line
// break. Inner quotes are doubled.
func csvEscape(v string) string {
	if !strings.ContainsAny(v, ",\"\r\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func csvTime(t time.Time) string {
	return t.UTC().Format(csvTimeLayout)
}

func csvOptional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func csvRecord(app *interfaces.TrainerApplication) []string {
	return []string{
		csvTime(app.CreatedAt),
		app.Name,
		app.Whatsapp,
		app.Email,
		app.Cref,
		csvTime(app.CrefValidity),
		app.Academies,
		strconv.FormatBool(app.ResidentialAvailable),
		string(app.Gender),
		string(app.StudentGenderPreference),
		csvOptional(app.Instagram),
		csvOptional(app.PhotoURL),
		strconv.FormatBool(app.ContactConsent),
		csvTime(app.DateOfBirth),
		app.ID,
	}
}

func csvLine(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = csvEscape(v)
	}
	return strings.Join(escaped, ",")
}

// writeCSV writes the header and one line per application. Lines are
// separated by CRLF with no trailing line break.
func writeCSV(w io.Writer, apps []interfaces.TrainerApplication) error {
	if _, err := io.WriteString(w, csvLine(csvHeader)); err != nil {
		return err
	}
	for i := range apps {
		if _, err := io.WriteString(w, "\r\n"+csvLine(csvRecord(&apps[i]))); err != nil {
			return err
		}
	}
	return nil
}
