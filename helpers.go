package maru

import "strings"

// FullNameFromFirstAndLastName joins the name parts Telegram hands us into a
// single display name, tolerating either part being empty.
func FullNameFromFirstAndLastName(firstName string, lastName string) string {
	parts := make([]string, 0, 2)

	if firstName != "" {
		parts = append(parts, firstName)
	}
	if lastName != "" {
		parts = append(parts, lastName)
	}

	return strings.Join(parts, " ")
}
