package cms

import "strings"

// MapLocale converts an application locale ("ka-ge") into the CMS form
// ("ka-GE"). Only the language and region parts are kept; input without a
// hyphen is returned unchanged.
func MapLocale(locale string) string {
	if !strings.Contains(locale, "-") {
		return locale
	}
	parts := strings.Split(locale, "-")
	return parts[0] + "-" + strings.ToUpper(parts[1])
}
