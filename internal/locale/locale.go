// Package locale renders date/time values as ordered part lists and
// display strings. It carries only the locale data that drives
// formatting decisions: field order, separators, default hour cycle and
// first day of week. Month and weekday names are English; full CLDR
// data is out of scope.
package locale

import "strings"

// Info is the per-locale formatting profile.
type Info struct {
	// Order is the date field order: "mdy", "dmy" or "ymd".
	Order string
	// Separator joins the date fields in formatted output.
	Separator string
	// Hour12 is the locale's default hour cycle.
	Hour12 bool
	// FirstDayOfWeek is the week start, Sunday = 0.
	FirstDayOfWeek int
}

var localeTable = map[string]Info{
	"en-US": {Order: "mdy", Separator: "/", Hour12: true, FirstDayOfWeek: 0},
	"en-CA": {Order: "ymd", Separator: "-", Hour12: true, FirstDayOfWeek: 0},
	"en-GB": {Order: "dmy", Separator: "/", Hour12: false, FirstDayOfWeek: 1},
	"de-DE": {Order: "dmy", Separator: ".", Hour12: false, FirstDayOfWeek: 1},
	"fr-FR": {Order: "dmy", Separator: "/", Hour12: false, FirstDayOfWeek: 1},
	"es-ES": {Order: "dmy", Separator: "/", Hour12: false, FirstDayOfWeek: 1},
	"nb-NO": {Order: "dmy", Separator: ".", Hour12: false, FirstDayOfWeek: 1},
	"ja-JP": {Order: "ymd", Separator: "/", Hour12: false, FirstDayOfWeek: 0},
	"zh-CN": {Order: "ymd", Separator: "/", Hour12: false, FirstDayOfWeek: 1},
}

var languageDefaults = map[string]string{
	"en": "en-US",
	"de": "de-DE",
	"fr": "fr-FR",
	"es": "es-ES",
	"nb": "nb-NO",
	"ja": "ja-JP",
	"zh": "zh-CN",
}

// Lookup resolves a BCP 47 tag to a formatting profile, falling back
// first to the language's default region and then to a generic
// day-month-year 24-hour profile.
func Lookup(tag string) Info {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if info, ok := localeTable[tag]; ok {
		return info
	}
	lang, _, _ := strings.Cut(tag, "-")
	lang = strings.ToLower(lang)
	if full, ok := languageDefaults[lang]; ok {
		return localeTable[full]
	}
	return Info{Order: "dmy", Separator: "/", Hour12: false, FirstDayOfWeek: 1}
}
