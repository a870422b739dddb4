// Package locale supplies the current UI language to widgets and normalises it
// into the locale identifier form editors expect (`en_US`, `sr_Latn`).
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is reported when no provider is configured.
const DefaultLanguage = "en-us"

// Provider reports the active UI language for the current request.
type Provider interface {
	CurrentLocale() string
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() string

// CurrentLocale implements Provider.
func (fn ProviderFunc) CurrentLocale() string {
	return fn()
}

// Static returns a provider that always reports the same language.
func Static(lang string) Provider {
	return ProviderFunc(func() string { return lang })
}

// Default returns the provider used when callers do not supply one.
func Default() Provider {
	return Static(DefaultLanguage)
}

// Current resolves the normalised locale from the provider, falling back to
// DefaultLanguage for nil providers or empty values.
func Current(provider Provider) string {
	lang := ""
	if provider != nil {
		lang = provider.CurrentLocale()
	}
	if strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}
	return ToLocale(lang)
}

// ToLocale turns a language tag (`en-us`, `pt-BR`, `sr-latn`) into a locale
// identifier (`en_US`, `pt_BR`, `sr_Latn`). Only case and separators change;
// deprecated codes such as `iw` are kept as reported.
func ToLocale(lang string) string {
	trimmed := strings.TrimSpace(lang)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Raw.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return splitLocale(trimmed)
	}
	return strings.ReplaceAll(tag.String(), "-", "_")
}

// splitLocale applies the plain language/country rule for tags the parser
// rejects: lowercase language, uppercase two-letter country, title-case
// longer subtags.
func splitLocale(lang string) string {
	lang = strings.ReplaceAll(lang, "_", "-")
	parts := strings.SplitN(lang, "-", 2)
	head := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return head
	}
	tail := parts[1]
	if len(tail) > 2 {
		tail = strings.ToUpper(tail[:1]) + strings.ToLower(tail[1:])
	} else {
		tail = strings.ToUpper(tail)
	}
	return head + "_" + tail
}
