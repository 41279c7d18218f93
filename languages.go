package transly

import "strings"

// LanguageNames maps base language codes to English names, for provider
// prompts and cache listings.
var LanguageNames = map[string]string{
	"af": "Afrikaans",
	"ar": "Arabic",
	"bg": "Bulgarian",
	"bn": "Bengali",
	"ca": "Catalan",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"et": "Estonian",
	"fa": "Persian",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hi": "Hindi",
	"hr": "Croatian",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"ms": "Malay",
	"nb": "Norwegian Bokmål",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sr": "Serbian",
	"sv": "Swedish",
	"sw": "Swahili",
	"th": "Thai",
	"tl": "Tagalog",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"ur": "Urdu",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

// regionalNames covers locales whose written form differs enough from the
// base language to matter to a translator.
var regionalNames = map[string]string{
	"en_gb": "English (United Kingdom)",
	"en_us": "English (United States)",
	"es_mx": "Spanish (Mexico)",
	"pt_br": "Portuguese (Brazil)",
	"pt_pt": "Portuguese (Portugal)",
	"zh_cn": "Chinese (Simplified)",
	"zh_tw": "Chinese (Traditional)",
}

// GetLanguageName returns a human-readable name for a language code such as
// "fr", "pt-BR" or "zh_TW". Unknown codes are returned unchanged.
func GetLanguageName(langCode string) string {
	locale := strings.ToLower(NormalizeLocale(langCode))
	if name, ok := regionalNames[locale]; ok {
		return name
	}
	if name, ok := LanguageNames[BaseLanguage(langCode)]; ok {
		return name
	}
	return langCode
}

// NormalizeLocale converts a language code to the underscore form (e.g., "es-ES" → "es_ES").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(strings.TrimSpace(langCode), "-", "_")
}

// BaseLanguage extracts the lower-case base code (e.g., "pt" from "pt-BR").
func BaseLanguage(langCode string) string {
	base, _, _ := strings.Cut(NormalizeLocale(langCode), "_")
	return strings.ToLower(base)
}
