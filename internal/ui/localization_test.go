package ui

import (
	"strings"
	"testing"
)

func TestLocalization_AllLanguagesHaveAllKeys(t *testing.T) {
	l := NewLocalization()

	for key := range l.texts[LangEN] {
		for lang := range l.GetAvailableLanguages() {
			if _, ok := l.texts[lang][key]; !ok {
				t.Errorf("language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage(LangRU)
	if l.GetCurrentLanguage() != LangRU {
		t.Errorf("GetCurrentLanguage() = %s, expected %s", l.GetCurrentLanguage(), LangRU)
	}
	if got := l.GetText(KeyQuit); got != "Выход" {
		t.Errorf("GetText(KeyQuit) = %q, expected Russian text", got)
	}

	// Unknown languages keep the current one
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != LangRU {
		t.Errorf("unknown language changed current language to %s", l.GetCurrentLanguage())
	}

	l.SetLanguage(LangSystem)
	if _, ok := l.GetAvailableLanguages()[l.GetCurrentLanguage()]; !ok {
		t.Errorf("system language resolved to unsupported %q", l.GetCurrentLanguage())
	}
}

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("missing key should return itself, got %q", got)
	}

	delete(l.texts[LangPT], KeyQuit)
	l.SetLanguage(LangPT)
	if got := l.GetText(KeyQuit); got != "Quit" {
		t.Errorf("missing translation should fall back to English, got %q", got)
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()

	got := l.Format(KeyRemoteNotFoundMessage, "mydrive")
	if !strings.Contains(got, "'mydrive'") {
		t.Errorf("Format() = %q, expected the remote name", got)
	}

	got = l.Format(KeyInvalidInterval, MinRefreshMinutes, MaxRefreshMinutes)
	if !strings.Contains(got, "1") || !strings.Contains(got, "1440") {
		t.Errorf("Format() = %q, expected the limits", got)
	}
}
