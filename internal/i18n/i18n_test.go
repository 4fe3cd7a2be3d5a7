package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                        LocaleFR,
		"en-US,en;q=0.9":          LocaleEN,
		"fr-CI":                   LocaleFR,
		"de-DE":                   LocaleFR,
		"en":                      LocaleEN,
		"zz;;invalid":             LocaleFR,
		"de-DE,en;q=0.8,fr;q=0.5": LocaleEN,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/products?lang=en", nil)
	c.Request.Header.Set("Accept-Language", "fr-FR")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestTranslationFallbacks(t *testing.T) {
	if got := T(LocaleEN, "error.preorder_not_found"); got != "Preorder not found" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("xx", "error.preorder_not_found"); got != "Précommande introuvable" {
		t.Fatalf("unexpected fallback message: %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key must echo the key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.rate_limited", 30); got != "Too many requests, retry in 30 seconds" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestCatalogsShareKeys(t *testing.T) {
	for key := range messagesFR {
		if _, ok := messagesEN[key]; !ok {
			t.Fatalf("english catalog misses %s", key)
		}
	}
	for key := range messagesEN {
		if _, ok := messagesFR[key]; !ok {
			t.Fatalf("french catalog misses %s", key)
		}
	}
}
