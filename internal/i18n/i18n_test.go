package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalize(t *testing.T) {
	t.Run("english by default", func(t *testing.T) {
		got := Localize("", "INVALID_CREDENTIALS", nil)
		assert.Equal(t, "invalid credentials", got)
	})

	t.Run("renders template args", func(t *testing.T) {
		got := Localize("en", "INVALID_TEAM_COUNT", map[string]string{
			"expected": "2", "received": "3",
		})
		assert.Equal(t, "expected 2 teams, received 3", got)
	})

	t.Run("brazilian portuguese", func(t *testing.T) {
		got := Localize("pt-BR", "INVALID_CREDENTIALS", nil)
		assert.Equal(t, ptBR["INVALID_CREDENTIALS"], got)
		assert.NotEqual(t, en["INVALID_CREDENTIALS"], got)
	})

	t.Run("spanish", func(t *testing.T) {
		got := Localize("es", "INVALID_CREDENTIALS", nil)
		assert.Equal(t, es["INVALID_CREDENTIALS"], got)
	})

	t.Run("weighted header picks the best match", func(t *testing.T) {
		got := Localize("es-MX;q=0.9, en;q=0.5", "INVALID_CREDENTIALS", nil)
		assert.Equal(t, es["INVALID_CREDENTIALS"], got)
	})

	t.Run("unknown locale falls back to english", func(t *testing.T) {
		got := Localize("ja", "INVALID_CREDENTIALS", nil)
		assert.Equal(t, "invalid credentials", got)
	})

	t.Run("garbage header falls back to english", func(t *testing.T) {
		got := Localize(";;;", "INVALID_CREDENTIALS", nil)
		assert.Equal(t, "invalid credentials", got)
	})

	t.Run("unknown code renders as itself", func(t *testing.T) {
		assert.Equal(t, "NO_SUCH_CODE", Localize("en", "NO_SUCH_CODE", nil))
	})
}

// Every code translated in a secondary catalog must exist in the base
// catalog, or fallback breaks for untranslated locales.
func TestCatalogCoverage(t *testing.T) {
	for name, catalog := range map[string]map[string]string{"pt-BR": ptBR, "es": es} {
		for code := range catalog {
			assert.Contains(t, en, code, "%s translates %s but en does not define it", name, code)
		}
	}
}
