package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// LocaleFR 默认语言
	LocaleFR = "fr"
	// LocaleEN 英文
	LocaleEN = "en"
	// DefaultLocale 缺省语言
	DefaultLocale = LocaleFR
)

var (
	supportedTags = []language.Tag{language.French, language.English}
	matcher       = language.NewMatcher(supportedTags)
	catalogs      = map[string]map[string]string{
		LocaleFR: messagesFR,
		LocaleEN: messagesEN,
	}
)

// NormalizeLocale 将任意语言标签归一为受支持的语言
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	base, _ := supportedTags[index].Base()
	return base.String()
}

// ResolveLocale 依次读取 lang 查询参数与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}

// T 查找文案，缺失时回退默认语言，再回退为 key
func T(locale, key string) string {
	if messages, ok := catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
