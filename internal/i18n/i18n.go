package i18n

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言，优先级：query > header > 默认
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	if locale := normalizeLocale(c.GetHeader("Accept-Language")); locale != "" {
		return locale
	}
	return constants.LocaleEnUS
}

// T 按语言查找消息文案，查不到时回退英文，再回退键名
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言查找带占位符的文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// Accept-Language 可能携带权重串，只取第一段
	if idx := strings.IndexAny(raw, ",;"); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimSpace(raw)
	for _, locale := range constants.SupportedLocales {
		if strings.EqualFold(raw, locale) {
			return locale
		}
	}
	// 仅语言前缀匹配，例如 "zh" 命中 "zh-CN"
	if idx := strings.Index(raw, "-"); idx > 0 {
		raw = raw[:idx]
	}
	for _, locale := range constants.SupportedLocales {
		if strings.EqualFold(raw, locale[:strings.Index(locale, "-")]) {
			return locale
		}
	}
	return ""
}
