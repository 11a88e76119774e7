package pkg

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText 去掉标签后还原实体，入库的是纯文本，转义交给渲染端
func SanitizeText(s string) string {
	return strings.TrimSpace(stripTags(s))
}

// SanitizeTitle 同 SanitizeText，并把换行和连续空白压成一个空格
func SanitizeTitle(s string) string {
	return strings.Join(strings.Fields(stripTags(s)), " ")
}

func stripTags(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
