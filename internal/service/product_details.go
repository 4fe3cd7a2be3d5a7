package service

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	detailsMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	detailsPolicy   = newProductDetailsPolicy()
)

func newProductDetailsPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// RenderProductDetails 将 Markdown 详情渲染为净化后的 HTML
func RenderProductDetails(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := detailsMarkdown.Convert([]byte(raw), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(detailsPolicy.Sanitize(buf.String())), nil
}
