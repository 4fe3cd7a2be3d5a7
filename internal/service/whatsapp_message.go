package service

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/akoudje/appfbo-backend/internal/models"
)

const whatsappLinkBase = "https://wa.me/"

// BuildWhatsAppMessage 生成开票消息文本（按行拼接）
func BuildWhatsAppMessage(preorder *models.Preorder, items []PricedLine, totals PreorderTotals) string {
	lines := make([]string, 0, 16+len(items))
	lines = append(lines,
		"- PRÉCOMMANDE FLP CI -",
		fmt.Sprintf("Précommande N° : %s", preorder.ID),
		fmt.Sprintf("FBO: %s", preorder.FboNumber),
		fmt.Sprintf("Nom: %s", preorder.FboFullName),
		fmt.Sprintf("Grade: %s", preorder.FboGrade),
		fmt.Sprintf("Mode de livraison: %s", preorder.DeliveryMode),
		fmt.Sprintf("Mode de Paiement: %s", preorder.PaymentMode),
		"",
		" Produits demandé :",
	)
	for _, item := range items {
		// 行 CC 去掉末尾 0，例如 0.250 -> 0.25
		lines = append(lines, fmt.Sprintf("- x%d %s | %d FCFA | %s CC",
			item.Qty, item.Name, item.LineTotal, item.LineTotalCC.Decimal.String()))
	}
	lines = append(lines,
		"",
		" Totaux:",
		fmt.Sprintf("Produits: %d FCFA", totals.TotalProducts),
		fmt.Sprintf("Livraison: %d FCFA", totals.DeliveryFee),
		fmt.Sprintf("GLOBAL: %d FCFA", totals.Total),
	)
	return strings.Join(lines, "\n")
}

// BuildWhatsAppLink 生成 wa.me 深链，号码仅保留数字
func BuildWhatsAppLink(phone, message string) string {
	return whatsappLinkBase + digitsOnly(phone) + "?text=" + encodeURIComponent(message)
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeURIComponent 与浏览器同名函数一致：
// 仅保留 A-Z a-z 0-9 - _ . ! ~ * ' ( )，空格编码为 %20
func encodeURIComponent(raw string) string {
	escaped := url.QueryEscape(raw)
	return componentUnescaper.Replace(escaped)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
