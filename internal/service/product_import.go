package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/akoudje/appfbo-backend/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gorm.io/gorm"
)

// ProductImportRow 导入行（原始字符串）
type ProductImportRow struct {
	SKU       string
	Name      string
	BasePrice string
	CC        string
	WeightKg  string
	Active    string
	ImageURL  string
	Category  string
	StockQty  string
}

// ProductImportRowError 单行校验错误
type ProductImportRowError struct {
	Index  int      `json:"index"`
	SKU    string   `json:"sku"`
	Errors []string `json:"errors"`
}

// ProductImportResult 导入结果
type ProductImportResult struct {
	TotalReceived int                     `json:"total_received"`
	TotalValid    int                     `json:"total_valid"`
	Created       int                     `json:"created"`
	Updated       int                     `json:"updated"`
	Errors        []ProductImportRowError `json:"errors"`
}

// 列名别名，兼容旧表格导出
var importColumnAliases = map[string]string{
	"sku":          "sku",
	"name":         "name",
	"nom":          "name",
	"base_price":   "base_price",
	"prixbasefcfa": "base_price",
	"prix":         "base_price",
	"cc":           "cc",
	"weight_kg":    "weight_kg",
	"poidskg":      "weight_kg",
	"poids":        "weight_kg",
	"active":       "active",
	"actif":        "active",
	"image_url":    "image_url",
	"imageurl":     "image_url",
	"category":     "category",
	"categorie":    "category",
	"stock_qty":    "stock_qty",
	"stockqty":     "stock_qty",
}

type importedProduct struct {
	sku       string
	name      string
	basePrice int64
	cc        models.Decimal3
	weightKg  models.Decimal3
	active    bool
	imageURL  string
	category  string
	stockQty  *int
}

// ImportRowFromMap 将 JSON 对象转换为导入行，数字与布尔值按文本处理
func ImportRowFromMap(raw map[string]interface{}) ProductImportRow {
	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		canonical, ok := importColumnAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			fields[canonical] = v
		case float64:
			fields[canonical] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			fields[canonical] = fmt.Sprint(v)
		}
	}
	return rowFromFields(fields)
}

func rowFromFields(fields map[string]string) ProductImportRow {
	return ProductImportRow{
		SKU:       fields["sku"],
		Name:      fields["name"],
		BasePrice: fields["base_price"],
		CC:        fields["cc"],
		WeightKg:  fields["weight_kg"],
		Active:    fields["active"],
		ImageURL:  fields["image_url"],
		Category:  fields["category"],
		StockQty:  fields["stock_qty"],
	}
}

// ParseProductCSV 解析 CSV（UTF-8 或 Windows-1252，逗号或分号分隔，首行为表头）
func ParseProductCSV(r io.Reader) ([]ProductImportRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProductImportInvalid, err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectCSVDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductImportInvalid, err)
	}
	if len(records) < 2 {
		return nil, ErrProductImportEmpty
	}

	columns := make([]string, len(records[0]))
	for i, header := range records[0] {
		columns[i] = importColumnAliases[strings.ToLower(strings.TrimSpace(header))]
	}
	rows := make([]ProductImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		fields := make(map[string]string, len(columns))
		for i, value := range record {
			if i < len(columns) && columns[i] != "" {
				fields[columns[i]] = value
			}
		}
		rows = append(rows, rowFromFields(fields))
	}
	return rows, nil
}

func detectCSVDelimiter(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func validateImportRow(row ProductImportRow) (importedProduct, []string) {
	var problems []string
	p := importedProduct{
		sku:      strings.TrimSpace(row.SKU),
		name:     strings.TrimSpace(row.Name),
		imageURL: strings.TrimSpace(row.ImageURL),
		category: strings.TrimSpace(row.Category),
		active:   true,
	}
	if p.sku == "" {
		problems = append(problems, "sku missing")
	}
	if p.name == "" {
		problems = append(problems, "name missing")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row.BasePrice))
	if err != nil || price.IsNegative() || !price.Equal(price.Truncate(0)) {
		problems = append(problems, "base_price invalid")
	} else {
		p.basePrice = price.IntPart()
	}
	if cc, err := parseDecimalField("cc", row.CC); err != nil {
		problems = append(problems, "cc invalid")
	} else {
		p.cc = cc
	}
	if weight, err := parseDecimalField("weight_kg", row.WeightKg); err != nil {
		problems = append(problems, "weight_kg invalid")
	} else {
		p.weightKg = weight
	}
	if raw := strings.ToLower(strings.TrimSpace(row.Active)); raw != "" {
		switch raw {
		case "true", "1", "oui", "yes":
			p.active = true
		case "false", "0", "non", "no":
			p.active = false
		default:
			problems = append(problems, "active invalid")
		}
	}
	if raw := strings.TrimSpace(row.StockQty); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			problems = append(problems, "stock_qty invalid")
		} else {
			p.stockQty = &qty
		}
	}
	return p, problems
}

// Import 逐行校验后按 SKU 批量新增或更新，单个事务内完成
func (s *ProductService) Import(ctx context.Context, rows []ProductImportRow) (*ProductImportResult, error) {
	result := &ProductImportResult{
		TotalReceived: len(rows),
		Errors:        make([]ProductImportRowError, 0),
	}
	if len(rows) == 0 {
		return result, ErrProductImportEmpty
	}

	valid := make([]importedProduct, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		p, problems := validateImportRow(row)
		if len(problems) > 0 {
			result.Errors = append(result.Errors, ProductImportRowError{Index: i + 1, SKU: p.sku, Errors: problems})
			continue
		}
		// 同一 SKU 多次出现时以最后一行为准
		if pos, ok := seen[p.sku]; ok {
			valid[pos] = p
			continue
		}
		seen[p.sku] = len(valid)
		valid = append(valid, p)
	}
	result.TotalValid = len(valid)
	if len(valid) == 0 {
		return result, ErrProductImportEmpty
	}

	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, p := range valid {
			existing, err := repo.GetBySKU(p.sku)
			if err != nil {
				return err
			}
			if existing == nil {
				product := &models.Product{
					SKU:       p.sku,
					Name:      p.name,
					BasePrice: p.basePrice,
					CC:        p.cc,
					WeightKg:  p.weightKg,
					Active:    p.active,
					ImageURL:  p.imageURL,
					Category:  p.category,
				}
				if p.stockQty != nil {
					product.StockQty = *p.stockQty
				}
				if err := repo.Create(product); err != nil {
					return err
				}
				result.Created++
				continue
			}
			existing.Name = p.name
			existing.BasePrice = p.basePrice
			existing.CC = p.cc
			existing.WeightKg = p.weightKg
			existing.Active = p.active
			existing.ImageURL = p.imageURL
			if p.category != "" {
				existing.Category = p.category
			}
			if p.stockQty != nil {
				existing.StockQty = *p.stockQty
			}
			if err := repo.Update(existing); err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return result, nil
}
