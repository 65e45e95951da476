package domain

import (
	"strconv"
	"strings"
	"time"
)

// TaxonomyNode is one code of the external reference chart of accounts.
type TaxonomyNode struct {
	Code          string      `json:"code"`
	Title         string      `json:"title"`
	TitleEn       *string     `json:"title_en"`
	Level         int         `json:"level"`
	ParentCode    *string     `json:"parent_code"`
	AccountType   AccountType `json:"account_type"`
	FunctionLabel *string     `json:"function_label"`
	IsPostable    bool        `json:"is_postable"`
	VersionTag    *string     `json:"version_tag"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Nature is the debit/credit nature implied by the node's account type.
func (n TaxonomyNode) Nature() Nature {
	return n.AccountType.Nature()
}

// TaxonomyField is a canonical column of a taxonomy import source.
type TaxonomyField string

const (
	FieldCode          TaxonomyField = "code"
	FieldDescription   TaxonomyField = "description"
	FieldDescriptionEn TaxonomyField = "description_en"
	FieldLevel         TaxonomyField = "level"
	FieldParentCode    TaxonomyField = "parent_code"
	FieldAccountType   TaxonomyField = "account_type"
	FieldFunction      TaxonomyField = "function"
	FieldIsPostable    TaxonomyField = "is_postable"
)

// taxonomyHeaderSynonyms maps lower-cased header text (Dutch and English) to canonical fields.
var taxonomyHeaderSynonyms = map[string]TaxonomyField{
	"rgs-code":                FieldCode,
	"code":                    FieldCode,
	"rgs code":                FieldCode,
	"omschrijving":            FieldDescription,
	"naam":                    FieldDescription,
	"description":             FieldDescription,
	"description en":          FieldDescriptionEn,
	"omschrijving en":         FieldDescriptionEn,
	"name en":                 FieldDescriptionEn,
	"niveau":                  FieldLevel,
	"level":                   FieldLevel,
	"ouder":                   FieldParentCode,
	"parent":                  FieldParentCode,
	"parent code":             FieldParentCode,
	"rgs-code-ouder":          FieldParentCode,
	"balansmutatiesoort":      FieldAccountType,
	"balansmutatie":           FieldAccountType,
	"type":                    FieldAccountType,
	"categorie":               FieldAccountType,
	"soort grootboekrekening": FieldAccountType,
	"functie":                 FieldFunction,
	"function":                FieldFunction,
	"mutatiesoort":            FieldIsPostable,
	"boekbaar":                FieldIsPostable,
	"is leaf":                 FieldIsPostable,
	"is_leaf":                 FieldIsPostable,
}

// TaxonomyHeader maps canonical fields to column indexes of an import source.
type TaxonomyHeader map[TaxonomyField]int

// MapTaxonomyHeader resolves a header row. Unknown columns are ignored; when a field
// appears more than once the last column wins.
func MapTaxonomyHeader(row []string) TaxonomyHeader {
	header := make(TaxonomyHeader, len(row))
	for i, raw := range row {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if field, ok := taxonomyHeaderSynonyms[key]; ok {
			header[field] = i
		}
	}
	return header
}

// Missing returns the required fields (code, description) absent from the header.
func (h TaxonomyHeader) Missing() []TaxonomyField {
	var missing []TaxonomyField
	for _, f := range []TaxonomyField{FieldCode, FieldDescription} {
		if _, ok := h[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func (h TaxonomyHeader) cell(row []string, f TaxonomyField) (string, bool) {
	i, ok := h[f]
	if !ok {
		return "", false
	}
	if i >= len(row) {
		return "", true
	}
	return strings.TrimSpace(row[i]), true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeTaxonomyRow turns one data row into a node. ok is false when the row
// must be skipped (empty code or empty description).
func NormalizeTaxonomyRow(row []string, header TaxonomyHeader, versionTag *string) (TaxonomyNode, bool) {
	code, _ := header.cell(row, FieldCode)
	if code == "" {
		return TaxonomyNode{}, false
	}
	title, _ := header.cell(row, FieldDescription)
	if title == "" {
		return TaxonomyNode{}, false
	}

	node := TaxonomyNode{
		Code:       code,
		Title:      title,
		Level:      LevelFromCode(code),
		VersionTag: versionTag,
	}

	if en, ok := header.cell(row, FieldDescriptionEn); ok {
		node.TitleEn = optional(en)
	}
	if raw, ok := header.cell(row, FieldLevel); ok && isDigits(raw) {
		if lvl, err := strconv.Atoi(raw); err == nil {
			node.Level = lvl
		}
	}
	if parent, ok := header.cell(row, FieldParentCode); ok && parent != code {
		node.ParentCode = optional(parent)
	}

	node.AccountType = Memo
	if raw, ok := header.cell(row, FieldAccountType); ok {
		node.AccountType = AccountTypeFromKeywords(raw)
	}
	if node.AccountType == Memo {
		node.AccountType = AccountTypeFromCode(code)
	}

	if fn, ok := header.cell(row, FieldFunction); ok {
		node.FunctionLabel = optional(fn)
	}

	if raw, ok := header.cell(row, FieldIsPostable); ok {
		node.IsPostable = ParseBoolToken(raw)
	} else {
		node.IsPostable = strings.Count(code, ".") >= 2
	}

	return node, true
}

// LevelFromCode derives a hierarchy level from the number of dot separators (minimum 1).
func LevelFromCode(code string) int {
	return max(1, strings.Count(code, ".")+1)
}

// ParseBoolToken accepts the common truthy tokens 1, true, yes, ja and y (case-insensitive).
func ParseBoolToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "ja", "y":
		return true
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TaxonomyImportOptions controls how a delimited source is read.
type TaxonomyImportOptions struct {
	Delimiter  rune
	VersionTag *string
}

// TaxonomyImportResult counts rows created and rows overwritten by an import.
type TaxonomyImportResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}
