package models

// TaxonomyNode is a row of ledger.taxonomy_nodes.
type TaxonomyNode struct {
	Code          string      `db:"code"`
	Title         string      `db:"title"`
	TitleEn       *string     `db:"title_en"`
	Level         int         `db:"level"`
	ParentCode    *string     `db:"parent_code"`
	AccountType   AccountType `db:"account_type"`
	FunctionLabel *string     `db:"function_label"`
	IsPostable    bool        `db:"is_postable"`
	VersionTag    *string     `db:"version_tag"`
	Timestamps
}
