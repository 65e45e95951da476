package dto

// SearchTaxonomyParams defines query parameters for taxonomy search.
type SearchTaxonomyParams struct {
	Query string `form:"q"`
	Limit int    `form:"limit"`
}

// ImportTaxonomyParams defines query parameters for a taxonomy import.
type ImportTaxonomyParams struct {
	Delimiter  string  `form:"delimiter"`
	VersionTag *string `form:"version_tag"`
}
