// Package schemas embeds the JSON Schema files that describe persisted data.
package schemas

import _ "embed"

// SiteDocumentFile is the file name of the site document schema.
const SiteDocumentFile = "site_document.schema.json"

// SiteDocument is the JSON Schema for the stored and exported site document.
//
//go:embed site_document.schema.json
var SiteDocument []byte
