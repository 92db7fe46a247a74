// Package catalog holds the fixed mapping from the public product catalog
// (name, sku, upc, type, manufacturer, model, price, url, image, category,
// shipping) to the retail ingestion schema (id, title, name, categories,
// priceInfo, images).
package catalog

import (
	"retailprep/internal/transformer"
	"retailprep/internal/transformer/builtin"
	"retailprep/pkg/records"
)

// Target schema fields.
const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldName       = "name"
	FieldCategories = "categories"
	FieldPriceInfo  = "priceInfo"
	FieldImages     = "images"
)

// CurrencyCode is attached to every priceInfo.
const CurrencyCode = "USD"

// TargetFields lists the ingestion fields in the order they are written.
var TargetFields = []string{
	FieldID,
	FieldTitle,
	FieldName,
	FieldCategories,
	FieldPriceInfo,
	FieldImages,
}

// DroppedFields are removed after the derivations that read them. gtin,
// category and shipping are never read.
var DroppedFields = []string{
	"price",
	"manufacturer",
	"model",
	"url",
	"image",
	"category",
	"shipping",
	"gtin",
}

// Renames maps source field names to their ingestion names.
var Renames = map[string]string{
	"name": FieldTitle,
	"sku":  FieldID,
	"upc":  "gtin",
	"type": FieldCategories,
}

// Mapping returns the transformer chain that rewrites source records into
// ingestion records. Every step that reads a field runs before the Drop that
// removes it. Completeness filtering is not part of the mapping.
func Mapping() transformer.Chain {
	return transformer.Chain{
		builtin.Rename{Fields: Renames},
		builtin.WrapList{Field: FieldCategories, Accept: records.KindString},
		builtin.Join{
			Target:  FieldName,
			Sources: []string{FieldTitle, "manufacturer", "model"},
			Sep:     " ",
		},
		builtin.Nest{
			Target: FieldPriceInfo,
			Source: "price",
			Key:    "price",
			Static: map[string]any{"currencyCode": CurrencyCode},
			Accept: records.KindNumber,
		},
		builtin.Nest{
			Target: FieldImages,
			Source: "image",
			Key:    "uri",
			Accept: records.KindString,
		},
		builtin.WrapList{Field: FieldImages, Accept: records.KindObject},
		builtin.Stringify{Fields: []string{FieldID}},
		builtin.Drop{Fields: DroppedFields},
	}
}
