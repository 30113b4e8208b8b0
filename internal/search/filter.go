// internal/search/filter.go
package search

import (
	"strings"
)

var retrievedAttributes = []string{
	"objectID", "name", "description", "price", "imageUrl", "category", "tags", "createdBy",
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// BuildFilter always restricts to active records, then adds category name
// equality and an OR over tag names when present.
//
//	status:active AND category:"Books" AND (tags:"used" OR tags:"rare")
func BuildFilter(category string, tags []string) string {
	clauses := []string{"status:active"}

	if category = strings.TrimSpace(category); category != "" {
		clauses = append(clauses, `category:"`+quoteEscaper.Replace(category)+`"`)
	}

	var tagClauses []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tagClauses = append(tagClauses, `tags:"`+quoteEscaper.Replace(tag)+`"`)
		}
	}
	if len(tagClauses) > 0 {
		clauses = append(clauses, "("+strings.Join(tagClauses, " OR ")+")")
	}

	return strings.Join(clauses, " AND ")
}

// Diff returns the attributes that differ between two projections of the
// same product. A cleared category becomes nil and cleared tags an empty list.
func Diff(before, after Record) Fields {
	fields := Fields{}

	if before.Name != after.Name {
		fields["name"] = after.Name
	}
	if before.Description != after.Description {
		fields["description"] = after.Description
	}
	if before.Price != after.Price {
		fields["price"] = after.Price
	}
	if before.ImageURL != after.ImageURL {
		fields["imageUrl"] = after.ImageURL
	}
	if before.Category != after.Category {
		if after.Category == "" {
			fields["category"] = nil
		} else {
			fields["category"] = after.Category
		}
	}
	if !sameStrings(before.Tags, after.Tags) {
		tags := after.Tags
		if tags == nil {
			tags = []string{}
		}
		fields["tags"] = tags
	}
	if before.ShopifyProductID != after.ShopifyProductID {
		fields["shopifyProductId"] = after.ShopifyProductID
	}
	if before.Status != after.Status {
		fields["status"] = after.Status
	}

	return fields
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		if counts[s] == 0 {
			return false
		}
		counts[s]--
	}
	return true
}
