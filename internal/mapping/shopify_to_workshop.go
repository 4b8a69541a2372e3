// Package mapping derives workshop fields from Shopify products.
//
// Every heuristic is an ordered rule list; the first rule that matches wins,
// so precedence is the slice order.
package mapping

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/models"
)

// DurationTBD is used when no duration can be found in a product
const DurationTBD = "TBD"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entityReplacer decodes the handful of entities Shopify descriptions carry
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
)

type difficultyRule struct {
	keyword string
	level   models.Difficulty
}

var difficultyRules = []difficultyRule{
	{keyword: "advanced", level: models.DifficultyAdvanced},
	{keyword: "intermediate", level: models.DifficultyIntermediate},
}

type durationRule struct {
	pattern *regexp.Regexp
	unit    string
}

// RE2's \s is ASCII only; titles pasted into Shopify often carry U+00A0 or
// other Unicode spaces between the number and the unit.
var durationRules = []durationRule{
	{pattern: regexp.MustCompile(`(\d+)[\s\p{Z}\x{FEFF}]*(?:hour|hr)s?`), unit: "hour"},
	{pattern: regexp.MustCompile(`(\d+)[\s\p{Z}\x{FEFF}]*days?`), unit: "day"},
	{pattern: regexp.MustCompile(`(\d+)[\s\p{Z}\x{FEFF}]*weeks?`), unit: "week"},
}

// StripHTML removes tags, then decodes entities, then trims.
// Decoding happens after stripping, so "&lt;b&gt;" survives as literal "<b>".
func StripHTML(html string) string {
	text := tagPattern.ReplaceAllString(html, "")
	text = entityReplacer.Replace(text)
	return strings.TrimSpace(text)
}

// ParseDifficulty classifies a product from its tags and title
func ParseDifficulty(tags, title string) models.Difficulty {
	combined := strings.ToLower(tags + " " + title)
	for _, rule := range difficultyRules {
		if strings.Contains(combined, rule.keyword) {
			return rule.level
		}
	}
	return models.DifficultyBeginner
}

// ParseDuration finds the first "<N> hours|days|weeks" in the title and body
func ParseDuration(title, bodyHTML string) string {
	text := strings.ToLower(title + " " + bodyHTML)
	for _, rule := range durationRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			return FormatDuration(m[1], rule.unit)
		}
	}
	return DurationTBD
}

// FormatDuration renders a matched digit run as "1 hour", "2 hours".
// It works on the digits themselves so counts too large for an int still render.
func FormatDuration(digits, unit string) string {
	count := strings.TrimLeft(digits, "0")
	if count == "" {
		count = "0"
	}
	if count != "0" && count != "1" {
		unit += "s"
	}
	return count + " " + unit
}

// Description returns the plain-text description, falling back to the title
func Description(p catalog.Product) string {
	source := p.BodyHTML
	if source == "" {
		source = p.Title
	}
	return StripHTML(source)
}

// ImageURL returns the first image of a product, or nil
func ImageURL(p catalog.Product) *string {
	if len(p.Images) == 0 || p.Images[0].Src == "" {
		return nil
	}
	src := p.Images[0].Src
	return &src
}

// ToWorkshop derives the workshop record for a product. The ID is fresh; on
// conflict the store keeps the existing one.
func ToWorkshop(p catalog.Product, now time.Time) *models.Workshop {
	productID := p.ID
	return &models.Workshop{
		ID:               uuid.New().String(),
		ShopifyProductID: &productID,
		Title:            p.Title,
		Description:      Description(p),
		ImageURL:         ImageURL(p),
		Difficulty:       ParseDifficulty(p.Tags, p.Title),
		Duration:         ParseDuration(p.Title, p.BodyHTML),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
