package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/shoplungu/models"
)

// PlainDescription returns the product description with any HTML markup
// removed and whitespace collapsed
func PlainDescription(p models.Product) string {
	if !strings.ContainsAny(p.Description, "<&") {
		return strings.Join(strings.Fields(p.Description), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Description))
	if err != nil {
		return strings.Join(strings.Fields(p.Description), " ")
	}

	// keep list items and paragraphs from running together
	doc.Find("p, li, br").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}
