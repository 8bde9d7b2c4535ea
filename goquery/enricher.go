// Package goquery provides CSS-selector based extraction of contact
// details from place websites.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lmertens/annuaire"
)

// Ensure ContactExtractor implements annuaire.Enricher at compile time.
var _ annuaire.Enricher = (*ContactExtractor)(nil)

// emailRe matches addresses appearing in page text when no mailto: link
// exists. Deliberately conservative; a missed email beats a false one.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// phoneRe matches Belgian/French phone formats: +32 81 12 34 56,
// 081/12.34.56, 0471 12 34 56 and similar.
var phoneRe = regexp.MustCompile(`(\+\d{2}|0)[\d\s./-]{7,14}\d`)

// ContactExtractor extracts contact details from HTML documents.
type ContactExtractor struct{}

// NewContactExtractor creates a new ContactExtractor.
func NewContactExtractor() *ContactExtractor {
	return &ContactExtractor{}
}

// Enrich parses the HTML document and returns any contact details found.
// mailto: and tel: links take precedence over text matches.
func (e *ContactExtractor) Enrich(html string, baseURL string) (*annuaire.Contact, error) {
	if html == "" {
		return nil, annuaire.Errorf(annuaire.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, annuaire.Errorf(annuaire.EINVALID, "failed to parse HTML: %v", err)
	}

	contact := &annuaire.Contact{}

	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if email := cleanMailto(href); email != "" {
			contact.Email = email
			return false
		}
		return true
	})

	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if phone := cleanTel(href); phone != "" {
			contact.Phone = phone
			return false
		}
		return true
	})

	// Fall back to scanning visible text. Scripts and styles are removed
	// first so minified JS doesn't produce phone-shaped matches.
	if contact.Email == "" || contact.Phone == "" {
		doc.Find("script, style, noscript").Remove()
		text := doc.Find("body").Text()

		if contact.Email == "" {
			contact.Email = emailRe.FindString(text)
		}
		if contact.Phone == "" {
			if m := phoneRe.FindString(text); m != "" {
				contact.Phone = normalizePhone(m)
			}
		}
	}

	return contact, nil
}

// cleanMailto extracts the address from a mailto: href, dropping any
// query parameters (subject=...).
func cleanMailto(href string) string {
	addr := strings.TrimPrefix(href, "mailto:")
	if i := strings.IndexByte(addr, '?'); i != -1 {
		addr = addr[:i]
	}
	addr, err := url.QueryUnescape(addr)
	if err != nil {
		return ""
	}
	addr = strings.TrimSpace(addr)
	if !emailRe.MatchString(addr) {
		return ""
	}
	return addr
}

// cleanTel extracts and normalizes the number from a tel: href.
func cleanTel(href string) string {
	return normalizePhone(strings.TrimPrefix(href, "tel:"))
}

// normalizePhone keeps digits and a leading +, dropping separators.
func normalizePhone(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n := b.String()
	if len(n) < 8 {
		return ""
	}
	return n
}
