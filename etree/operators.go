// Package etree parses Open Data XML exports of certified organic
// operator registries (Agence Bio / Certisys style feeds).
package etree

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/lmertens/annuaire"
)

// ParseOperators reads an operator registry document. The expected shape is
//
//	<operateurs>
//	  <operateur>
//	    <nom>Ferme du Hayon</nom>
//	    <codePostal>6769</codePostal>
//	    <ville>Meix-devant-Virton</ville>
//	    <activites>
//	      <activite>Production</activite>
//	    </activites>
//	  </operateur>
//	</operateurs>
//
// Entries without a name are skipped; registries routinely contain
// placeholder rows. Returns EINVALID if the document is not parseable XML
// or has an unexpected root element.
func ParseOperators(r io.Reader) ([]*annuaire.CertifiedOperator, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, annuaire.Errorf(annuaire.EINVALID, "invalid operator registry XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "operateurs" {
		return nil, annuaire.Errorf(annuaire.EINVALID, "expected <operateurs> root element")
	}

	var operators []*annuaire.CertifiedOperator
	for _, el := range root.SelectElements("operateur") {
		op := &annuaire.CertifiedOperator{
			Name:       childText(el, "nom"),
			PostalCode: childText(el, "codePostal"),
			City:       childText(el, "ville"),
		}
		if op.Name == "" {
			continue
		}

		if acts := el.SelectElement("activites"); acts != nil {
			for _, a := range acts.SelectElements("activite") {
				if v := strings.TrimSpace(a.Text()); v != "" {
					op.Activities = append(op.Activities, v)
				}
			}
		}

		operators = append(operators, op)
	}

	return operators, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
