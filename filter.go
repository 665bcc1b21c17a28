package gotable

import (
	"strings"

	"github.com/spf13/cast"
)

type (
	// tConjunct holds when the case-folded value of Column contains Term.
	tConjunct struct {
		Column string
		Term   string
	}

	tDisjunct []tConjunct

	// tDNF is a search predicate in disjunctive normal form. Disjuncts are
	// joined by OR, the conjuncts of a disjunct by AND:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//
	// An empty DNF matches every record.
	tDNF []tDisjunct
)

// searchDNF builds the predicate of a search: term is contained in at least
// one of the searchable fields.
//
//	searchDNF("ann", ["name", "email"]) = (name ∋ ann) OR (email ∋ ann)
func searchDNF(term string, fields []string) tDNF {
	if term == "" {
		return nil
	}

	ret := make(tDNF, 0, len(fields))
	for _, field := range fields {
		ret = append(ret, tDisjunct{{Column: field, Term: term}})
	}

	return ret
}

func (c tConjunct) match(r Record) bool {
	value, ok := r[c.Column]
	if !ok {
		return false
	}

	return strings.Contains(foldString(cast.ToString(value)), c.Term)
}

func (d tDisjunct) match(r Record) bool {
	for _, conjunct := range d {
		if !conjunct.match(r) {
			return false
		}
	}

	return len(d) > 0
}

func (d tDNF) match(r Record) bool {
	if len(d) == 0 {
		return true
	}

	for _, disjunct := range d {
		if disjunct.match(r) {
			return true
		}
	}

	return false
}
