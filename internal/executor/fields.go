package executor

import (
	language "github.com/venkatd/absinthe/internal/language"
	schema "github.com/venkatd/absinthe/internal/schema"
)

// collectedFieldMap groups a selection set's fields by response name while
// preserving first-seen order, so repeated names merge instead of executing
// twice.
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

type collectedField struct {
	ResponseName string
	Fields       []*language.Field
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{index: make(map[string]int)}
}

func (cfm *collectedFieldMap) add(responseName string, field *language.Field) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
		return
	}
	cfm.index[responseName] = len(cfm.fields)
	cfm.fields = append(cfm.fields, collectedField{
		ResponseName: responseName,
		Fields:       []*language.Field{field},
	})
}

func (cfm *collectedFieldMap) orderedFields() []collectedField {
	return cfm.fields
}

// collectFields flattens a selection set into grouped fields, expanding
// fragment spreads and inline fragments. A type condition applies only when
// it names objectType exactly; the type system has no abstract types to
// widen against. Fragment cycles are broken by visiting each spread once.
// Directives on selections are ignored.
func (s *executionState) collectFields(objectType *schema.Type, selectionSet language.SelectionSet) *collectedFieldMap {
	grouped := newCollectedFieldMap()
	s.collectFieldsInto(objectType, selectionSet, map[string]bool{}, grouped)
	return grouped
}

func (s *executionState) collectFieldsInto(objectType *schema.Type, selectionSet language.SelectionSet, visited map[string]bool, grouped *collectedFieldMap) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			responseName := sel.Alias
			if responseName == "" {
				responseName = sel.Name
			}
			grouped.add(responseName, sel)

		case *language.FragmentSpread:
			if visited[sel.Name] {
				continue
			}
			visited[sel.Name] = true
			fragment := s.document.Fragments.ForName(sel.Name)
			if fragment == nil {
				continue
			}
			if fragment.TypeCondition != "" && fragment.TypeCondition != objectType.Name {
				continue
			}
			s.collectFieldsInto(objectType, fragment.SelectionSet, visited, grouped)

		case *language.InlineFragment:
			if sel.TypeCondition != "" && sel.TypeCondition != objectType.Name {
				continue
			}
			s.collectFieldsInto(objectType, sel.SelectionSet, visited, grouped)
		}
	}
}
