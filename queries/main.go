package queries

/*
	The abstract predicate tree produced by the variant filter compiler.

	Nodes form a small tagged union ; builder functions below are the
	only constructors used across the codebase. Render maps a tree
	mechanically onto a document-store filter document (MongoDB operator
	spelling), which both the repositories and the diagnostic CLI
	consume.
*/

type Operator string

const (
	OpEq        Operator = "eq"
	OpIn        Operator = "in"
	OpLt        Operator = "lt"
	OpGt        Operator = "gt"
	OpLte       Operator = "lte"
	OpGte       Operator = "gte"
	OpExists    Operator = "exists"
	OpRegex     Operator = "regex"
	OpElemMatch Operator = "elem_match"
	OpAnd       Operator = "and"
	OpOr        Operator = "or"
	OpNot       Operator = "not"
)

type Predicate struct {
	Op    Operator
	Field string
	Value interface{}
	Subs  []*Predicate
}

func Eq(field string, value interface{}) *Predicate {
	return &Predicate{Op: OpEq, Field: field, Value: value}
}

func In(field string, values []interface{}) *Predicate {
	return &Predicate{Op: OpIn, Field: field, Value: values}
}

func InStrings(field string, values []string) *Predicate {
	cast := make([]interface{}, 0, len(values))
	for _, v := range values {
		cast = append(cast, v)
	}
	return In(field, cast)
}

func InInts(field string, values []int) *Predicate {
	cast := make([]interface{}, 0, len(values))
	for _, v := range values {
		cast = append(cast, v)
	}
	return In(field, cast)
}

func Lt(field string, value interface{}) *Predicate {
	return &Predicate{Op: OpLt, Field: field, Value: value}
}

func Gt(field string, value interface{}) *Predicate {
	return &Predicate{Op: OpGt, Field: field, Value: value}
}

func Lte(field string, value interface{}) *Predicate {
	return &Predicate{Op: OpLte, Field: field, Value: value}
}

func Gte(field string, value interface{}) *Predicate {
	return &Predicate{Op: OpGte, Field: field, Value: value}
}

func Exists(field string, exists bool) *Predicate {
	return &Predicate{Op: OpExists, Field: field, Value: exists}
}

func Regex(field string, pattern string) *Predicate {
	return &Predicate{Op: OpRegex, Field: field, Value: pattern}
}

// ElemMatch nests field-relative sub-predicates under an array field ;
// multiple subs are merged into one element document.
func ElemMatch(field string, subs ...*Predicate) *Predicate {
	return &Predicate{Op: OpElemMatch, Field: field, Subs: subs}
}

func And(subs ...*Predicate) *Predicate {
	return &Predicate{Op: OpAnd, Subs: subs}
}

func Or(subs ...*Predicate) *Predicate {
	return &Predicate{Op: OpOr, Subs: subs}
}

func Not(sub *Predicate) *Predicate {
	return &Predicate{Op: OpNot, Subs: []*Predicate{sub}}
}

/*
	Render emits the MongoDB-flavored filter document for a tree.

	Negation is operator-level in the target store, so Not specializes :
	not(in) becomes $nin, not(eq) becomes $ne, anything else keeps an
	explicit $not (or $nor for boolean sub-trees).
*/
func (p *Predicate) Render() map[string]interface{} {
	switch p.Op {
	case OpEq:
		return map[string]interface{}{p.Field: p.Value}
	case OpIn:
		return map[string]interface{}{p.Field: map[string]interface{}{"$in": p.Value}}
	case OpLt:
		return map[string]interface{}{p.Field: map[string]interface{}{"$lt": p.Value}}
	case OpGt:
		return map[string]interface{}{p.Field: map[string]interface{}{"$gt": p.Value}}
	case OpLte:
		return map[string]interface{}{p.Field: map[string]interface{}{"$lte": p.Value}}
	case OpGte:
		return map[string]interface{}{p.Field: map[string]interface{}{"$gte": p.Value}}
	case OpExists:
		return map[string]interface{}{p.Field: map[string]interface{}{"$exists": p.Value}}
	case OpRegex:
		return map[string]interface{}{p.Field: map[string]interface{}{"$regex": p.Value}}
	case OpElemMatch:
		return map[string]interface{}{p.Field: map[string]interface{}{"$elemMatch": renderMerged(p.Subs)}}
	case OpAnd:
		return map[string]interface{}{"$and": renderAll(p.Subs)}
	case OpOr:
		return map[string]interface{}{"$or": renderAll(p.Subs)}
	case OpNot:
		return renderNot(p.Subs[0])
	}
	return map[string]interface{}{}
}

func renderAll(subs []*Predicate) []map[string]interface{} {
	rendered := make([]map[string]interface{}, 0, len(subs))
	for _, sub := range subs {
		rendered = append(rendered, sub.Render())
	}
	return rendered
}

// renderMerged folds several field-relative predicates into a single
// document ; colliding keys fall back to an explicit $and.
func renderMerged(subs []*Predicate) map[string]interface{} {
	merged := map[string]interface{}{}
	var overflow []map[string]interface{}

	for _, sub := range subs {
		for key, value := range sub.Render() {
			if _, taken := merged[key]; taken {
				overflow = append(overflow, map[string]interface{}{key: value})
				continue
			}
			merged[key] = value
		}
	}

	if len(overflow) > 0 {
		merged["$and"] = overflow
	}
	return merged
}

func renderNot(sub *Predicate) map[string]interface{} {
	switch sub.Op {
	case OpIn:
		return map[string]interface{}{sub.Field: map[string]interface{}{"$nin": sub.Value}}
	case OpEq:
		return map[string]interface{}{sub.Field: map[string]interface{}{"$ne": sub.Value}}
	case OpAnd, OpOr:
		return map[string]interface{}{"$nor": []map[string]interface{}{sub.Render()}}
	case OpElemMatch:
		return map[string]interface{}{sub.Field: map[string]interface{}{
			"$not": map[string]interface{}{"$elemMatch": renderMerged(sub.Subs)},
		}}
	default:
		rendered := sub.Render()
		inner, ok := rendered[sub.Field].(map[string]interface{})
		if !ok {
			return map[string]interface{}{"$nor": []map[string]interface{}{rendered}}
		}
		return map[string]interface{}{sub.Field: map[string]interface{}{"$not": inner}}
	}
}
