package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLeafOperators(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{"case_id": "internal_1"},
		Eq("case_id", "internal_1").Render())

	assert.Equal(t,
		map[string]interface{}{"cadd_score": map[string]interface{}{"$gt": 20.0}},
		Gt("cadd_score", 20.0).Render())

	assert.Equal(t,
		map[string]interface{}{"decipher": map[string]interface{}{"$exists": true}},
		Exists("decipher", true).Render())

	assert.Equal(t,
		map[string]interface{}{"genetic_models": map[string]interface{}{"$in": []interface{}{"AR_hom", "AD"}}},
		InStrings("genetic_models", []string{"AR_hom", "AD"}).Render())
}

func TestRenderNotSpecializations(t *testing.T) {
	// not(in) collapses to $nin
	assert.Equal(t,
		map[string]interface{}{"filters": map[string]interface{}{"$nin": []interface{}{"germline_risk"}}},
		Not(InStrings("filters", []string{"germline_risk"})).Render())

	// not(eq) collapses to $ne
	assert.Equal(t,
		map[string]interface{}{"_id": map[string]interface{}{"$ne": "doc1"}},
		Not(Eq("_id", "doc1")).Render())

	// boolean sub-trees negate through $nor
	assert.Equal(t,
		map[string]interface{}{"$nor": []map[string]interface{}{
			{"$or": []map[string]interface{}{
				{"chromosome": "1"},
				{"end_chrom": "1"},
			}},
		}},
		Not(Or(Eq("chromosome", "1"), Eq("end_chrom", "1"))).Render())

	// field-level operators keep an explicit $not
	assert.Equal(t,
		map[string]interface{}{"spidex": map[string]interface{}{
			"$not": map[string]interface{}{"$lt": -2.0},
		}},
		Not(Lt("spidex", -2.0)).Render())
}

func TestRenderNotElemMatch(t *testing.T) {
	rendered := Not(ElemMatch("clnsig", Eq("value", 5))).Render()

	assert.Equal(t,
		map[string]interface{}{"clnsig": map[string]interface{}{
			"$not": map[string]interface{}{
				"$elemMatch": map[string]interface{}{"value": 5},
			},
		}},
		rendered)
}

func TestRenderElemMatchMergesSubs(t *testing.T) {
	rendered := ElemMatch("samples",
		Eq("sample_id", "ADM1"),
		Not(InStrings("genotype_call", []string{"0/0"})),
	).Render()

	assert.Equal(t,
		map[string]interface{}{"samples": map[string]interface{}{
			"$elemMatch": map[string]interface{}{
				"sample_id":     "ADM1",
				"genotype_call": map[string]interface{}{"$nin": []interface{}{"0/0"}},
			},
		}},
		rendered)
}

func TestRenderElemMatchCollidingKeysOverflowToAnd(t *testing.T) {
	rendered := ElemMatch("clnsig",
		Gte("value", 4),
		Lte("value", 5),
	).Render()

	body := rendered["clnsig"].(map[string]interface{})["$elemMatch"].(map[string]interface{})

	assert.Equal(t, map[string]interface{}{"$gte": 4}, body["value"])
	assert.Equal(t,
		[]map[string]interface{}{{"value": map[string]interface{}{"$lte": 5}}},
		body["$and"])
}
