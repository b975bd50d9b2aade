package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varq/api/models/constants/category"
	"varq/api/models/constants/chromosome"
)

func intPtr(v int) *int { return &v }

func TestBuildCoordinateFilterSnv(t *testing.T) {
	pred, err := BuildCoordinateFilter("chr1", intPtr(1000), intPtr(2000), category.Snv)
	require.NoError(t, err)

	assert.Equal(t,
		map[string]interface{}{"$and": []map[string]interface{}{
			{"chromosome": "1"},
			{"position": map[string]interface{}{"$lte": 2000}},
			{"end": map[string]interface{}{"$gte": 1000}},
		}},
		pred.Render())
}

func TestBuildCoordinateFilterSnvChromosomeOnly(t *testing.T) {
	pred, err := BuildCoordinateFilter("X", nil, nil, category.Snv)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"chromosome": "X"}, pred.Render())
}

func TestBuildCoordinateFilterSvBreakendSymmetry(t *testing.T) {
	pred, err := BuildCoordinateFilter("2", intPtr(100), intPtr(200), category.Sv)
	require.NoError(t, err)

	rendered := pred.Render()
	conjuncts := rendered["$and"].([]map[string]interface{})
	require.Len(t, conjuncts, 2)

	// either endpoint may sit on the queried chromosome
	assert.Equal(t,
		map[string]interface{}{"$or": []map[string]interface{}{
			{"chromosome": "2"},
			{"end_chrom": "2"},
		}},
		conjuncts[0])

	// the four interval-overlap cases
	overlapCases := conjuncts[1]["$or"].([]map[string]interface{})
	require.Len(t, overlapCases, 4)
	assert.Equal(t,
		map[string]interface{}{"$and": []map[string]interface{}{
			{"position": map[string]interface{}{"$gte": 100}},
			{"position": map[string]interface{}{"$lte": 200}},
		}},
		overlapCases[0])
	assert.Equal(t,
		map[string]interface{}{"$and": []map[string]interface{}{
			{"position": map[string]interface{}{"$lte": 100}},
			{"end": map[string]interface{}{"$gte": 200}},
		}},
		overlapCases[3])
}

func TestBuildCoordinateFilterCancerSvUsesStructuralSemantics(t *testing.T) {
	pred, err := BuildCoordinateFilter("17", nil, nil, category.CancerSv)
	require.NoError(t, err)

	assert.Equal(t,
		map[string]interface{}{"$or": []map[string]interface{}{
			{"chromosome": "17"},
			{"end_chrom": "17"},
		}},
		pred.Render())
}

func TestBuildCoordinateFilterUnknownChromosome(t *testing.T) {
	_, err := BuildCoordinateFilter("chr99", intPtr(1), intPtr(2), category.Snv)
	assert.ErrorIs(t, err, chromosome.ErrUnknownChromosome)
}
