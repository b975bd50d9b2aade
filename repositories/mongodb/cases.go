package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"varq/api/models"
)

func (r *Repository) FindCaseById(ctx context.Context, caseId string) (*models.Case, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	var caseDocument models.Case
	err := r.Database.Collection(caseCollection).
		FindOne(qctx, bson.M{"_id": caseId}).
		Decode(&caseDocument)
	if err != nil {
		return nil, err
	}

	return &caseDocument, nil
}

// instituteScope matches cases the institute owns or collaborates on.
func instituteScope(instituteId string) bson.M {
	return bson.M{"$or": []bson.M{
		{"owner": instituteId},
		{"collaborators": instituteId},
	}}
}

// FindCaseByDisplayName resolves a case by the name users see, inside
// the institute's scope.
func (r *Repository) FindCaseByDisplayName(ctx context.Context, instituteId string, displayName string) (*models.Case, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	var caseDocument models.Case
	err := r.Database.Collection(caseCollection).
		FindOne(qctx, bson.M{"$and": []bson.M{
			instituteScope(instituteId),
			{"display_name": displayName},
		}}).
		Decode(&caseDocument)
	if err != nil {
		return nil, err
	}

	return &caseDocument, nil
}

// FindCasesByPhenotype unions the three cohort-style dimensions over
// the institute's cases ; a case qualifies when any requested term,
// group or cohort matches.
func (r *Repository) FindCasesByPhenotype(ctx context.Context, instituteId string, terms []string, groups []string, cohorts []string) ([]models.Case, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	var ors []bson.M
	if len(terms) > 0 {
		ors = append(ors, bson.M{"phenotype_terms.phenotype_id": bson.M{"$in": terms}})
	}
	if len(groups) > 0 {
		ors = append(ors, bson.M{"phenotype_groups.phenotype_id": bson.M{"$in": groups}})
	}
	if len(cohorts) > 0 {
		ors = append(ors, bson.M{"cohorts": bson.M{"$in": cohorts}})
	}

	if len(ors) == 0 {
		return nil, nil
	}

	cursor, err := r.Database.Collection(caseCollection).Find(qctx, bson.M{"$and": []bson.M{
		instituteScope(instituteId),
		{"$or": ors},
	}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(qctx)

	var cases []models.Case
	if decodeErr := cursor.All(qctx, &cases); decodeErr != nil {
		return nil, decodeErr
	}

	return cases, nil
}

func (r *Repository) FindInstitutes(ctx context.Context) ([]models.Institute, error) {
	qctx, cancel := r.boundContext(ctx)
	defer cancel()

	cursor, err := r.Database.Collection(instituteCollection).Find(qctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(qctx)

	var institutes []models.Institute
	if decodeErr := cursor.All(qctx, &institutes); decodeErr != nil {
		return nil, decodeErr
	}

	return institutes, nil
}
