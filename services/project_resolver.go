package services

import (
	"context"

	"stratplan/models"
	repository "stratplan/repositories"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectResolver turns a project's raw association id arrays into
// hydrated sub-objects. Ids that don't resolve leave gaps in the
// details arrays (no placeholders are fabricated); callers reconcile by
// comparing lengths. A failed batch fetch is logged and produces empty
// details, never a failed record read.
type ProjectResolver struct {
	issues     repository.StrategicIssueRepository
	strategies repository.StrategyRepository
}

func NewProjectResolver(issues repository.StrategicIssueRepository, strategies repository.StrategyRepository) *ProjectResolver {
	return &ProjectResolver{
		issues:     issues,
		strategies: strategies,
	}
}

func (r *ProjectResolver) Hydrate(ctx context.Context, project models.Project) models.ProjectDetails {
	details := models.ProjectDetails{
		Project:                project,
		StrategicIssuesDetails: []models.StrategicIssueRef{},
		StrategiesDetails:      []models.StrategyRef{},
	}

	issueRefs, strategyRefs := r.fetchRefs(ctx, project.StrategicIssues, project.Strategies)
	details.StrategicIssuesDetails = assembleIssueRefs(project.StrategicIssues, issueRefs)
	details.StrategiesDetails = assembleStrategyRefs(project.Strategies, strategyRefs)
	return details
}

// HydrateAll resolves a whole page with the same two batch fetches a
// single record needs: the union of ids across the page goes into one
// $in query per association type.
func (r *ProjectResolver) HydrateAll(ctx context.Context, projects []models.Project) []models.ProjectDetails {
	allIssueIDs := []string{}
	allStrategyIDs := []string{}
	for _, p := range projects {
		allIssueIDs = append(allIssueIDs, p.StrategicIssues...)
		allStrategyIDs = append(allStrategyIDs, p.Strategies...)
	}

	issueRefs, strategyRefs := r.fetchRefs(ctx, allIssueIDs, allStrategyIDs)

	hydrated := make([]models.ProjectDetails, 0, len(projects))
	for _, p := range projects {
		hydrated = append(hydrated, models.ProjectDetails{
			Project:                p,
			StrategicIssuesDetails: assembleIssueRefs(p.StrategicIssues, issueRefs),
			StrategiesDetails:      assembleStrategyRefs(p.Strategies, strategyRefs),
		})
	}
	return hydrated
}

// refValue is the id+display-field pair both association types reduce
// to during resolution.
type refValue struct {
	id    string
	label string
}

func assembleIssueRefs(raw []string, resolved map[string]refValue) []models.StrategicIssueRef {
	out := []models.StrategicIssueRef{}
	for _, id := range raw {
		if rv, ok := resolved[id]; ok {
			out = append(out, models.StrategicIssueRef{ID: rv.id, Title: rv.label})
		}
	}
	return out
}

func assembleStrategyRefs(raw []string, resolved map[string]refValue) []models.StrategyRef {
	out := []models.StrategyRef{}
	for _, id := range raw {
		if rv, ok := resolved[id]; ok {
			out = append(out, models.StrategyRef{ID: rv.id, Name: rv.label})
		}
	}
	return out
}

func (r *ProjectResolver) fetchRefs(ctx context.Context, issueIDs, strategyIDs []string) (map[string]refValue, map[string]refValue) {
	issueRefs := map[string]refValue{}
	strategyRefs := map[string]refValue{}

	if ids := parseObjectIDs(issueIDs); len(ids) > 0 {
		issues, err := r.issues.FindByIDs(ctx, ids)
		if err != nil {
			// Resolution failure is swallowed: the record is still
			// served with its raw id arrays intact.
			log.Warn().Err(err).Msg("strategic issue hydration failed")
		} else {
			for _, issue := range issues {
				hex := issue.ID.Hex()
				issueRefs[hex] = refValue{id: hex, label: issue.Title}
			}
		}
	}

	if ids := parseObjectIDs(strategyIDs); len(ids) > 0 {
		strategies, err := r.strategies.FindByIDs(ctx, ids)
		if err != nil {
			log.Warn().Err(err).Msg("strategy hydration failed")
		} else {
			for _, strategy := range strategies {
				hex := strategy.ID.Hex()
				strategyRefs[hex] = refValue{id: hex, label: strategy.Name}
			}
		}
	}

	return issueRefs, strategyRefs
}

// parseObjectIDs keeps only well-formed hex ids. Malformed entries are
// skipped here but remain visible in the record's raw arrays.
func parseObjectIDs(raw []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

