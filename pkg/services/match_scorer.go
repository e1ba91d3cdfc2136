// Package services contains the matching, confidentiality, pipeline and
// feedback logic of intentlane-engine.
package services

import (
	"math"
	"strings"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// ScoreCandidate is the match scorer: a pure function of the Intent
// snapshot, one candidate profile and the weight configuration. No hidden
// state, no randomness; identical inputs produce identical output.
//
// Factors are evaluated in fixed order: language, tech, industry, region,
// budget. Set factors use requirement coverage (share of the Intent's
// required terms present in the candidate's attribute set); budget uses
// bucket distance. totalScore = 100 * sum(weight * normalizedScore).
func ScoreCandidate(intent *models.Intent, profile *models.OrgProfile, weights models.FactorWeights) *models.MatchCandidate {
	breakdown := make(map[models.MatchFactor]models.FactorScore, len(models.MatchFactors))

	var total float64
	for _, factor := range models.MatchFactors {
		var (
			score   float64
			matched []string
			notes   string
		)

		switch factor {
		case models.FactorLanguage:
			score, matched, notes = setCoverage(intent.RequiredLanguages, profile.PreferredLanguages)
		case models.FactorTech:
			score, matched, notes = setCoverage(intent.RequiredTechStack, profile.TechStack)
		case models.FactorIndustry:
			score, matched, notes = setCoverage(intent.RequiredIndustries, profile.Industries)
		case models.FactorRegion:
			score, matched, notes = setCoverage(intent.RequiredMarkets, profile.Markets)
		case models.FactorBudget:
			score, notes = budgetProximity(intent.BudgetBucket, profile.BudgetBucket)
		}

		weight := weights.For(factor)
		contribution := weight * score
		breakdown[factor] = models.FactorScore{
			Weight:            weight,
			NormalizedScore:   score,
			Contribution:      contribution,
			MatchedAttributes: matched,
			Notes:             notes,
		}
		total += contribution
	}

	return &models.MatchCandidate{
		OrgID:      profile.OrgID,
		OrgName:    profile.Name,
		TrustScore: profile.TrustScore,
		TotalScore: 100 * total,
		Breakdown:  breakdown,
	}
}

// setCoverage scores how much of the required set the candidate covers.
// Matched attributes keep the requirement order for a stable, explainable
// listing. Terms compare case-insensitively after trimming.
func setCoverage(required, offered []string) (float64, []string, string) {
	if len(required) == 0 {
		return 0, nil, "no requirement on intent"
	}

	offeredSet := make(map[string]struct{}, len(offered))
	for _, term := range offered {
		offeredSet[normalizeTerm(term)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(required))
	var matched []string
	distinct := 0
	for _, term := range required {
		key := normalizeTerm(term)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		distinct++
		if _, ok := offeredSet[key]; ok {
			matched = append(matched, key)
		}
	}

	if distinct == 0 {
		return 0, nil, "no requirement on intent"
	}

	return float64(len(matched)) / float64(distinct), matched, ""
}

// budgetProximity scores budget fit by bucket distance. Either side being
// unknown scores zero: absence of budget signal must not be rewarded.
func budgetProximity(required, offered models.BudgetBucket) (float64, string) {
	if !required.IsValid() {
		return 0, "no budget requirement on intent"
	}
	if !offered.IsValid() {
		return 0, "candidate budget bucket unknown"
	}

	distance := math.Abs(float64(required.Index() - offered.Index()))
	return 1 - distance/float64(models.BudgetBucketCount-1), ""
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// hasExcludedSectorConflict reports whether any of the Intent's required
// industries falls in the candidate's excluded sectors. Such candidates are
// filtered out before scoring.
func hasExcludedSectorConflict(intent *models.Intent, profile *models.OrgProfile) bool {
	if len(profile.ExcludedSectors) == 0 || len(intent.RequiredIndustries) == 0 {
		return false
	}

	excluded := make(map[string]struct{}, len(profile.ExcludedSectors))
	for _, sector := range profile.ExcludedSectors {
		excluded[normalizeTerm(sector)] = struct{}{}
	}

	for _, industry := range intent.RequiredIndustries {
		if _, ok := excluded[normalizeTerm(industry)]; ok {
			return true
		}
	}
	return false
}
