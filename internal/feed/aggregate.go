// Package feed implements read-time aggregation of activity pages.
//
// Aggregation is a pure function of an already-fetched window: the page
// size cap is applied to raw records BEFORE merging, so an aggregated page
// may hold fewer rows than requested. Two duplicates split across two page
// fetches are never merged; the bounded window keeps read cost fixed.
package feed

import (
	"sort"

	"github.com/clipshelf/backend/internal/models"
)

// NameLookup maps an actor ID to its display identifier for the
// other-contributors list.
type NameLookup func(actorID uint) string

type groupKey struct {
	action      string
	subjectKind string
	subjectID   string
}

// Aggregate merges records sharing (action, subject_kind, subject_id)
// within the window. Each group of size > 1 collapses to its most recent
// record with aggregated_count set to the group size and the other
// contributors' display names stored under properties
// "other_contributors"; singleton groups pass through unchanged. The result
// is re-sorted newest first with an id tie-break. Stored rows are never
// touched.
func Aggregate(window []models.Activity, names NameLookup) []models.Activity {
	if len(window) <= 1 {
		return window
	}

	groups := make(map[groupKey][]models.Activity)
	order := make([]groupKey, 0, len(window))
	for _, a := range window {
		key := groupKey{action: a.Action, subjectKind: a.SubjectKind, subjectID: a.SubjectID}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], a)
	}

	result := make([]models.Activity, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			result = append(result, group[0])
			continue
		}
		result = append(result, merge(group, names))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// merge collapses one group to its newest record plus the contributor list
// of everything it absorbed.
func merge(group []models.Activity, names NameLookup) models.Activity {
	newest := 0
	for i := 1; i < len(group); i++ {
		if group[i].CreatedAt.After(group[newest].CreatedAt) ||
			(group[i].CreatedAt.Equal(group[newest].CreatedAt) && group[i].ID > group[newest].ID) {
			newest = i
		}
	}

	kept := group[newest]
	others := make([]string, 0, len(group)-1)
	for i, a := range group {
		if i == newest {
			continue
		}
		others = append(others, names(a.ActorID))
	}

	// Copy the payload so the stored row's map is never mutated.
	properties := make(models.Properties, len(kept.Properties)+1)
	for k, v := range kept.Properties {
		properties[k] = v
	}
	properties[models.PropOtherContributors] = others

	kept.Properties = properties
	kept.AggregatedCount = len(group)
	return kept
}
