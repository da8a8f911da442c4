package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"magictravel/internal/logger"
	"magictravel/internal/models"
)

const systemActorLabel = "Sistema"

// resolveActorNames looks up usuario aliases for the given ids. Lookup
// failures are logged and yield an empty map.
func resolveActorNames(db *gorm.DB, ids []int64) map[int64]string {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	var users []models.User
	if err := db.Where("usuario_id IN ?", ids).Find(&users).Error; err != nil {
		logger.Get().Warnw("failed to resolve actor names", "error", err)
		return names
	}
	for _, u := range users {
		if u.Alias != "" {
			names[u.ID] = u.Alias
		}
	}
	return names
}

// actorLabel renders an actor for display.
func actorLabel(id *int64, names map[int64]string) string {
	if id == nil {
		return systemActorLabel
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return fmt.Sprintf("Usuario #%d", *id)
}

// mergeActors folds per-table actor groups into one entry per actor, ordered
// by total desc and then by most recent activity. limit <= 0 keeps all.
func mergeActors(db *gorm.DB, groups []actorGroup, limit int) []ActorActivity {
	type key struct {
		system bool
		id     int64
	}

	byActor := map[key]*ActorActivity{}
	var order []key
	for _, g := range groups {
		k := key{system: g.ActorID == nil}
		if g.ActorID != nil {
			k.id = *g.ActorID
		}
		a, ok := byActor[k]
		if !ok {
			a = &ActorActivity{ActorID: g.ActorID}
			byActor[k] = a
			order = append(order, k)
		}

		counts := actionCounts{Total: a.Total, Inserts: a.Inserts, Updates: a.Updates, Deletes: a.Deletes}
		counts.add(g.Action, g.Total)
		a.Total, a.Inserts, a.Updates, a.Deletes = counts.Total, counts.Inserts, counts.Updates, counts.Deletes
		if g.LastAt.After(a.LastActivity) {
			a.LastActivity = g.LastAt
		}
	}

	out := make([]ActorActivity, 0, len(order))
	for _, k := range order {
		out = append(out, *byActor[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	ids := make([]int64, 0, len(out))
	for _, a := range out {
		if a.ActorID != nil {
			ids = append(ids, *a.ActorID)
		}
	}
	names := resolveActorNames(db, ids)
	for i := range out {
		out[i].Actor = actorLabel(out[i].ActorID, names)
	}
	return out
}
