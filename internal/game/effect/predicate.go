package effect

import (
	"github.com/kjard-games/snow-sub006/internal/data"
	"github.com/kjard-games/snow-sub006/internal/model"
	"github.com/kjard-games/snow-sub006/internal/terrain"
	"github.com/kjard-games/snow-sub006/internal/world"
)

// evalPredicate evaluates an IF predicate as a pure read of current world
// state. Missing or dead participants evaluate to false, never to an
// error; the caller treats false as a silent no-op.
func evalPredicate(p data.Predicate, source, target *model.Character, w *world.World, field terrain.Field) bool {
	if target == nil || !target.IsAlive() {
		return false
	}

	switch p.Kind {
	case data.PredAlways:
		return true

	case data.PredWarmthBelowPct:
		if target.MaxWarmth() <= 0 {
			return false
		}
		return float64(target.Warmth())/float64(target.MaxWarmth()) < p.Value

	case data.PredWarmthAbovePct:
		if target.MaxWarmth() <= 0 {
			return false
		}
		return float64(target.Warmth())/float64(target.MaxWarmth()) > p.Value

	case data.PredSecondaryAtLeast:
		if source == nil || !source.IsAlive() {
			return false
		}
		return float64(source.Secondary()) >= p.Value

	case data.PredEnergyAtLeast:
		if source == nil || !source.IsAlive() {
			return false
		}
		return float64(source.Energy()) >= p.Value

	case data.PredTerrainIs:
		if field == nil {
			return false
		}
		return field.KindAt(target.Location()) == p.Terrain

	case data.PredDistanceAtMost:
		if source == nil || !source.IsAlive() {
			return false
		}
		return source.Location().Distance(target.Location()) <= p.Value

	case data.PredAlliesNearbyAtLeast:
		return float64(len(w.AlliesNear(target.ID(), data.NearbyRange))) >= p.Value

	case data.PredEnemiesNearbyAtLeast:
		return float64(len(w.EnemiesNear(target.ID(), data.NearbyRange))) >= p.Value

	default:
		return false
	}
}
