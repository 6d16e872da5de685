package renderer

import (
	"fmt"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/engine/portal"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
)

// sortDrawSurfs sorts the surfaces v added from first on, renders the
// first portal among them that produces a view, and queues v for the back
// end. A portal view appends its own surfaces after v's, so v's range is
// fixed before the composer runs.
func (r *Renderer) sortDrawSurfs(v *view.View, first int) error {
	count := len(r.frame.DrawSurfs) - first
	if count < 1 {
		// still queued so the back end sets up the view
		return r.addDrawSurfsCmd(v, first, 0)
	}
	list := r.frame.DrawSurfs[first : first+count]
	surface.Sort(list)
	r.stats.DrawSurfs += count

	for i := 0; i < count; i++ {
		ds := r.frame.DrawSurfs[first+i]
		sortedShader, entity, _, _, _ := surface.Decompose(ds.Key)
		sh := r.cache.SortedShader(sortedShader)
		if sh.Sort != asset.SortPortal {
			break
		}

		ps := portal.Surface{Surf: ds.Surface, Range: sh.PortalRange}
		if entity != surface.WorldEntity {
			ps.Entity = &r.frame.Scene.Entities[entity]
		}

		// a portal clipped away entirely may be followed by a visible one
		rendered, err := r.composer.MirrorViewBySurface(v, ps, r.scene.Entities, r.renderView)
		if err != nil {
			return err
		}
		if rendered {
			if v.Options.PortalOnly {
				return nil
			}
			break
		}
	}

	return r.addDrawSurfsCmd(v, first, count)
}

func (r *Renderer) addDrawSurfsCmd(v *view.View, first, count int) error {
	cmd := &cmdqueue.DrawSurfsCmd{
		View:  r.frame.AddView(v),
		First: int32(first),
		Count: int32(count),
	}
	if err := r.queue.Add(cmdqueue.DrawSurfs, cmd); err != nil {
		return fmt.Errorf("queueing view: %w", err)
	}
	return nil
}
