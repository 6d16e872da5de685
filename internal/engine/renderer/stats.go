package renderer

import (
	"fmt"
	"strings"

	"github.com/Faultbox/ironsight/internal/engine/backend"
	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/engine/portal"
	"github.com/Faultbox/ironsight/internal/engine/scene"
)

// Stats are the front end counters of one frame.
type Stats struct {
	Frame       int
	Scenes      int
	Views       int
	PortalViews int

	LeavesVisible   int
	LeavesCulled    int
	SurfacesVisible int
	SurfacesCulled  int

	EntitiesVisible int
	EntitiesCulled  int
	SphereCullIn    int
	SphereCullClip  int
	SphereCullOut   int
	BoxCullIn       int
	BoxCullClip     int
	BoxCullOut      int

	Polys            int
	DLights          int
	DrawSurfs        int
	DrawSurfsDropped int

	Drops    scene.Drops
	Portal   portal.Stats
	Commands cmdqueue.Stats
	Backend  backend.Stats
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frame:%d scenes:%d views:%d portals:%d\n",
		s.Frame, s.Scenes, s.Views, s.PortalViews)
	fmt.Fprintf(&b, "leaves: %d visible %d culled  surfs: %d visible %d culled\n",
		s.LeavesVisible, s.LeavesCulled, s.SurfacesVisible, s.SurfacesCulled)
	fmt.Fprintf(&b, "models: %d visible %d culled  sphere in/clip/out %d/%d/%d  box in/clip/out %d/%d/%d\n",
		s.EntitiesVisible, s.EntitiesCulled,
		s.SphereCullIn, s.SphereCullClip, s.SphereCullOut,
		s.BoxCullIn, s.BoxCullClip, s.BoxCullOut)
	fmt.Fprintf(&b, "drawsurfs:%d dropped:%d polys:%d dlights:%d\n",
		s.DrawSurfs, s.DrawSurfsDropped, s.Polys, s.DLights)
	fmt.Fprintf(&b, "drops: entities:%d dlights:%d polys:%d\n",
		s.Drops.Entities, s.Drops.DLights, s.Drops.Polys)
	fmt.Fprintf(&b, "portal: rendered:%d recursive:%d offscreen:%d nomarker:%d\n",
		s.Portal.Rendered, s.Portal.Recursive, s.Portal.Offscreen, s.Portal.NoMarker)
	fmt.Fprintf(&b, "%s\n", s.Commands)
	b.WriteString(s.Backend.String())
	return b.String()
}
