package backend

import (
	"fmt"
	"strings"
)

// Stats counts what one Execute call did.
type Stats struct {
	Views         int
	Surfaces      int
	Batches       int // material state changes
	EntityChanges int
	Draws         int
	Verts         int
	Indexes       int
	BadSurfaces   int

	FlareAdds    int
	FlareTests   int
	FlareRenders int

	Pics2D      int
	Screenshots int
	Swaps       int
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "views:%d surfs:%d batches:%d entities:%d\n",
		s.Views, s.Surfaces, s.Batches, s.EntityChanges)
	fmt.Fprintf(&b, "draws:%d verts:%d tris:%d bad:%d\n",
		s.Draws, s.Verts, s.Indexes/3, s.BadSurfaces)
	fmt.Fprintf(&b, "flares: adds:%d tests:%d renders:%d\n",
		s.FlareAdds, s.FlareTests, s.FlareRenders)
	fmt.Fprintf(&b, "2d:%d shots:%d swaps:%d", s.Pics2D, s.Screenshots, s.Swaps)
	return b.String()
}
