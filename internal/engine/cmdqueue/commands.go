package cmdqueue

// ID identifies a command record.
type ID uint32

const (
	EndOfList ID = iota
	SetColor
	StretchPic
	RotatedPic
	GradientPic
	Polys2D
	DrawSurfs
	DrawBuffer
	SwapBuffers
	Screenshot
	Finish
	numIDs
)

var idNames = [numIDs]string{
	"EndOfList", "SetColor", "StretchPic", "RotatedPic", "GradientPic",
	"Polys2D", "DrawSurfs", "DrawBuffer", "SwapBuffers", "Screenshot", "Finish",
}

func (id ID) String() string {
	if id >= numIDs {
		return "Invalid"
	}
	return idNames[id]
}

// Command payloads. Every field is fixed size so records encode with
// encoding/binary and decode without allocation.

type SetColorCmd struct {
	Color [4]float32
}

type StretchPicCmd struct {
	Shader         int32
	X, Y, W, H     float32
	S1, T1, S2, T2 float32
}

type RotatedPicCmd struct {
	Shader         int32
	X, Y, W, H     float32
	S1, T1, S2, T2 float32
	Angle          float32 // degrees
}

type GradientPicCmd struct {
	Shader         int32
	X, Y, W, H     float32
	S1, T1, S2, T2 float32
	Gradient       [4]uint8 // color at the bottom edge (type 0) or the right edge (type 1)
	GradientType   int32
}

// Polys2DCmd draws Count polygons of the frame's 2D poly table starting at
// First.
type Polys2DCmd struct {
	First, Count int32
}

// DrawSurfsCmd draws Count sorted surfaces of the frame starting at First,
// with the camera of view snapshot View.
type DrawSurfsCmd struct {
	View         int32
	First, Count int32
}

type DrawBufferCmd struct {
	Buffer int32 // 0 back, 1 front
}

type SwapBuffersCmd struct {
	Frame int32
}

// Image formats for ScreenshotCmd.
const (
	FormatPNG int32 = iota
	FormatBMP
	FormatWebP
)

// ScreenshotCmd captures a window rectangle. Name indexes the frame's
// string table.
type ScreenshotCmd struct {
	X, Y          int32
	Width, Height int32
	Format        int32
	Name          int32
}

type FinishCmd struct{}
