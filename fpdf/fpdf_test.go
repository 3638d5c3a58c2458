package fpdf

import(
	"bytes"
	"testing"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/scene"
)

func testCanvas(t *testing.T, id string) *scene.Canvas {
	f,err := castviz.NewFrame(castviz.FrameSpec{X0:-126, X1:-124, Y0:44, Y1:46, W0:200, H0:100, Margin:10})
	if err != nil { t.Fatal(err) }
	c := scene.NewCanvas(id, "Casts "+id, f)
	c.AddPolyline(scene.KindCoast, "", []castviz.Pixel{{X: 10, Y: 10}, {X: 50, Y: 60}, {X: 210, Y: 110}}, scene.Plain)
	c.AddPoint(scene.KindCast, "1", castviz.Pixel{X:110, Y:60}, 3, scene.Plain)
	c.AddPoint(scene.KindCast, "2", castviz.Pixel{X:120, Y:70}, 3, scene.Emphasized)
	return c
}

func TestWrite(t *testing.T) {
	buf := bytes.Buffer{}
	if err := Write(&buf, testCanvas(t, "a"), testCanvas(t, "b")); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF (%d bytes)", buf.Len())
	}
}

func TestWriteNothing(t *testing.T) {
	if err := Write(&bytes.Buffer{}); err == nil {
		t.Errorf("expected an error with no canvases")
	}
}

func TestWriteBadColor(t *testing.T) {
	c := testCanvas(t, "a")
	c.Palette[scene.KindCast] = scene.Inks{Plain:scene.Ink{Color:"chartreuse"}}
	if err := Write(&bytes.Buffer{}, c); err == nil {
		t.Errorf("expected an error for a bad color")
	}
}

func TestCanvasGrid(t *testing.T) {
	f,err := castviz.NewFrame(castviz.FrameSpec{X0:0, X1:1, Y0:0, Y1:1, W0:180, H0:80, Margin:10})
	if err != nil { t.Fatal(err) }

	// The canvas is 200x100; the box is 100x100, so width is the constraint
	bg := NewCanvasGrid(NewPdf(), f, 5, 7, 100, 100)
	if bg.W != 100 || bg.H != 50 {
		t.Errorf("expected a 100x50 grid, got %vx%v", bg.W, bg.H)
	}

	tests := []struct{
		x, y, u, v float64
		oob        bool
	}{
		{0,   0,   5,  7,  false},
		{200, 100, 105, 57, false},
		{100, 50,  55,  32, false},
		{400, 50,  205, 32, true},
	}
	for _,test := range tests {
		u,v,oob := bg.UV(test.x, test.y)
		if u != test.u || v != test.v || oob != test.oob {
			t.Errorf("(%v,%v): expected (%v,%v,%v), got (%v,%v,%v)", test.x, test.y,
				test.u, test.v, test.oob, u, v, oob)
		}
	}
	if s := bg.Scale(4); s != 2 {
		t.Errorf("Scale(4): expected 2, got %v", s)
	}
}
