package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/mj1618/desktop-launcher/internal/model"
)

func sampleItems() []model.ItemView {
	return []model.ItemView{
		{AppID: "firefox", Name: "GitHub", Favorite: true, State: model.Closed},
		{AppID: "foot", Name: "vim", State: model.Focused, WindowCount: 1},
	}
}

func TestLayout(t *testing.T) {
	buttons := Layout(sampleItems(), Options{})
	if len(buttons) != 2 {
		t.Fatalf("got %d buttons", len(buttons))
	}
	if w := buttons[0].Bounds.Dx(); w != 7*glyphWidth+16 {
		t.Errorf("firefox width = %d", w)
	}
	if buttons[1].Bounds.Min.X != buttons[0].Bounds.Max.X+1 {
		t.Errorf("buttons overlap: %v %v", buttons[0].Bounds, buttons[1].Bounds)
	}

	named := Layout(sampleItems(), Options{ShowNames: true, Reversed: true})
	if named[0].AppID != "foot" || named[0].Label != "vim" {
		t.Errorf("reversed/named layout: %+v", named[0])
	}
}

func TestBar_DrawsStates(t *testing.T) {
	img := Bar(sampleItems(), Options{Height: 24})
	buttons := Layout(sampleItems(), Options{Height: 24})

	fav := buttons[0].Bounds
	if got := img.RGBAAt(fav.Min.X, fav.Min.Y); got != colorFavorite {
		t.Errorf("favorite outline color = %v", got)
	}
	focused := buttons[1].Bounds
	mid := focused.Min.X + focused.Dx()/2
	if got := img.RGBAAt(mid, focused.Max.Y-1); got != colorIndicator {
		t.Errorf("focused indicator color = %v", got)
	}
	if got := img.RGBAAt(mid, focused.Max.Y-4); got == colorIndicator {
		t.Error("indicator taller than expected")
	}
}

func TestBar_Empty(t *testing.T) {
	img := Bar(nil, Options{})
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 24 {
		t.Errorf("empty bar bounds = %v", img.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, Bar(sampleItems(), Options{})); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if decoded.Bounds() == (image.Rectangle{}) {
		t.Error("decoded image is empty")
	}
}
