package x11

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func testSetup(depths ...xproto.DepthInfo) *xproto.SetupInfo {
	return &xproto.SetupInfo{
		ImageByteOrder:       xproto.ImageOrderLSBFirst,
		MaximumRequestLength: 65535,
		PixmapFormats: []xproto.Format{
			{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
			{Depth: 16, BitsPerPixel: 16, ScanlinePad: 32},
			{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
			{Depth: 32, BitsPerPixel: 32, ScanlinePad: 32},
		},
		Roots: []xproto.ScreenInfo{{
			Root:          0x100,
			BlackPixel:    0,
			AllowedDepths: depths,
		}},
	}
}

func rgbVisual(id xproto.Visualid, class byte) xproto.VisualInfo {
	return xproto.VisualInfo{
		VisualId:  id,
		Class:     class,
		RedMask:   0xff0000,
		GreenMask: 0x00ff00,
		BlueMask:  0x0000ff,
	}
}

func TestChooseVisual_PicksARGBWhenAlphaRequired(t *testing.T) {
	setup := testSetup(
		xproto.DepthInfo{Depth: 24, Visuals: []xproto.VisualInfo{rgbVisual(0x21, xproto.VisualClassTrueColor)}},
		xproto.DepthInfo{Depth: 32, Visuals: []xproto.VisualInfo{rgbVisual(0x42, xproto.VisualClassTrueColor)}},
	)

	v, err := ChooseVisual(setup, 0, Requirements{RedSize: 1, GreenSize: 1, BlueSize: 1, AlphaSize: 1})
	if err != nil {
		t.Fatalf("ChooseVisual() error: %v", err)
	}
	if v.ID != 0x42 || v.Depth != 32 {
		t.Fatalf("expected ARGB visual 0x42, got %v", v)
	}
	if v.AlphaMask != 0xff000000 || v.AlphaSize() != 8 {
		t.Fatalf("unexpected alpha mask 0x%x", v.AlphaMask)
	}
	if v.Root != 0x100 || v.BitsPerPixel != 32 || !v.LSBFirst {
		t.Fatalf("unexpected visual fields %+v", v)
	}
}

func TestChooseVisual_NoAlphaAvailable(t *testing.T) {
	setup := testSetup(
		xproto.DepthInfo{Depth: 24, Visuals: []xproto.VisualInfo{rgbVisual(0x21, xproto.VisualClassTrueColor)}},
	)

	_, err := ChooseVisual(setup, 0, Requirements{RedSize: 1, GreenSize: 1, BlueSize: 1, AlphaSize: 1})
	if !errors.Is(err, ErrNoMatchingVisual) {
		t.Fatalf("expected ErrNoMatchingVisual, got %v", err)
	}

	v, err := ChooseVisual(setup, 0, Requirements{RedSize: 1, GreenSize: 1, BlueSize: 1})
	if err != nil {
		t.Fatalf("ChooseVisual() without alpha error: %v", err)
	}
	if v.ID != 0x21 || v.AlphaMask != 0 {
		t.Fatalf("expected 0x21 without alpha, got %v", v)
	}
}

func TestChooseVisual_PrefersTrueColor(t *testing.T) {
	setup := testSetup(
		xproto.DepthInfo{Depth: 24, Visuals: []xproto.VisualInfo{
			rgbVisual(0x30, xproto.VisualClassDirectColor),
			rgbVisual(0x31, xproto.VisualClassTrueColor),
		}},
	)

	v, err := ChooseVisual(setup, 0, Requirements{RedSize: 8})
	if err != nil {
		t.Fatalf("ChooseVisual() error: %v", err)
	}
	if v.ID != 0x31 {
		t.Fatalf("expected TrueColor 0x31, got %v", v)
	}
}

func TestChooseVisual_SkipsPseudoColorAndUnencodableDepths(t *testing.T) {
	setup := testSetup(
		xproto.DepthInfo{Depth: 8, Visuals: []xproto.VisualInfo{{VisualId: 0x10, Class: xproto.VisualClassPseudoColor}}},
		xproto.DepthInfo{Depth: 1, Visuals: []xproto.VisualInfo{rgbVisual(0x11, xproto.VisualClassTrueColor)}},
	)

	if _, err := ChooseVisual(setup, 0, Requirements{}); !errors.Is(err, ErrNoMatchingVisual) {
		t.Fatalf("expected ErrNoMatchingVisual, got %v", err)
	}
}

func TestChooseVisual_BadScreen(t *testing.T) {
	if _, err := ChooseVisual(testSetup(), 3, Requirements{}); !errors.Is(err, ErrNoMatchingVisual) {
		t.Fatalf("expected ErrNoMatchingVisual, got %v", err)
	}
	if _, err := ChooseVisual(nil, 0, Requirements{}); !errors.Is(err, ErrNoMatchingVisual) {
		t.Fatalf("expected ErrNoMatchingVisual for nil setup, got %v", err)
	}
}

func TestAlphaMask(t *testing.T) {
	tests := []struct {
		depth byte
		rgb   uint32
		want  uint32
	}{
		{32, 0xffffff, 0xff000000},
		{24, 0xffffff, 0},
		{30, 0x3fffffff, 0},
		{16, 0xffff, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := alphaMask(tt.depth, tt.rgb); got != tt.want {
			t.Fatalf("alphaMask(%d, 0x%x) = 0x%x, want 0x%x", tt.depth, tt.rgb, got, tt.want)
		}
	}
}
