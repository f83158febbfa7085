package x11

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrNoMatchingVisual is returned when no visual satisfies the requirements.
var ErrNoMatchingVisual = errors.New("no matching visual")

// Requirements lists the minimum number of bits per channel. Only TrueColor
// and DirectColor visuals are considered.
type Requirements struct {
	RedSize   int
	GreenSize int
	BlueSize  int
	AlphaSize int
}

// Visual describes the pixel format of a selected visual.
type Visual struct {
	ID     xproto.Visualid
	Screen int
	Root   xproto.Window
	Depth  byte
	Class  byte

	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	// AlphaMask covers the depth bits not used by red, green or blue.
	AlphaMask uint32

	BitsPerPixel int
	ScanlinePad  int
	LSBFirst     bool
	BlackPixel   uint32
}

// RedSize returns the number of red bits.
func (v *Visual) RedSize() int { return bits.OnesCount32(v.RedMask) }

// GreenSize returns the number of green bits.
func (v *Visual) GreenSize() int { return bits.OnesCount32(v.GreenMask) }

// BlueSize returns the number of blue bits.
func (v *Visual) BlueSize() int { return bits.OnesCount32(v.BlueMask) }

// AlphaSize returns the number of alpha bits.
func (v *Visual) AlphaSize() int { return bits.OnesCount32(v.AlphaMask) }

func (v *Visual) String() string {
	return fmt.Sprintf("0x%x depth=%d rgba=%d/%d/%d/%d bpp=%d",
		uint32(v.ID), v.Depth, v.RedSize(), v.GreenSize(), v.BlueSize(), v.AlphaSize(), v.BitsPerPixel)
}

// ChooseVisual picks the visual on screen that best meets req. TrueColor is
// preferred over DirectColor, then the deeper visual wins. Visuals whose
// pixmap format cannot be encoded (anything but 16 or 32 bits per pixel) are
// skipped.
func ChooseVisual(setup *xproto.SetupInfo, screen int, req Requirements) (*Visual, error) {
	if setup == nil || screen < 0 || screen >= len(setup.Roots) {
		return nil, fmt.Errorf("%w: screen %d does not exist", ErrNoMatchingVisual, screen)
	}
	root := setup.Roots[screen]

	var best *Visual
	for _, depth := range root.AllowedDepths {
		format, ok := pixmapFormat(setup, depth.Depth)
		if !ok || (format.BitsPerPixel != 16 && format.BitsPerPixel != 32) {
			continue
		}
		for _, vi := range depth.Visuals {
			if vi.Class != xproto.VisualClassTrueColor && vi.Class != xproto.VisualClassDirectColor {
				continue
			}
			cand := &Visual{
				ID:           vi.VisualId,
				Screen:       screen,
				Root:         root.Root,
				Depth:        depth.Depth,
				Class:        vi.Class,
				RedMask:      vi.RedMask,
				GreenMask:    vi.GreenMask,
				BlueMask:     vi.BlueMask,
				AlphaMask:    alphaMask(depth.Depth, vi.RedMask|vi.GreenMask|vi.BlueMask),
				BitsPerPixel: int(format.BitsPerPixel),
				ScanlinePad:  int(format.ScanlinePad),
				LSBFirst:     setup.ImageByteOrder == xproto.ImageOrderLSBFirst,
				BlackPixel:   root.BlackPixel,
			}
			if !cand.satisfies(req) {
				continue
			}
			if best == nil || cand.betterThan(best) {
				best = cand
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: need rgba %d/%d/%d/%d on screen %d",
			ErrNoMatchingVisual, req.RedSize, req.GreenSize, req.BlueSize, req.AlphaSize, screen)
	}
	return best, nil
}

func (v *Visual) satisfies(req Requirements) bool {
	return v.RedSize() >= req.RedSize &&
		v.GreenSize() >= req.GreenSize &&
		v.BlueSize() >= req.BlueSize &&
		v.AlphaSize() >= req.AlphaSize
}

func (v *Visual) betterThan(other *Visual) bool {
	if v.Class != other.Class {
		return v.Class == xproto.VisualClassTrueColor
	}
	return v.Depth > other.Depth
}

func pixmapFormat(setup *xproto.SetupInfo, depth byte) (xproto.Format, bool) {
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			return f, true
		}
	}
	return xproto.Format{}, false
}

// alphaMask returns the bits of a depth-wide pixel not claimed by rgb.
func alphaMask(depth byte, rgb uint32) uint32 {
	if depth == 0 {
		return 0
	}
	var all uint32 = 0xffffffff
	if depth < 32 {
		all = (1 << depth) - 1
	}
	return all &^ rgb
}
