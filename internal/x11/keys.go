package x11

import "github.com/BurntSushi/xgb/xproto"

// Keysyms the renderer reacts to.
const (
	KeysymEscape xproto.Keysym = 0xff1b
	KeysymF      xproto.Keysym = 0x0046
	KeysymLowerF xproto.Keysym = 0x0066
)

// Pointer buttons as reported in ButtonPress events. The wheel arrives as
// buttons 4 and 5.
const (
	ButtonLeft      xproto.Button = 1
	ButtonMiddle    xproto.Button = 2
	ButtonRight     xproto.Button = 3
	ButtonWheelUp   xproto.Button = 4
	ButtonWheelDown xproto.Button = 5
)
