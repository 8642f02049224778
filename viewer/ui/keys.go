package ui

import (
	"fmt"
	"github.com/AllenDang/giu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"strconv"
	"strings"
)

type accelerator struct {
	key     giu.Key
	shift   bool
	control bool
	alt     bool
}

var namedKeys = map[string]glfw.Key{
	"space":     glfw.KeySpace,
	"return":    glfw.KeyEnter,
	"escape":    glfw.KeyEscape,
	"tab":       glfw.KeyTab,
	"delete":    glfw.KeyDelete,
	"backspace": glfw.KeyBackspace,
	"insert":    glfw.KeyInsert,
	"home":      glfw.KeyHome,
	"end":       glfw.KeyEnd,
	"page_up":   glfw.KeyPageUp,
	"page_down": glfw.KeyPageDown,
	"left":      glfw.KeyLeft,
	"right":     glfw.KeyRight,
	"up":        glfw.KeyUp,
	"down":      glfw.KeyDown,
}

// parseAccelerator parses accelerators like "M", "<Control>m" or "<Shift>F2"
func parseAccelerator(value string) (accelerator, error) {
	var accel accelerator
	rest := strings.TrimSpace(value)

	for strings.HasPrefix(rest, "<") {
		end := strings.Index(rest, ">")
		if end < 0 {
			return accel, fmt.Errorf("invalid accelerator '%s'", value)
		}
		switch strings.ToLower(rest[1:end]) {
		case "shift":
			accel.shift = true
		case "control", "ctrl", "primary":
			accel.control = true
		case "alt", "mod1":
			accel.alt = true
		default:
			return accel, fmt.Errorf("unknown modifier '%s' in accelerator '%s'", rest[1:end], value)
		}
		rest = rest[end+1:]
	}

	key, ok := parseKey(rest)
	if !ok {
		return accel, fmt.Errorf("unknown key in accelerator '%s'", value)
	}
	accel.key = giu.Key(key)
	return accel, nil
}

func parseKey(name string) (glfw.Key, bool) {
	lower := strings.ToLower(name)
	if len(lower) == 1 {
		c := lower[0]
		if c >= 'a' && c <= 'z' {
			return glfw.KeyA + glfw.Key(c-'a'), true
		} else if c >= '0' && c <= '9' {
			return glfw.Key0 + glfw.Key(c-'0'), true
		}
	}
	if strings.HasPrefix(lower, "f") {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 12 {
			return glfw.KeyF1 + glfw.Key(n-1), true
		}
	}
	key, ok := namedKeys[lower]
	return key, ok
}

func (s accelerator) matches(shiftDown bool, controlDown bool, altDown bool) bool {
	return s.shift == shiftDown && s.control == controlDown && s.alt == altDown
}

func (s accelerator) pressed(shiftDown bool, controlDown bool, altDown bool) bool {
	return s.matches(shiftDown, controlDown, altDown) && giu.IsKeyPressed(s.key)
}
