package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// Width bounds, in percent of the parent.
const (
	MinWidthPercent = 5.0
	MaxWidthPercent = 100.0
)

// Resize sets the width of the block named id to percent (clamped to
// [MinWidthPercent, MaxWidthPercent]) and stores it as e.g. "62.5%".
//
// Inside a row container the next sibling absorbs the change: when its width
// is a percentage it shrinks or grows by the same amount, never below
// MinWidthPercent. Only that one sibling is touched. Column containers and
// the top level have no compensation.
func Resize(forest model.Document, id string, percent float64) model.Document {
	if math.IsNaN(percent) {
		return forest
	}
	out, ok := resizeIn(forest, id, formatPercent(clampPercent(percent)), "")
	if !ok {
		return forest
	}
	return out
}

// ResizeBy changes the width of the block named id by delta percentage
// points relative to its current width.
func ResizeBy(forest model.Document, id string, delta float64) model.Document {
	b, ok := model.FindByID(forest, id)
	if !ok {
		return forest
	}
	return Resize(forest, id, WidthPercent(b)+delta)
}

// WidthPercent returns the block's width as a number. The unit is ignored;
// a missing or unparsable width counts as 100.
func WidthPercent(b *model.Block) float64 {
	v, ok := b.StyleValue(model.StyleWidth)
	if !ok {
		return MaxWidthPercent
	}
	if f, ok := leadingFloat(v); ok {
		return f
	}
	return MaxWidthPercent
}

// resizeIn looks for id in list; parentLayout is the flex direction of the
// container that owns list ("" at the top level).
func resizeIn(list []*model.Block, id, width, parentLayout string) ([]*model.Block, bool) {
	for i, b := range list {
		if b.ID() != id {
			continue
		}
		oldW := WidthPercent(b)
		newW, _ := leadingFloat(width)

		out := replaceAt(list, i, b.WithStyle(model.StyleWidth, width))
		if parentLayout == "row" && i+1 < len(out) {
			next := out[i+1]
			if nw, ok := next.StyleValue(model.StyleWidth); ok && strings.Contains(nw, "%") {
				if nextW, ok := leadingFloat(nw); ok {
					adjusted := max(MinWidthPercent, nextW-(newW-oldW))
					out[i+1] = next.WithStyle(model.StyleWidth, formatPercent(adjusted))
				}
			}
		}
		return out, true
	}

	for i, b := range list {
		if !b.IsContainer() {
			continue
		}
		layout, ok := b.StyleValue(model.StyleFlexDirection)
		if !ok {
			layout = "column"
		}
		if children, ok := resizeIn(b.Children(), id, width, layout); ok {
			return replaceAt(list, i, b.WithChildren(children)), true
		}
	}
	return list, false
}

func clampPercent(p float64) float64 {
	return min(MaxWidthPercent, max(MinWidthPercent, p))
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// leadingFloat parses the longest numeric prefix of s ("62.5%" -> 62.5).
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot, seenDigit := false, false
scan:
	for ; end < len(s); end++ {
		switch c := s[end]; {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && end == 0:
		default:
			break scan
		}
	}
	if !seenDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
