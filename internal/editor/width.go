package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// advance returns the column after writing s starting at col.
func advance(col int, s string, tabWidth int) int {
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		col += clusterWidth(cluster, col, tabWidth)
	}
	return col
}

func clusterWidth(cluster string, col, tabWidth int) int {
	switch cluster {
	case "\t":
		return tabWidth - col%tabWidth
	case "\n":
		return 0
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}

// stringWidth returns the display width of s starting at column zero.
func stringWidth(s string, tabWidth int) int {
	return advance(0, s, tabWidth)
}
