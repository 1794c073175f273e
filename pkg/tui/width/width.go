// ABOUTME: Cells measures how many terminal columns a string occupies
// ABOUTME: Grapheme-aware over NFC-normalized text; escape sequences count as zero

package width

import (
	"container/list"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

const cacheSize = 512

// Cells returns the number of columns s occupies on screen. Escape
// sequences are skipped and each grapheme cluster counts as the width of
// its first rune, so "e" + combining acute is one cell and emoji are two.
func Cells(s string) int {
	if s == "" {
		return 0
	}
	if printableASCII(s) {
		return len(s)
	}
	if w, ok := cells.get(s); ok {
		return w
	}
	w := measure(s)
	cells.put(s, w)
	return w
}

// Normalize returns s in NFC so composed and decomposed forms of the same
// text measure and compare alike.
func Normalize(s string) string {
	if printableASCII(s) {
		return s
	}
	return norm.NFC.String(s)
}

// RuneCells returns the columns a single rune occupies.
func RuneCells(r rune) int { return runewidth.RuneWidth(r) }

func printableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

func measure(s string) int {
	text := norm.NFC.String(Strip(s))
	w := 0
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		w += clusterCells(cluster)
	}
	return w
}

func clusterCells(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// lru is a bounded least-recently-used map from string to width.
type lru struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	limit int
}

type lruEntry struct {
	key   string
	cells int
}

var cells = newLRU(cacheSize)

func newLRU(limit int) *lru {
	return &lru{
		items: make(map[string]*list.Element, limit),
		order: list.New(),
		limit: limit,
	}
}

func (c *lru) get(s string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[s]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(lruEntry).cells, true
}

func (c *lru) put(s string, w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[s]; ok {
		return
	}
	if c.order.Len() >= c.limit {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	c.items[s] = c.order.PushFront(lruEntry{key: s, cells: w})
}
