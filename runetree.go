package cleanser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Nodes with at most this many children are scanned linearly instead of
// hashed.
const maxArrayChilds = 10

type RuneNode struct {
	rune      rune               // The rune this node represents.
	runes     []rune             // The prior runes that led to this node.
	terminal  bool               // A keyword ends at this node.
	fail      *RuneNode          // Longest proper suffix that is also a prefix.
	out       *RuneNode          // Nearest terminal node along the fail chain.
	childs    map[rune]*RuneNode // The child nodes.
	childsArr []*RuneNode        // The child nodes in an array, for small nodes.
}

func newRuneNode(r rune, runes []rune) *RuneNode {
	return &RuneNode{
		rune:   r,
		runes:  runes,
		childs: make(map[rune]*RuneNode, 0),
	}
}

func (node *RuneNode) child(r rune) *RuneNode {
	if len(node.childs) <= maxArrayChilds {
		for _, child := range node.childsArr {
			if child.rune == r {
				return child
			}
		}
		return nil
	}
	return node.childs[r]
}

func (node *RuneNode) addChild(r rune, runes []rune) *RuneNode {
	child := newRuneNode(r, runes)
	node.childs[r] = child
	if len(node.childs) > maxArrayChilds {
		node.childsArr = nil
	} else {
		node.childsArr = append(node.childsArr, child)
	}
	return child
}

func (node *RuneNode) sortedChilds() []*RuneNode {
	childs := make([]*RuneNode, 0, len(node.childs))
	for _, child := range node.childs {
		childs = append(childs, child)
	}
	sort.Slice(childs, func(i, j int) bool {
		return childs[i].rune < childs[j].rune
	})
	return childs
}

// Represent the tree as a string by traversing the tree, and using tree
// characters to represent the tree structure.
func (node *RuneNode) string(level int) string {
	if node == nil {
		return ""
	}
	var s string
	if node.rune != 0 {
		s = string(node.rune)
	}
	if len(node.childs) == 1 {
		// Follow single children until we find a node that branches.
		for _, child := range node.childs {
			s += child.string(level)
		}
		return s
	}
	level += 1
	s += "\n"

	childs := node.sortedChilds()
	for idx, child := range childs {
		childPrefix := strings.Repeat("| ", level-1)
		if idx == len(childs)-1 {
			childPrefix += "└─"
		} else {
			childPrefix += "├─"
		}
		s += childPrefix + child.string(level)
	}
	return s
}

func (node *RuneNode) String() string {
	return node.string(0)
}

// KeywordMatcher
// An Aho-Corasick automaton over runes. It is built once from a set of
// keywords and reports, in a single pass over a text, whether any keyword
// occurs in it as a substring.
type KeywordMatcher struct {
	root     *RuneNode
	patterns int
}

var errEmptyKeyword = errors.New("empty keyword matches every line")

// NewKeywordMatcher
// Compiles keywords into a matcher. Keywords are matched exactly as given,
// so callers lowercase them the same way as the texts they will test.
// Duplicate keywords are collapsed.
func NewKeywordMatcher(keywords []string) (*KeywordMatcher, error) {
	root := newRuneNode(0, []rune{})
	matcher := &KeywordMatcher{root: root}

	for idx, k := range keywords {
		if k == "" {
			return nil, fmt.Errorf("keyword %d: %w", idx, errEmptyKeyword)
		}
		keyRunes := []rune(k)
		node := root
		for i, r := range keyRunes {
			next := node.child(r)
			if next == nil {
				next = node.addChild(r, keyRunes[:i+1])
			}
			node = next
		}
		if !node.terminal {
			node.terminal = true
			matcher.patterns++
		}
	}
	matcher.link()
	return matcher, nil
}

// link
// Sets fail links breadth-first, so that every node's fail target is
// already linked when the node is visited. Output links are resolved at
// the same time so matching never has to walk fail chains to report a hit.
func (m *KeywordMatcher) link() {
	root := m.root
	root.fail = root
	queue := make([]*RuneNode, 0, len(root.childs))
	for _, child := range root.childs {
		child.fail = root
		if child.terminal {
			child.out = child
		}
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for r, child := range node.childs {
			fail := node.fail
			for fail != root && fail.child(r) == nil {
				fail = fail.fail
			}
			if next := fail.child(r); next != nil && next != child {
				child.fail = next
			} else {
				child.fail = root
			}
			if child.terminal {
				child.out = child
			} else {
				child.out = child.fail.out
			}
			queue = append(queue, child)
		}
	}
}

// Len returns the number of distinct keywords compiled into the matcher.
func (m *KeywordMatcher) Len() int {
	if m == nil {
		return 0
	}
	return m.patterns
}

// Match reports whether any keyword occurs in text.
func (m *KeywordMatcher) Match(text string) bool {
	_, found := m.Find(text)
	return found
}

// Find returns the first keyword to complete while scanning text.
func (m *KeywordMatcher) Find(text string) (string, bool) {
	if m.Len() == 0 {
		return "", false
	}
	root := m.root
	node := root
	for _, r := range text {
		for node != root && node.child(r) == nil {
			node = node.fail
		}
		if next := node.child(r); next != nil {
			node = next
		}
		if node.out != nil {
			return string(node.out.runes), true
		}
	}
	return "", false
}

func (m *KeywordMatcher) String() string {
	if m == nil {
		return ""
	}
	return m.root.String()
}
