package domain

// ChainNode is one link in the semantic chain: a word and the player who
// contributed it. The seed node has no contributing player.
type ChainNode struct {
	Word     string `json:"word"`
	PlayerID string `json:"playerId,omitempty"`
}

// Chain is the ordered sequence of target words built over a game.
// It is append-only: one node per completed turn, plus the seed.
type Chain struct {
	Nodes []ChainNode `json:"nodes"`
}

// NewChain creates a chain containing only the given seed word
func NewChain(seed string) *Chain {
	return &Chain{
		Nodes: []ChainNode{{Word: seed}},
	}
}

// Append adds a new node to the end of the chain
func (c *Chain) Append(word, playerID string) {
	c.Nodes = append(c.Nodes, ChainNode{Word: word, PlayerID: playerID})
}

// LastWord returns the most recent word in the chain, the current round's target
func (c *Chain) LastWord() string {
	if len(c.Nodes) == 0 {
		return ""
	}
	return c.Nodes[len(c.Nodes)-1].Word
}

// Len returns the number of nodes in the chain
func (c *Chain) Len() int {
	return len(c.Nodes)
}

// Snapshot returns a copy of the chain's nodes for broadcasting
func (c *Chain) Snapshot() []ChainNode {
	nodes := make([]ChainNode, len(c.Nodes))
	copy(nodes, c.Nodes)
	return nodes
}
