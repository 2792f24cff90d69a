package tetris

// Rand is the randomness the bag needs. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// Bag is the 7-bag randomizer: a permutation of all seven kinds drawn in
// order and reshuffled in place once exhausted, so every run of seven
// draws between reshuffles contains each kind exactly once.
type Bag struct {
	rng    Rand
	kinds  [kindCount]Kind
	cursor int
}

// NewBag creates a shuffled bag. Slot 0 is reserved for the first active
// piece and slot 1 for the first preview, so the cursor starts at 1.
func NewBag(rng Rand) *Bag {
	b := &Bag{rng: rng, kinds: Kinds}
	b.Reset()
	return b
}

// Reset reshuffles the bag and rewinds it to the start of a game.
func (b *Bag) Reset() {
	b.shuffle()
	b.cursor = 1
}

// Opening returns the first active piece and the first preview piece.
func (b *Bag) Opening() (first, next Kind) {
	return b.kinds[0], b.kinds[1]
}

// Next advances the cursor and returns the kind under it,
// reshuffling when the end of the bag is reached.
func (b *Bag) Next() Kind {
	b.cursor++
	if b.cursor == kindCount {
		b.shuffle()
		b.cursor = 0
	}
	return b.kinds[b.cursor]
}

// shuffle is an in-place Fisher-Yates shuffle.
func (b *Bag) shuffle() {
	for i := len(b.kinds) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.kinds[i], b.kinds[j] = b.kinds[j], b.kinds[i]
	}
}
