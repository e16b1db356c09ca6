package mt

import "vecvcg/grid"

// bidItem is one entry in the max-priority-queue: the bidder's current
// (unconsumed) marginal bid and enough state to advance their head
// pointer once awarded a unit. The container/heap shape here (a slice of
// pointers with a Less keyed on the scheduling criterion) is the familiar
// one from shortest-path frontiers — inverted to a max-heap keyed on bid
// value instead of a min-heap keyed on distance.
type bidItem[T grid.Number] struct {
	player int // bidder index
	head   int // index of the next unconsumed bid for this player
	bid    T   // bids[player][head], cached to avoid re-indexing in Less
}

// bidPQ is a max-heap of *bidItem, ordered by descending bid, tie-broken
// by ascending player index (ties are deterministic: bidder index, then
// next bid value).
type bidPQ[T grid.Number] []*bidItem[T]

func (pq bidPQ[T]) Len() int { return len(pq) }

func (pq bidPQ[T]) Less(i, j int) bool {
	if pq[i].bid != pq[j].bid {
		return pq[i].bid > pq[j].bid // max-heap: larger bid has priority
	}
	return pq[i].player < pq[j].player
}

func (pq bidPQ[T]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *bidPQ[T]) Push(x any) { *pq = append(*pq, x.(*bidItem[T])) }

func (pq *bidPQ[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
