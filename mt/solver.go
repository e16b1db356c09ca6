package mt

import (
	"container/heap"
	"time"

	"vecvcg/grid"
)

// Solve computes the welfare-maximising assignment of min(sum(len(bids_i)),
// cap) units across bidders with concave marginal bids, via the greedy
// max-priority-queue algorithm: repeatedly award one unit
// to whichever bidder currently holds the largest unused bid, then
// advance that bidder's head.
func Solve[T grid.Number](bids [][]T, cap int) ([]int, Stats) {
	start := time.Now()
	n := len(bids)
	alloc := make([]int, n)

	pq := make(bidPQ[T], 0, n)
	for i, b := range bids {
		if len(b) > 0 {
			pq = append(pq, &bidItem[T]{player: i, head: 0, bid: b[0]})
		}
	}
	heap.Init(&pq)

	units := 0
	for units < cap && pq.Len() > 0 {
		item := heap.Pop(&pq).(*bidItem[T])
		alloc[item.player]++
		units++

		next := item.head + 1
		if next < len(bids[item.player]) {
			heap.Push(&pq, &bidItem[T]{player: item.player, head: next, bid: bids[item.player][next]})
		}
	}

	return alloc, Stats{
		TotalRuntime: time.Since(start),
		UnitsAwarded: units,
		PlayerCount:  n,
	}
}

// BidsForPlayers computes the marginal-bid sequence for every bidder's
// 1-D valuation, wrapping a concavity violation with the offending
// bidder's index.
func BidsForPlayers[T grid.Number](valuations []*grid.Grid[T]) ([][]T, error) {
	bids := make([][]T, len(valuations))
	for i, v := range valuations {
		b, err := Bids(v)
		if err != nil {
			return nil, &PlayerError{Player: i, Err: err}
		}
		bids[i] = b
	}
	return bids, nil
}
