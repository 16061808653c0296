// Package allocation distributes scarce IPO shares among subscribers.
package allocation

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"
)

// Request is one subscriber's demand.
type Request struct {
	ID           string
	Quantity     int64
	SubscribedAt time.Time
}

// Result is the number of shares granted to a request.
type Result struct {
	ID       string
	Quantity int64
}

// Outcome summarises an allocation run.
type Outcome struct {
	Results        []Result // same order as the input requests
	Demand         int64
	Capacity       int64
	Allocated      int64
	Oversubscribed bool
}

// ErrInvalidLotSize is returned when the lot size is not positive.
var ErrInvalidLotSize = errors.New("lot size must be positive")

type entitlement struct {
	index     int
	req       Request
	lots      int64
	remainder *big.Int // numerator of the fractional lot, over demand*lotSize
}

// ProRata allocates capacity among requests.
//
// When demand fits capacity every request is filled. Otherwise each request gets
// floor(q*capacity/demand/lotSize) lots, and the leftover whole lots go one at a time
// to the largest fractional remainders, ties broken by earliest SubscribedAt then ID.
// No request ever receives more than it asked for and every result is a lot multiple.
func ProRata(requests []Request, capacity, lotSize int64) (Outcome, error) {
	if lotSize <= 0 {
		return Outcome{}, ErrInvalidLotSize
	}
	if capacity < 0 {
		return Outcome{}, fmt.Errorf("capacity must not be negative, got %d", capacity)
	}

	out := Outcome{
		Results:  make([]Result, len(requests)),
		Capacity: capacity,
	}
	for i, r := range requests {
		out.Results[i] = Result{ID: r.ID}
		if r.Quantity > 0 {
			out.Demand += r.Quantity
		}
	}

	if out.Demand == 0 || capacity == 0 {
		return out, nil
	}

	if out.Demand <= capacity {
		for i, r := range requests {
			if r.Quantity > 0 {
				out.Results[i].Quantity = r.Quantity
				out.Allocated += r.Quantity
			}
		}
		return out, nil
	}

	out.Oversubscribed = true

	bigCapacity := big.NewInt(capacity)
	denominator := new(big.Int).Mul(big.NewInt(out.Demand), big.NewInt(lotSize))

	entitlements := make([]*entitlement, 0, len(requests))
	for i, r := range requests {
		if r.Quantity <= 0 {
			continue
		}
		numerator := new(big.Int).Mul(big.NewInt(r.Quantity), bigCapacity)
		lots, rem := new(big.Int).QuoRem(numerator, denominator, new(big.Int))

		e := &entitlement{index: i, req: r, lots: lots.Int64(), remainder: rem}
		entitlements = append(entitlements, e)
		out.Allocated += e.lots * lotSize
	}

	leftoverLots := (capacity - out.Allocated) / lotSize

	sort.SliceStable(entitlements, func(a, b int) bool {
		ea, eb := entitlements[a], entitlements[b]
		if c := ea.remainder.Cmp(eb.remainder); c != 0 {
			return c > 0
		}
		if !ea.req.SubscribedAt.Equal(eb.req.SubscribedAt) {
			return ea.req.SubscribedAt.Before(eb.req.SubscribedAt)
		}
		return ea.req.ID < eb.req.ID
	})

	for leftoverLots > 0 {
		granted := false
		for _, e := range entitlements {
			if leftoverLots == 0 {
				break
			}
			if (e.lots+1)*lotSize > e.req.Quantity {
				continue
			}
			e.lots++
			leftoverLots--
			out.Allocated += lotSize
			granted = true
		}
		if !granted {
			break
		}
	}

	for _, e := range entitlements {
		out.Results[e.index].Quantity = e.lots * lotSize
	}
	return out, nil
}
