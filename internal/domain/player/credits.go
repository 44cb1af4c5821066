package player

import (
	"hash/fnv"
	"math"
	"strconv"
)

// Credits counts budget units in tenths, so 8.5 credits is stored as 85.
type Credits int64

const (
	minPriceTenths  = 70
	priceStepTenths = 5
	priceSteps      = 8
)

func CreditsFromFloat(v float64) Credits {
	return Credits(math.Round(v * 10))
}

func (c Credits) Float() float64 {
	return float64(c) / 10
}

func (c Credits) String() string {
	return strconv.FormatFloat(c.Float(), 'f', 1, 64)
}

// PriceFor returns a stable credit value between 7.0 and 10.5 for a player in
// a given match, so repeated squad fetches show the same price.
func PriceFor(matchID, playerID string) Credits {
	h := fnv.New32a()
	_, _ = h.Write([]byte(matchID))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(playerID))
	step := int64(h.Sum32() % priceSteps)
	return Credits(minPriceTenths + step*priceStepTenths)
}
