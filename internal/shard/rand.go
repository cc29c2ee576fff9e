package shard

import "math/rand"

// defaultRand is the production RandomTarget index source.
func defaultRand(n int) int {
	return rand.Intn(n)
}
