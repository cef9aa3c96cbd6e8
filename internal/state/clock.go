package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	siteID  = uuid.NewString()
	lamport uint64
)

func nextLamport() uint64 {
	return atomic.AddUint64(&lamport, 1)
}

// SiteID identifies this process in generated stroke ids.
func SiteID() string {
	return siteID
}

// NewStrokeID returns an id unique across sites: the site uuid plus a
// process-local counter.
func NewStrokeID() string {
	return fmt.Sprintf("stroke-%s-%d", siteID, nextLamport())
}
