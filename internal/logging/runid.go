package logging

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateRunID returns a new ULID identifying one run of the tool. ULIDs
// sort by creation time, so log files of consecutive runs stay in order.
func GenerateRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
