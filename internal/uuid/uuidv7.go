// Package uuid generates time-ordered UUIDv7 identifiers. They key
// every persisted selection row and label refresh cycles in logs, so
// sortable ids make both "ORDER BY id" and log correlation cheap.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string for the current instant.
//
// Layout (RFC 4122): 48 bits of Unix milliseconds, 4 version bits
// (0111), then random data with the 2 variant bits (10) forced.
func New() string {
	var id [16]byte

	millis := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(id[0:8], millis<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		// No randomness available; a v4 from the library still yields
		// a unique key, just not a sortable one.
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}
