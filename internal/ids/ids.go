package ids

import (
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New - сортируемый идентификатор для ключей хранилища
func New() string {
	return NewAt(time.Now())
}

// NewAt - ULID с заданным временем. В пределах одной миллисекунды значения
// строго возрастают, поэтому в одном процессе не повторяются.
func NewAt(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}
