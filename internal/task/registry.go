package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// State is the lifecycle phase of a tracked task.
type State string

const (
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Status is the progress snapshot clients poll for. Updates replace the
// snapshot wholesale so a poll never observes a half-applied transition.
type Status struct {
	Progress int    `json:"progress"`
	State    State  `json:"status"`
	Message  string `json:"message"`
}

// Registry tracks task statuses and finished generation results. Entries are
// evicted after the TTL or when the capacity bound is hit, whichever comes
// first, so polling clients cannot grow the process without limit. Safe for
// concurrent use.
type Registry struct {
	statuses *expirable.LRU[string, Status]
	results  *expirable.LRU[string, string]
}

// NewRegistry builds a registry bounded to maxEntries live entries per table
// with the given TTL.
func NewRegistry(maxEntries int, ttl time.Duration) *Registry {
	return &Registry{
		statuses: expirable.NewLRU[string, Status](maxEntries, nil, ttl),
		results:  expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

// NewParseID mints an identifier for an upload-and-parse task. The random
// suffix keeps concurrent uploads within the same second distinct.
func NewParseID() string {
	return fmt.Sprintf("parse_%d_%s", time.Now().Unix(), shortSuffix())
}

func shortSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Set records the status snapshot for id, replacing any previous one.
func (r *Registry) Set(id string, status Status) {
	r.statuses.Add(id, status)
}

// Get returns the current status snapshot for id.
func (r *Registry) Get(id string) (Status, bool) {
	return r.statuses.Get(id)
}

// SetResult stores the finished proposal content for id.
func (r *Registry) SetResult(id, content string) {
	r.results.Add(id, content)
}

// Result returns the stored proposal content for id. Tasks that never
// completed, or whose entry has expired, have no result.
func (r *Registry) Result(id string) (string, bool) {
	return r.results.Get(id)
}
