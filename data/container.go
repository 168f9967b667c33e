// Package data provides thread-safe status storage for the patient API.
// The StatusContainer records upstream probe results with atomic values so
// the health endpoint and the scheduler never contend on a lock.
package data

import (
	"sync/atomic"
	"time"

	"github.com/metricare/patient-api/interfaces"
)

// Compile-time check to ensure StatusContainer implements StatusStore
var _ interfaces.StatusStore = (*StatusContainer)(nil)

// StatusContainer holds upstream status with atomic values
type StatusContainer struct {
	labelSourceOK        atomic.Bool
	labelSourceCheckedAt atomic.Value // time.Time
	serverStartTime      atomic.Value // time.Time
}

// NewStatusContainer creates a new StatusContainer with zero-value status
func NewStatusContainer() *StatusContainer {
	sc := &StatusContainer{}
	sc.labelSourceCheckedAt.Store(time.Time{})
	sc.serverStartTime.Store(time.Time{})
	return sc
}

// GetLabelSourceStatus returns the last label-database probe result and
// when it was recorded
func (sc *StatusContainer) GetLabelSourceStatus() (bool, time.Time) {
	checkedAt := time.Time{}
	if v := sc.labelSourceCheckedAt.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			checkedAt = t
		}
	}
	return sc.labelSourceOK.Load(), checkedAt
}

// SetLabelSourceStatus records a label-database probe result
func (sc *StatusContainer) SetLabelSourceStatus(ok bool) {
	sc.labelSourceOK.Store(ok)
	sc.labelSourceCheckedAt.Store(time.Now())
}

// SetServerStartTime sets the server start time
func (sc *StatusContainer) SetServerStartTime(startTime time.Time) {
	sc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (sc *StatusContainer) GetServerStartTime() time.Time {
	if v := sc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}
	return time.Time{}
}
