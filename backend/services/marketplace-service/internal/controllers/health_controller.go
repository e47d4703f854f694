package controllers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by the database pool, the listing cache and the event
// publisher.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports OK only when every registered dependency answers.
type HealthController struct {
	deps map[string]Pinger
}

func NewHealthController(deps map[string]Pinger) *HealthController {
	return &HealthController{deps: deps}
}

// GET /health
// Dependencies are pinged concurrently; the response lists the ones that failed.
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		unhealthy []string
	)
	for name, dep := range c.deps {
		if dep == nil {
			continue
		}
		wg.Add(1)
		go func(name string, dep Pinger) {
			defer wg.Done()
			if err := dep.Ping(ctx); err != nil {
				utils.Logger.WithError(err).Warnf("(Health Check) %s unhealthy", name)
				mu.Lock()
				unhealthy = append(unhealthy, name)
				mu.Unlock()
			}
		}(name, dep)
	}
	wg.Wait()

	if len(unhealthy) > 0 {
		sort.Strings(unhealthy)
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Unhealthy",
			map[string][]string{"unhealthy": unhealthy})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
