package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
)

// Optimizer coordinates an assignment run: historical examples from the
// training store, a proposal from the external collaborator, and the
// deterministic validation/repair of that proposal.
type Optimizer struct {
	Store      ports.TrainingRouteStore
	Proposer   ports.AssignmentProposer
	PrimaryBus string

	// SampleLimit caps how many training routes one run considers;
	// MaxExamples caps how many of those are handed to the collaborator.
	SampleLimit int
	MaxExamples int

	// Rand drives route sampling. Nil means a time-seeded source.
	Rand *rand.Rand
}

// OptimizeRoute produces the final assignment for a request.
//
// Two failures propagate: a missing training-routes store and an
// unconfigured collaborator credential. Collaborator call failures never
// do; the deterministic fallback substitutes for them.
func (o *Optimizer) OptimizeRoute(ctx context.Context, req domain.AssignmentRequest) (_ domain.AssignmentResult, err error) {
	defer obs.Time(obs.WithSource(ctx, req.Date), "optimize.route")(&err)

	routes, err := o.Store.Load()
	if err != nil {
		return domain.AssignmentResult{}, fmt.Errorf("optimize route: %w", err)
	}

	examples := o.buildExamples(o.sample(routes))

	proposal, err := o.Proposer.Propose(ctx, examples, req)
	if err != nil {
		var cerr *ports.CollaboratorError
		if !errors.As(err, &cerr) {
			return domain.AssignmentResult{}, fmt.Errorf("optimize route: %w", err)
		}
		log.Printf("op=propose date=%s err=%v (substituting fallback)", req.Date, err)
		return Fallback(req, o.PrimaryBus), nil
	}

	return ValidateAssignment(req, proposal, o.PrimaryBus), nil
}

// sample returns at most SampleLimit routes, uniformly without replacement.
func (o *Optimizer) sample(routes []domain.Route) []domain.Route {
	limit := o.SampleLimit
	if limit <= 0 {
		limit = 50
	}
	if len(routes) <= limit {
		return routes
	}

	r := o.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	shuffled := make([]domain.Route, len(routes))
	copy(shuffled, routes)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:limit]
}

func (o *Optimizer) buildExamples(routes []domain.Route) []ports.RouteExample {
	max := o.MaxExamples
	if max <= 0 {
		max = 3
	}
	if len(routes) < max {
		max = len(routes)
	}

	examples := make([]ports.RouteExample, 0, max)
	for _, r := range routes[:max] {
		stops := make([]string, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, s.Address)
		}
		examples = append(examples, ports.RouteExample{
			Date:    r.Date,
			BusName: r.BusName,
			Stops:   stops,
		})
	}
	return examples
}
