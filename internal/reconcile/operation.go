package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/ranchsync/internal/platform/rancher"
)

// API is the subset of the Rancher client the engine needs.
type API interface {
	Lookup(ctx context.Context, collection string, query url.Values) (*rancher.Collection, *rancher.Response, error)
	Create(ctx context.Context, collection string, payload any) (*rancher.Response, error)
	Delete(ctx context.Context, link string) (*rancher.Response, error)
}

// Result is the outcome of one invocation.
type Result struct {
	Changed  bool            `json:"changed"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Status   int             `json:"status,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// ResultFromResponse reports a response body with its status.
func ResultFromResponse(changed bool, resp *rancher.Response) (*Result, error) {
	body, err := resp.JSON()
	if err != nil {
		return nil, err
	}
	return &Result{
		Changed:  changed,
		Resource: body,
		Status:   resp.StatusCode,
		Reason:   resp.Reason,
	}, nil
}

// Operation reconciles one named resource of a kind.
//
// Usage example:
//
//	op := &Operation[driverPayload]{
//	    Kind:       "node driver",
//	    Collection: rancher.CollectionNodeDriver,
//	    Name:       "foo",
//	    Presence:   PresencePresent,
//	    Payload: func(Resolved) (driverPayload, error) {
//	        return driverPayload{Name: "foo", Active: true}, nil
//	    },
//	}
//	result, err := op.Execute(ctx, client)
type Operation[P any] struct {
	Kind       string
	Collection string
	Name       string
	Presence   Presence

	// Precondition runs first on the create path (optional).
	Precondition func(ctx context.Context) error

	// Dependencies are resolved, in order, before a create.
	Dependencies []Dependency

	// Payload builds the create request body.
	Payload func(deps Resolved) (P, error)

	// BareDelete reports a delete with its status but without a resource body.
	BareDelete bool
}

// Execute runs lookup, classification, selection and the selected action.
func (op *Operation[P]) Execute(ctx context.Context, api API) (result *Result, err error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("kind", op.Kind, "name", op.Name)
	start := time.Now()
	action := ActionFatal
	defer func() {
		recordReconcile(op.Kind, action, result, err, time.Since(start))
	}()

	if err := op.validate(); err != nil {
		return nil, err
	}

	coll, resp, err := api.Lookup(ctx, op.Collection, rancher.NameQuery(op.Name))
	if err != nil {
		return nil, err
	}

	verdict := Classify(coll, op.Name)
	action = Select(verdict, op.Presence)
	log.V(1).Info("selected action", "verdict", verdict.String(), "presence", string(op.Presence), "action", action.String())

	switch action {
	case ActionNoOp:
		return ResultFromResponse(false, resp)
	case ActionCreate:
		return op.create(ctx, api)
	case ActionDelete:
		return op.delete(ctx, api, coll.Named(op.Name)[0])
	default:
		return nil, AmbiguousStateError(op.Kind, op.Name,
			"could not determine the existence of %s %q", op.Kind, op.Name)
	}
}

func (op *Operation[P]) validate() error {
	if op.Name == "" {
		return ConfigurationError(op.Kind, op.Name, "%s name is required", op.Kind)
	}
	if !op.Presence.Valid() {
		return ConfigurationError(op.Kind, op.Name,
			"the state specified may only be either 'present' or 'absent', got %q", op.Presence)
	}
	if op.Payload == nil {
		return ConfigurationError(op.Kind, op.Name, "%s has no payload builder", op.Kind)
	}
	return nil
}

func (op *Operation[P]) create(ctx context.Context, api API) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	if op.Precondition != nil {
		if err := op.Precondition(ctx); err != nil {
			return nil, err
		}
	}

	deps, err := ResolveAll(ctx, api, op.Dependencies)
	if err != nil {
		return nil, err
	}

	payload, err := op.Payload(deps)
	if err != nil {
		return nil, err
	}

	log.Info("creating resource", "kind", op.Kind, "name", op.Name)
	resp, err := api.Create(ctx, op.Collection, payload)
	if err != nil {
		return nil, err
	}

	result, err := ResultFromResponse(true, resp)
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", op.Kind, op.Name, err)
	}
	return result, nil
}

func (op *Operation[P]) delete(ctx context.Context, api API, existing rancher.Resource) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx)

	link, ok := existing.RemoveLink()
	if !ok {
		return nil, PreconditionError(op.Kind, op.Name,
			"%s %q exists but does not offer a remove link", op.Kind, op.Name)
	}

	log.Info("deleting resource", "kind", op.Kind, "name", op.Name, "id", existing.ID)
	resp, err := api.Delete(ctx, link)
	if err != nil {
		return nil, err
	}

	if op.BareDelete {
		return &Result{Changed: true, Status: resp.StatusCode, Reason: resp.Reason}, nil
	}

	result, err := ResultFromResponse(true, resp)
	if err != nil {
		return nil, fmt.Errorf("delete %s %q: %w", op.Kind, op.Name, err)
	}
	return result, nil
}
