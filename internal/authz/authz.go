// Package authz holds the ownership rule shared by every mutating operation:
// the authenticated caller must be one of the parties recorded on the row.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// ErrNotParty is returned when the caller is not a party to the resource.
var ErrNotParty = errors.New("caller is not a party to this resource")

const partyPolicy = `
package habyx.authz

default allow = false

allow {
	input.caller > 0
	input.parties[_] == input.caller
}
`

// Authorizer evaluates the party policy.
type Authorizer struct {
	query rego.PreparedEvalQuery
}

// New compiles the party policy once so each check is a plain evaluation.
func New(ctx context.Context) (*Authorizer, error) {
	query, err := rego.New(
		rego.Query("data.habyx.authz.allow"),
		rego.Module("party.rego", partyPolicy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile party policy: %w", err)
	}
	return &Authorizer{query: query}, nil
}

// IsParty reports whether caller is one of parties.
func (a *Authorizer) IsParty(ctx context.Context, caller uint, parties ...uint) (bool, error) {
	input := map[string]interface{}{
		"caller":  caller,
		"parties": parties,
	}

	results, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("party policy evaluation failed: %w", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}
	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("party policy returned %T", results[0].Expressions[0].Value)
	}
	return allowed, nil
}

// RequireParty returns ErrNotParty unless caller is one of parties.
func (a *Authorizer) RequireParty(ctx context.Context, caller uint, parties ...uint) error {
	ok, err := a.IsParty(ctx, caller, parties...)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParty
	}
	return nil
}
