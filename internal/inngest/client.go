package inngest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New registers the club workflows on the given Inngest client.
func New(inngestClient inngestgo.Client, invitations, challenges Expirer) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		invitations:   invitations,
		challenges:    challenges,
	}
	if _, err := c.createExpireFunction(); err != nil {
		return nil, fmt.Errorf("failed to create expire function: %w", err)
	}
	return c, nil
}

func (i *client) createExpireFunction() (inngestgo.ServableFunction, error) {
	config := inngestgo.FunctionOpts{
		ID:   "expire-stale",
		Name: "Expire stale invitations and challenges",
	}
	return inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.EventTrigger(EventExpireStale, nil),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			invitations, err := step.Run(ctx, "expire-invitations", expireStep("invitations", i.invitations))
			if err != nil {
				return nil, err
			}
			challenges, err := step.Run(ctx, "expire-challenges", expireStep("challenges", i.challenges))
			if err != nil {
				return nil, err
			}
			return ExpireResult{Invitations: invitations, Challenges: challenges}, nil
		},
	)
}

// expireStep wraps a store sweep so each store is retried on its own.
func expireStep(kind string, store Expirer) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		n, err := store.ExpireStale()
		if err != nil {
			log.Error("Failed to expire stale records", "kind", kind, "error", err)
			return 0, fmt.Errorf("failed to expire %s: %w", kind, err)
		}
		log.Info("Expired stale records", "kind", kind, "count", n)
		return n, nil
	}
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}
