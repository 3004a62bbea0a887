// Package reconcile decides, once per sign-in, whether the signed-in
// user's cloud copy replaces the local widget set. There is no field-level
// merge: the user either takes the whole remote set or keeps the local one.
package reconcile

import (
	"chronos/internal/models"
	"chronos/internal/providers"
	"context"
)

const ReplacePrompt = "Cloud save found! Load it? (This will replace current stopwatches)"

type RemoteLoader interface {
	LoadRemote(ctx context.Context, uid string) (*models.RemoteDocument, error)
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Replacer swaps the whole widget set and persists the result.
type Replacer interface {
	ReplaceAll(snapshots []models.Snapshot)
}

type Outcome int

const (
	NoRemote Outcome = iota
	Declined
	Replaced
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Declined:
		return "declined"
	case Replaced:
		return "replaced"
	case Failed:
		return "failed"
	default:
		return "no remote"
	}
}

type Reconciler struct {
	loader    RemoteLoader
	confirmer Confirmer
	replacer  Replacer
	logger    providers.Logger
}

func New(loader RemoteLoader, confirmer Confirmer, replacer Replacer, logger providers.Logger) *Reconciler {
	return &Reconciler{
		loader:    loader,
		confirmer: confirmer,
		replacer:  replacer,
		logger:    logger,
	}
}

// Reconcile never returns an error: load and prompt failures are logged and
// leave local state as it is.
func (r *Reconciler) Reconcile(ctx context.Context, uid string) Outcome {
	doc, err := r.loader.LoadRemote(ctx, uid)
	if err != nil {
		r.logger.Errorf(providers.TypeSync, "Error loading cloud save for %s: %s", uid, err)
		return Failed
	}
	if doc == nil {
		r.logger.Infof(providers.TypeSync, "No cloud save for %s", uid)
		return NoRemote
	}

	accepted, err := r.confirmer.Confirm(ctx, ReplacePrompt)
	if err != nil {
		r.logger.Warnf(providers.TypeSync, "Cloud load prompt failed: %s", err)
		return Failed
	}
	if !accepted {
		r.logger.Infof(providers.TypeSync, "Kept local state, cloud save for %s ignored", uid)
		return Declined
	}

	r.replacer.ReplaceAll(doc.Timers)
	r.logger.Infof(providers.TypeSync, "Loaded %d widgets from cloud for %s", len(doc.Timers), uid)
	return Replaced
}
