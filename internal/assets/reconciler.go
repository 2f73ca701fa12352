package assets

import (
	"context"
	"log"
	"sync"

	"calmicasa-api/internal/resource"
)

// Deleter removes one stored object given its public address.
type Deleter interface {
	DeleteByAddress(ctx context.Context, address string) error
}

// Reconciler keeps object storage consistent with the image addresses that
// documents actually reference. It only ever deletes; failures degrade to an
// orphaned file and are never surfaced to the operation that triggered them.
type Reconciler struct {
	store Deleter
}

func NewReconciler(store Deleter) *Reconciler {
	return &Reconciler{store: store}
}

// OnUpdate runs when a partial update touches an image field. Every address
// the old document referenced but the incoming fields no longer do is
// deleted. Addresses present on both sides are left alone.
func (r *Reconciler) OnUpdate(ctx context.Context, kind resource.Kind, old, incoming resource.Document) {
	if !kind.TouchesImages(incoming) {
		return
	}

	r.deleteAll(ctx, removedRefs(kind, old, incoming))
}

// OnDelete removes every address the document referenced. Call it with the
// document as read before the delete.
func (r *Reconciler) OnDelete(ctx context.Context, kind resource.Kind, doc resource.Document) {
	r.deleteAll(ctx, kind.ImageRefs(doc))
}

// deleteAll fires the batch concurrently and waits for it so no goroutine
// outlives the request. Individual failures are logged and dropped; one
// failing delete does not stop the rest of the batch.
func (r *Reconciler) deleteAll(ctx context.Context, addresses []string) {
	if len(addresses) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, address := range addresses {
		wg.Add(1)
		go func(address string) {
			defer wg.Done()
			if err := r.store.DeleteByAddress(ctx, address); err != nil {
				log.Printf("asset reconciliation: %v", err)
			}
		}(address)
	}
	wg.Wait()
}

// removedRefs computes old minus new across the kind's image fields. For the
// single field that is an inequality check; for the list field a set
// difference. Fields absent from the incoming update are not compared - a
// partial update that never mentions them leaves their assets untouched.
func removedRefs(kind resource.Kind, old, incoming resource.Document) []string {
	var removed []string

	if kind.ImageField != "" {
		if _, touched := incoming[kind.ImageField]; touched {
			oldRef, _ := old[kind.ImageField].(string)
			newRef, _ := incoming[kind.ImageField].(string)
			if oldRef != "" && oldRef != newRef {
				removed = append(removed, oldRef)
			}
		}
	}

	if kind.ImagesField != "" {
		if _, touched := incoming[kind.ImagesField]; touched {
			kept := make(map[string]struct{})
			for _, ref := range refList(incoming[kind.ImagesField]) {
				kept[ref] = struct{}{}
			}
			for _, ref := range refList(old[kind.ImagesField]) {
				if _, ok := kept[ref]; !ok {
					removed = append(removed, ref)
				}
			}
		}
	}

	return removed
}

func refList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		refs := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				refs = append(refs, s)
			}
		}
		return refs
	default:
		return nil
	}
}
