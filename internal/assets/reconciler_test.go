package assets

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"calmicasa-api/internal/resource"
)

// recordingDeleter collects every address it is asked to delete. The
// reconciler fires deletes concurrently, so access is guarded.
type recordingDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (d *recordingDeleter) DeleteByAddress(_ context.Context, address string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted = append(d.deleted, address)
	return d.err
}

func (d *recordingDeleter) sorted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]string(nil), d.deleted...)
	sort.Strings(out)
	return out
}

var listKind = resource.Kind{Name: "tiny-homes", ImagesField: "images"}

var singleKind = resource.Kind{Name: "blogs", ImageField: "image"}

func TestOnUpdate_RemovedListEntriesDeleted(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	old := resource.Document{"images": []string{"a", "b", "c"}}
	incoming := resource.Document{"images": []string{"a", "c"}}

	r.OnUpdate(context.Background(), listKind, old, incoming)

	assert.Equal(t, []string{"b"}, deleter.sorted())
}

func TestOnUpdate_AdditionsDeleteNothing(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	old := resource.Document{"images": []string{"a", "b", "c"}}
	incoming := resource.Document{"images": []string{"a", "b", "c", "d"}}

	r.OnUpdate(context.Background(), listKind, old, incoming)

	assert.Empty(t, deleter.sorted())
}

func TestOnUpdate_UntouchedFieldIgnored(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	old := resource.Document{"images": []string{"a", "b"}}
	incoming := resource.Document{"name": "Aurora 20ft"}

	r.OnUpdate(context.Background(), listKind, old, incoming)

	assert.Empty(t, deleter.sorted())
}

func TestOnUpdate_SingleFieldReplaced(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	old := resource.Document{"image": "old.jpg"}
	incoming := resource.Document{"image": "new.jpg"}

	r.OnUpdate(context.Background(), singleKind, old, incoming)

	assert.Equal(t, []string{"old.jpg"}, deleter.sorted())
}

func TestOnUpdate_SingleFieldUnchanged(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	old := resource.Document{"image": "same.jpg"}
	incoming := resource.Document{"image": "same.jpg", "title": "New title"}

	r.OnUpdate(context.Background(), singleKind, old, incoming)

	assert.Empty(t, deleter.sorted())
}

func TestOnUpdate_ListDecodedAsInterfaceSlice(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	old := resource.Document{"images": []interface{}{"a", "b"}}
	incoming := resource.Document{"images": []interface{}{"b"}}

	r.OnUpdate(context.Background(), listKind, old, incoming)

	assert.Equal(t, []string{"a"}, deleter.sorted())
}

func TestOnDelete_AllRefsDeleted(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	doc := resource.Document{"images": []string{"a", "b", "c"}}
	r.OnDelete(context.Background(), listKind, doc)

	assert.Equal(t, []string{"a", "b", "c"}, deleter.sorted())
}

func TestOnDelete_NoRefs(t *testing.T) {
	deleter := &recordingDeleter{}
	r := NewReconciler(deleter)

	r.OnDelete(context.Background(), singleKind, resource.Document{"title": "plain"})

	assert.Empty(t, deleter.sorted())
}

func TestDeleteFailuresAreAbsorbed(t *testing.T) {
	deleter := &recordingDeleter{err: errors.New("boom")}
	r := NewReconciler(deleter)

	doc := resource.Document{"images": []string{"a", "b", "c"}}

	assert.NotPanics(t, func() {
		r.OnDelete(context.Background(), listKind, doc)
	})
	assert.Equal(t, []string{"a", "b", "c"}, deleter.sorted(), "one failure must not stop the batch")
}
