package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"calmicasa-api/internal/resource"
	apperrors "calmicasa-api/pkg/errors"
)

const (
	fieldID        = "_id"
	fieldCreatedAt = "createdAt"
)

// Repository is the document store for one resource kind. The same code
// serves every collection; kind-specific behavior (required fields, sort,
// defaults) comes from the descriptor.
type Repository struct {
	coll *mongo.Collection
	kind resource.Kind
}

func NewRepository(db *mongo.Database, kind resource.Kind) *Repository {
	return &Repository{
		coll: db.Collection(kind.Collection),
		kind: kind,
	}
}

func (r *Repository) Kind() resource.Kind {
	return r.kind
}

// List returns every document of the kind in its default order. An empty
// collection yields an empty slice, never an error.
func (r *Repository) List(ctx context.Context) ([]resource.Document, error) {
	opts := options.Find()
	if sort := r.sortSpec(); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.InternalServer("failed to list "+r.kind.Name, err)
	}
	defer cursor.Close(ctx)

	docs := []resource.Document{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.InternalServer("failed to decode "+r.kind.Name+" document", err)
		}
		docs = append(docs, renderDocument(doc))
	}

	if err := cursor.Err(); err != nil {
		return nil, apperrors.InternalServer("cursor error listing "+r.kind.Name, err)
	}

	return docs, nil
}

func (r *Repository) Get(ctx context.Context, id string) (resource.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound(r.kind.Name + " not found")
	}

	var doc bson.M
	if err := r.coll.FindOne(ctx, bson.M{fieldID: oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound(r.kind.Name + " not found")
		}
		return nil, apperrors.InternalServer("failed to get "+r.kind.Name, err)
	}

	return renderDocument(doc), nil
}

// Insert validates required fields, applies kind defaults, stamps the
// creation timestamp, and returns the new identifier as hex.
func (r *Repository) Insert(ctx context.Context, fields resource.Document) (string, error) {
	if err := r.kind.ValidateRequired(fields); err != nil {
		return "", err
	}

	doc := resource.Document{}
	for k, v := range fields {
		doc[k] = v
	}
	delete(doc, fieldID)
	r.kind.ApplyDefaults(doc)
	doc[fieldCreatedAt] = time.Now().UTC()

	result, err := r.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", apperrors.InternalServer("failed to insert "+r.kind.Name, err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperrors.InternalServer("unexpected inserted id type", nil)
	}

	return oid.Hex(), nil
}

// Update applies a partial replacement: only the provided fields change.
// The identifier is immutable and stripped before the write.
func (r *Repository) Update(ctx context.Context, id string, fields resource.Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound(r.kind.Name + " not found")
	}

	update := resource.Document{}
	for k, v := range fields {
		update[k] = v
	}
	delete(update, fieldID)

	result, err := r.coll.UpdateOne(ctx, bson.M{fieldID: oid}, bson.M{"$set": bson.M(update)})
	if err != nil {
		return apperrors.InternalServer("failed to update "+r.kind.Name, err)
	}

	if result.MatchedCount == 0 {
		return apperrors.NotFound(r.kind.Name + " not found")
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound(r.kind.Name + " not found")
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{fieldID: oid})
	if err != nil {
		return apperrors.InternalServer("failed to delete "+r.kind.Name, err)
	}

	if result.DeletedCount == 0 {
		return apperrors.NotFound(r.kind.Name + " not found")
	}

	return nil
}

func (r *Repository) sortSpec() bson.D {
	switch r.kind.SortOrder {
	case resource.SortAsc:
		return bson.D{{Key: r.kind.SortField, Value: 1}}
	case resource.SortDesc:
		return bson.D{{Key: r.kind.SortField, Value: -1}}
	default:
		return nil
	}
}

// renderDocument converts a raw bson document into the API shape: ObjectID
// serialized as hex, nested arrays left as-is.
func renderDocument(raw bson.M) resource.Document {
	doc := resource.Document{}
	for k, v := range raw {
		doc[k] = v
	}
	if oid, ok := raw[fieldID].(primitive.ObjectID); ok {
		doc[fieldID] = oid.Hex()
	}
	return doc
}
