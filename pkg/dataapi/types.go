package dataapi

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection identifies the target of an action: an Atlas data source, a
// database, and a collection. Its fields are serialized flat at the top
// level of every request body, alongside the action-specific fields.
type Collection struct {
	DataSource string `bson:"dataSource"`
	Database   string `bson:"database"`
	Collection string `bson:"collection"`
}

// FindOneOptions are the optional parameters of FindOne. A nil document
// leaves the corresponding field out of the request body entirely.
type FindOneOptions struct {
	// Filter is a MongoDB query filter; the action returns the first
	// matching document. Nil matches every document.
	Filter bson.D

	// Projection selects or omits fields on the returned document.
	Projection bson.D
}

// FindOptions are the optional parameters of Find.
type FindOptions struct {
	Filter     bson.D
	Projection bson.D

	// Sort is a MongoDB sort expression applied to the matched documents.
	Sort bson.D

	// Limit caps the number of returned documents. The server accepts up to
	// 50000 per request.
	Limit *int64

	// Skip is the number of matched documents to pass over before collecting
	// results; combined with Limit it pages through large result sets.
	Skip *int64
}

// UpdateOptions are the optional parameters of UpdateOne, UpdateMany and
// ReplaceOne.
type UpdateOptions struct {
	// Upsert inserts a new document when the filter matches nothing. A nil
	// pointer omits the flag from the request body.
	Upsert *bool
}

// FindResult is the payload of FindOne and Find. FindOne populates Document
// (nil when nothing matched and the server omitted it); Find populates
// Documents. A nil slice means the field was absent from the response.
type FindResult struct {
	Document  *bson.D
	Documents []bson.D
}

// InsertOneResult carries the id assigned to the inserted document.
type InsertOneResult struct {
	InsertedID primitive.ObjectID
}

// InsertManyResult carries the inserted ids, in input document order.
type InsertManyResult struct {
	InsertedIDs []primitive.ObjectID
}

// UpdateResult is the payload of UpdateOne, UpdateMany and ReplaceOne.
// UpsertedID is non-nil only when the upsert flag caused an insert.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    *primitive.ObjectID
}

// DeleteResult is the payload of DeleteOne and DeleteMany.
type DeleteResult struct {
	DeletedCount int64
}

// AggregateResult carries the documents produced by a pipeline.
type AggregateResult struct {
	Documents []bson.D
}

// Request bodies. The collection selector is inlined so its three fields
// land at the top level of the JSON object; optional fields carry omitempty
// so absent values produce no key at all.

type findRequest struct {
	Collection `bson:",inline"`
	Filter     bson.D `bson:"filter,omitempty"`
	Projection bson.D `bson:"projection,omitempty"`
	Sort       bson.D `bson:"sort,omitempty"`
	Limit      *int64 `bson:"limit,omitempty"`
	Skip       *int64 `bson:"skip,omitempty"`
}

type insertOneRequest struct {
	Collection `bson:",inline"`
	Document   bson.D `bson:"document"`
}

type insertManyRequest struct {
	Collection `bson:",inline"`
	Documents  []bson.D `bson:"documents"`
}

type updateRequest struct {
	Collection `bson:",inline"`
	Filter     bson.D `bson:"filter"`
	Update     bson.D `bson:"update"`
	Upsert     *bool  `bson:"upsert,omitempty"`
}

type replaceRequest struct {
	Collection  `bson:",inline"`
	Filter      bson.D `bson:"filter"`
	Replacement bson.D `bson:"replacement"`
	Upsert      *bool  `bson:"upsert,omitempty"`
}

type deleteRequest struct {
	Collection `bson:",inline"`
	Filter     bson.D `bson:"filter"`
}

type aggregateRequest struct {
	Collection `bson:",inline"`
	Pipeline   []bson.D `bson:"pipeline"`
}

// Response bodies. Required members are decoded through pointers so a
// response that omits one fails as a decode error instead of silently
// zeroing the result.

type findResponse struct {
	Document  *bson.D  `bson:"document"`
	Documents []bson.D `bson:"documents"`
}

type insertOneResponse struct {
	InsertedID *primitive.ObjectID `bson:"insertedId"`
}

type insertManyResponse struct {
	InsertedIDs []primitive.ObjectID `bson:"insertedIds"`
}

type updateResponse struct {
	MatchedCount  *int64              `bson:"matchedCount"`
	ModifiedCount *int64              `bson:"modifiedCount"`
	UpsertedID    *primitive.ObjectID `bson:"upsertedId"`
}

type deleteResponse struct {
	DeletedCount *int64 `bson:"deletedCount"`
}

type aggregateResponse struct {
	Documents *[]bson.D `bson:"documents"`
}
