package dataapi

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
)

// FindOne returns the first document in the collection matching the filter,
// or a result with a nil Document when nothing matched.
func (c *Client) FindOne(ctx context.Context, httpClient *http.Client, coll Collection, opts *FindOneOptions) (*FindResult, error) {
	if opts == nil {
		opts = &FindOneOptions{}
	}
	req := findRequest{
		Collection: coll,
		Filter:     opts.Filter,
		Projection: opts.Projection,
	}

	var resp findResponse
	if err := c.do(ctx, httpClient, "findOne", req, &resp); err != nil {
		return nil, err
	}
	return &FindResult{Document: resp.Document, Documents: resp.Documents}, nil
}

// Find returns the documents matching the filter, honoring projection, sort,
// limit and skip. The server returns at most 50000 documents per request;
// use Skip on follow-up calls to walk a larger result set.
func (c *Client) Find(ctx context.Context, httpClient *http.Client, coll Collection, opts *FindOptions) (*FindResult, error) {
	if opts == nil {
		opts = &FindOptions{}
	}
	req := findRequest{
		Collection: coll,
		Filter:     opts.Filter,
		Projection: opts.Projection,
		Sort:       opts.Sort,
		Limit:      opts.Limit,
		Skip:       opts.Skip,
	}

	var resp findResponse
	if err := c.do(ctx, httpClient, "find", req, &resp); err != nil {
		return nil, err
	}
	return &FindResult{Document: resp.Document, Documents: resp.Documents}, nil
}

// InsertOne inserts a single extended-JSON document.
func (c *Client) InsertOne(ctx context.Context, httpClient *http.Client, coll Collection, document bson.D) (*InsertOneResult, error) {
	req := insertOneRequest{Collection: coll, Document: document}

	var resp insertOneResponse
	if err := c.do(ctx, httpClient, "insertOne", req, &resp); err != nil {
		return nil, err
	}
	if resp.InsertedID == nil {
		return nil, missingField("insertedId")
	}
	return &InsertOneResult{InsertedID: *resp.InsertedID}, nil
}

// InsertMany inserts one or more documents; the returned ids correspond to
// the input documents in order.
func (c *Client) InsertMany(ctx context.Context, httpClient *http.Client, coll Collection, documents []bson.D) (*InsertManyResult, error) {
	if len(documents) == 0 {
		return nil, &Error{Kind: ErrorKindFormat, Message: "format error: insertMany requires at least one document"}
	}
	req := insertManyRequest{Collection: coll, Documents: documents}

	var resp insertManyResponse
	if err := c.do(ctx, httpClient, "insertMany", req, &resp); err != nil {
		return nil, err
	}
	if resp.InsertedIDs == nil {
		return nil, missingField("insertedIds")
	}
	return &InsertManyResult{InsertedIDs: resp.InsertedIDs}, nil
}

// UpdateOne applies a MongoDB update expression to the first document
// matching the filter. With opts.Upsert set to true a new document is
// inserted when nothing matches, and its id comes back as UpsertedID.
func (c *Client) UpdateOne(ctx context.Context, httpClient *http.Client, coll Collection, filter, update bson.D, opts *UpdateOptions) (*UpdateResult, error) {
	return c.doUpdate(ctx, httpClient, "updateOne", coll, filter, update, opts)
}

// UpdateMany applies the update expression to every document matching the
// filter.
func (c *Client) UpdateMany(ctx context.Context, httpClient *http.Client, coll Collection, filter, update bson.D, opts *UpdateOptions) (*UpdateResult, error) {
	return c.doUpdate(ctx, httpClient, "updateMany", coll, filter, update, opts)
}

func (c *Client) doUpdate(ctx context.Context, httpClient *http.Client, action string, coll Collection, filter, update bson.D, opts *UpdateOptions) (*UpdateResult, error) {
	if opts == nil {
		opts = &UpdateOptions{}
	}
	req := updateRequest{
		Collection: coll,
		Filter:     filter,
		Update:     update,
		Upsert:     opts.Upsert,
	}

	var resp updateResponse
	if err := c.do(ctx, httpClient, action, req, &resp); err != nil {
		return nil, err
	}
	return updateResultFromResponse(resp)
}

// ReplaceOne overwrites the first document matching the filter with the
// replacement document.
func (c *Client) ReplaceOne(ctx context.Context, httpClient *http.Client, coll Collection, filter, replacement bson.D, opts *UpdateOptions) (*UpdateResult, error) {
	if opts == nil {
		opts = &UpdateOptions{}
	}
	req := replaceRequest{
		Collection:  coll,
		Filter:      filter,
		Replacement: replacement,
		Upsert:      opts.Upsert,
	}

	var resp updateResponse
	if err := c.do(ctx, httpClient, "replaceOne", req, &resp); err != nil {
		return nil, err
	}
	return updateResultFromResponse(resp)
}

// DeleteOne deletes the first document matching the filter.
func (c *Client) DeleteOne(ctx context.Context, httpClient *http.Client, coll Collection, filter bson.D) (*DeleteResult, error) {
	return c.doDelete(ctx, httpClient, "deleteOne", coll, filter)
}

// DeleteMany deletes every document matching the filter. A filter matching
// nothing is a success with DeletedCount zero, not an error.
func (c *Client) DeleteMany(ctx context.Context, httpClient *http.Client, coll Collection, filter bson.D) (*DeleteResult, error) {
	return c.doDelete(ctx, httpClient, "deleteMany", coll, filter)
}

func (c *Client) doDelete(ctx context.Context, httpClient *http.Client, action string, coll Collection, filter bson.D) (*DeleteResult, error) {
	req := deleteRequest{Collection: coll, Filter: filter}

	var resp deleteResponse
	if err := c.do(ctx, httpClient, action, req, &resp); err != nil {
		return nil, err
	}
	if resp.DeletedCount == nil {
		return nil, missingField("deletedCount")
	}
	return &DeleteResult{DeletedCount: *resp.DeletedCount}, nil
}

// Aggregate runs an aggregation pipeline and returns the documents it
// produces. Stage documents are passed through unvalidated.
func (c *Client) Aggregate(ctx context.Context, httpClient *http.Client, coll Collection, pipeline []bson.D) (*AggregateResult, error) {
	req := aggregateRequest{Collection: coll, Pipeline: pipeline}

	var resp aggregateResponse
	if err := c.do(ctx, httpClient, "aggregate", req, &resp); err != nil {
		return nil, err
	}
	if resp.Documents == nil {
		return nil, missingField("documents")
	}
	return &AggregateResult{Documents: *resp.Documents}, nil
}

func updateResultFromResponse(resp updateResponse) (*UpdateResult, error) {
	if resp.MatchedCount == nil {
		return nil, missingField("matchedCount")
	}
	if resp.ModifiedCount == nil {
		return nil, missingField("modifiedCount")
	}
	return &UpdateResult{
		MatchedCount:  *resp.MatchedCount,
		ModifiedCount: *resp.ModifiedCount,
		UpsertedID:    resp.UpsertedID,
	}, nil
}

func missingField(name string) *Error {
	return &Error{
		Kind:    ErrorKindDecode,
		Message: fmt.Sprintf("failed to decode response: missing required field %q", name),
	}
}
