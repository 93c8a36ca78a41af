// Package dataapi is a typed client for the MongoDB Atlas Data API.
//
// Every supported action (findOne, find, insertOne, insertMany, updateOne,
// updateMany, replaceOne, deleteOne, deleteMany, aggregate) is a single
// stateless HTTPS POST against
//
//	https://{region.}data.mongodb-api.com/app/{appID}/endpoint/data/v1/action/{action}
//
// with an extended-JSON body and the apiKey/content-type/accept headers.
// Request and response documents are opaque to this package: filters,
// projections, sort expressions, updates and pipeline stages are bson.D
// values passed through unchanged, encoded with the driver's extended-JSON
// codec.
//
// The HTTP client is supplied by the caller on every call and owns all
// transport policy (pooling, timeouts, TLS, redirects). The Client itself is
// immutable after construction and safe for concurrent use; no call retries,
// paginates beyond limit/skip, or logs a failure on the caller's behalf.
//
// Example:
//
//	client, err := dataapi.NewClient(dataapi.Config{
//		AppID:  "data-abcde",
//		APIKey: os.Getenv("ATLAS_API_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := client.FindOne(ctx, httpClient, dataapi.Collection{
//		DataSource: "Cluster0",
//		Database:   "db",
//		Collection: "users",
//	}, &dataapi.FindOneOptions{
//		Filter: bson.D{{Key: "name", Value: "a"}},
//	})
package dataapi
