package repository

import (
	"context"

	"github.com/mvdwal/festival-companion/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type favoriteDocument struct {
	DeviceID string `bson:"deviceId"`
	SetKey   string `bson:"setKey"`
	Person   string `bson:"person"`
}

type FavoriteRepository struct {
	mongoClient  *mongo.Client
	databaseName string
}

func NewFavoriteRepository(mongoClient *mongo.Client, databaseName string) *FavoriteRepository {
	return &FavoriteRepository{
		mongoClient:  mongoClient,
		databaseName: databaseName,
	}
}

func (r *FavoriteRepository) collection() *mongo.Collection {
	return r.mongoClient.Database(r.databaseName).Collection("favorites")
}

func (r *FavoriteRepository) FindManyByDeviceID(deviceID string) ([]*entity.FavoriteEntry, error) {
	cur, err := r.collection().Find(
		context.TODO(),
		bson.M{"deviceId": deviceID},
		options.Find().SetSort(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.TODO())

	var entries []*entity.FavoriteEntry
	for cur.Next(context.TODO()) {
		var doc favoriteDocument
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		entries = append(entries, &entity.FavoriteEntry{SetKey: doc.SetKey, Person: doc.Person})
	}

	return entries, cur.Err()
}

// ReplaceManyByDeviceID writes back a device's whole favorites set. The set
// is small (a user's picks for one weekend), so replace-all keeps the stored
// state trivially consistent with the in-memory one.
func (r *FavoriteRepository) ReplaceManyByDeviceID(deviceID string, entries []*entity.FavoriteEntry) error {
	collection := r.collection()

	_, err := collection.DeleteMany(context.TODO(), bson.M{"deviceId": deviceID})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, favoriteDocument{
			DeviceID: deviceID,
			SetKey:   entry.SetKey,
			Person:   entry.Person,
		})
	}

	_, err = collection.InsertMany(context.TODO(), docs)
	return err
}
