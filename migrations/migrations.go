package migrations

import (
	"context"

	"github.com/mvdwal/festival-companion/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MigrateLegacyFavorites upgrades stored flat artist-name arrays into
// per-entry favorite documents. Early clients persisted one document per
// device holding {deviceId, artists: [...]}; the current shape is one
// document per (deviceId, setKey, person). Safe to run repeatedly: already
// migrated documents no longer match.
func MigrateLegacyFavorites(client *mongo.Client, databaseName string) error {
	collection := client.Database(databaseName).Collection("favorites")

	cursor, err := collection.Find(context.TODO(), bson.M{"artists": bson.M{"$exists": true}})
	if err != nil {
		return err
	}
	defer cursor.Close(context.TODO())

	for cursor.Next(context.TODO()) {
		var legacy struct {
			ID       bson.ObjectID `bson:"_id"`
			DeviceID string        `bson:"deviceId"`
			Artists  []string      `bson:"artists"`
		}
		if err := cursor.Decode(&legacy); err != nil {
			continue
		}

		entries := entity.UpgradeLegacy(legacy.Artists, legacy.DeviceID)
		if len(entries) > 0 {
			docs := make([]interface{}, 0, len(entries))
			for _, entry := range entries {
				docs = append(docs, bson.M{
					"deviceId": legacy.DeviceID,
					"setKey":   entry.SetKey,
					"person":   entry.Person,
				})
			}
			if _, err := collection.InsertMany(context.TODO(), docs); err != nil {
				return err
			}
		}

		if _, err := collection.DeleteOne(context.TODO(), bson.M{"_id": legacy.ID}); err != nil {
			return err
		}
	}

	return cursor.Err()
}
