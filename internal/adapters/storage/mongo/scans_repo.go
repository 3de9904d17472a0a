package mongo

import (
	"context"
	"fmt"
	"time"

	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/platform/geo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scansCollection = "scan_logs"

// Connect abre el cliente y hace ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

type locationDoc struct {
	Lat      float64 `bson:"lat"`
	Lng      float64 `bson:"lng"`
	Accuracy float64 `bson:"accuracy,omitempty"`
}

type scanDoc struct {
	ID         string       `bson:"_id"`
	TagCode    string       `bson:"tag_code"`
	ScannedAt  time.Time    `bson:"scanned_at"`
	Location   *locationDoc `bson:"location,omitempty"`
	UserAgent  string       `bson:"user_agent,omitempty"`
	Platform   string       `bson:"platform,omitempty"`
	Language   string       `bson:"language,omitempty"`
	ScreenSize string       `bson:"screen_size,omitempty"`
	Referrer   string       `bson:"referrer,omitempty"`
	IP         string       `bson:"ip,omitempty"`
}

// ScansRepo es el log de escaneos como colección append-only.
type ScansRepo struct {
	coll *mongo.Collection
}

func NewScansRepo(client *mongo.Client, database string) *ScansRepo {
	return &ScansRepo{coll: client.Database(database).Collection(scansCollection)}
}

// EnsureIndexes crea el índice (tag_code, scanned_at desc).
func (r *ScansRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tag_code", Value: 1}, {Key: "scanned_at", Value: -1}},
	})
	return err
}

func (r *ScansRepo) Append(ctx context.Context, e scans.Entry) error {
	_, err := r.coll.InsertOne(ctx, toDoc(e))
	return err
}

func (r *ScansRepo) Recent(ctx context.Context, tagCode string, limit int) ([]scans.Entry, error) {
	if limit <= 0 {
		limit = scans.DefaultLimit
	}
	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "scanned_at", Value: -1}})
	findOptions.SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"tag_code": tagCode}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []scanDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]scans.Entry, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDoc(d))
	}
	return out, nil
}

func toDoc(e scans.Entry) scanDoc {
	d := scanDoc{
		ID:         e.ID,
		TagCode:    e.TagCode,
		ScannedAt:  e.ScannedAt,
		UserAgent:  e.Device.UserAgent,
		Platform:   e.Device.Platform,
		Language:   e.Device.Language,
		ScreenSize: e.Device.ScreenSize,
		Referrer:   e.Device.Referrer,
		IP:         e.IP,
	}
	if e.Location != nil {
		d.Location = &locationDoc{Lat: e.Location.Lat, Lng: e.Location.Lng, Accuracy: e.Location.Accuracy}
	}
	return d
}

func fromDoc(d scanDoc) scans.Entry {
	e := scans.Entry{
		ID:        d.ID,
		TagCode:   d.TagCode,
		ScannedAt: d.ScannedAt,
		Device: scans.Device{
			UserAgent:  d.UserAgent,
			Platform:   d.Platform,
			Language:   d.Language,
			ScreenSize: d.ScreenSize,
			Referrer:   d.Referrer,
		},
		IP: d.IP,
	}
	if d.Location != nil {
		e.Location = &geo.Fix{Point: geo.Point{Lat: d.Location.Lat, Lng: d.Location.Lng}, Accuracy: d.Location.Accuracy}
	}
	return e
}
