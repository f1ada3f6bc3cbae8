package repos

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"kidzplay/internal/domain"
)

func TestMongoFilter(t *testing.T) {
	f := mongoFilter([]Cond{Eq("sellerEmail", "a@x.com"), Like("toyName", "car (red)")})

	if f["sellerEmail"] != "a@x.com" {
		t.Fatalf("exact match not set: %v", f)
	}
	re, ok := f["toyName"].(bson.M)
	if !ok {
		t.Fatalf("substring match should be a regex doc: %v", f)
	}
	if re["$options"] != "i" {
		t.Fatalf("regex must be case-insensitive: %v", re)
	}
	pattern := re["$regex"].(string)
	if !regexp.MustCompile("(?i)" + pattern).MatchString("Big CAR (RED) deluxe") {
		t.Fatalf("pattern %q does not match literally", pattern)
	}
	if regexp.MustCompile(pattern).MatchString("car red") {
		t.Fatalf("pattern %q treats parentheses as a group", pattern)
	}
}

func TestMongoFilterEmpty(t *testing.T) {
	if f := mongoFilter(nil); len(f) != 0 {
		t.Fatalf("want empty filter, got %v", f)
	}
}

func TestMongoInvalidIDs(t *testing.T) {
	ctx := context.Background()
	s := &MongoStore{}

	doc, err := s.FindOne(ctx, domain.Toys, "not-hex")
	if err != nil || doc != nil {
		t.Fatalf("get with bad id: want nil, nil; got %v, %v", doc, err)
	}

	del, err := s.Delete(ctx, domain.Toys, "not-hex")
	if err != nil {
		t.Fatal(err)
	}
	if !del.Acknowledged || del.DeletedCount != 0 {
		t.Fatalf("delete with bad id: %+v", del)
	}

	if _, err := s.Upsert(ctx, domain.Toys, "not-hex", domain.Document{"toyName": "Kite"}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("replace with bad id: want ErrInvalidID, got %v", err)
	}
}

func TestMongoValidIDReachesFilter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	filterID := func(mt *mtest.T) primitive.ObjectID {
		mt.Helper()
		evt := mt.GetStartedEvent()
		if evt == nil {
			mt.Fatal("no command sent")
		}
		id, ok := evt.Command.Lookup("filter", "_id").ObjectIDOK()
		if !ok {
			mt.Fatalf("no ObjectID _id in %s command: %v", evt.CommandName, evt.Command)
		}
		return id
	}

	mt.Run("get", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, db: mt.DB}
		ns := mt.DB.Name() + "." + domain.Toys
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "toyName", Value: "Yo-yo"}}))

		doc, err := s.FindOne(context.Background(), domain.Toys, oid.Hex())
		if err != nil {
			mt.Fatal(err)
		}
		if doc["toyName"] != "Yo-yo" {
			mt.Fatalf("unexpected doc %v", doc)
		}
		if got := filterID(mt); got != oid {
			mt.Fatalf("filter _id = %s, want %s", got.Hex(), oid.Hex())
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := &MongoStore{client: mt.Client, db: mt.DB}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		res, err := s.Delete(context.Background(), domain.Toys, oid.Hex())
		if err != nil {
			mt.Fatal(err)
		}
		if !res.Acknowledged || res.DeletedCount != 1 {
			mt.Fatalf("unexpected ack %+v", res)
		}
		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "delete" {
			mt.Fatalf("want a delete command, got %v", evt)
		}
	})
}
