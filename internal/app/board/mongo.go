package board

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const threadsCollection = "threads"

// mongoRepository keeps one document per thread with its replies embedded.
type mongoRepository struct {
	db      *mongo.Database
	threads *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		db:      db,
		threads: db.Collection(threadsCollection),
	}
}

// EnsureMongoIndexes creates the index backing the board listing.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(threadsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "board", Value: 1}, {Key: "bumped_on", Value: -1}},
	})
	return errors.Wrap(err, "create threads index")
}

func (m *mongoRepository) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, readpref.Primary())
}

func (m *mongoRepository) CreateThread(ctx context.Context, thread *Thread) error {
	doc := *thread
	if doc.Replies == nil {
		// $push needs an array, not null
		doc.Replies = []*Reply{}
	}
	_, err := m.threads.InsertOne(ctx, &doc)
	return errors.Wrap(err, "insert thread")
}

func (m *mongoRepository) ListThreads(ctx context.Context, board string, limit int) ([]*Thread, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "bumped_on", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := m.threads.Find(ctx, bson.M{"board": board}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "find threads of board %q", board)
	}
	defer cur.Close(ctx)

	var threads []*Thread
	if err := cur.All(ctx, &threads); err != nil {
		return nil, errors.Wrap(err, "decode threads")
	}
	for _, t := range threads {
		linkReplies(t)
	}
	return threads, nil
}

func (m *mongoRepository) GetThread(ctx context.Context, board, threadID string) (*Thread, error) {
	var thread Thread
	err := m.threads.FindOne(ctx, bson.M{"_id": threadID, "board": board}).Decode(&thread)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find thread %s", threadID)
	}
	linkReplies(&thread)
	return &thread, nil
}

func (m *mongoRepository) ReportThread(ctx context.Context, board, threadID string) error {
	res, err := m.threads.UpdateOne(ctx,
		bson.M{"_id": threadID, "board": board},
		bson.M{"$set": bson.M{"reported": true}},
	)
	if err != nil {
		return errors.Wrapf(err, "report thread %s", threadID)
	}
	if res.MatchedCount == 0 {
		return ErrThreadNotFound
	}
	return nil
}

func (m *mongoRepository) DeleteThread(ctx context.Context, board, threadID string) error {
	res, err := m.threads.DeleteOne(ctx, bson.M{"_id": threadID, "board": board})
	if err != nil {
		return errors.Wrapf(err, "delete thread %s", threadID)
	}
	if res.DeletedCount == 0 {
		return ErrThreadNotFound
	}
	return nil
}

func (m *mongoRepository) AddReply(ctx context.Context, board string, reply *Reply) error {
	res, err := m.threads.UpdateOne(ctx,
		bson.M{"_id": reply.ThreadID, "board": board},
		bson.M{
			"$push": bson.M{"replies": reply},
			"$set":  bson.M{"bumped_on": reply.CreatedOn},
		},
	)
	if err != nil {
		return errors.Wrapf(err, "push reply to thread %s", reply.ThreadID)
	}
	if res.MatchedCount == 0 {
		return ErrThreadNotFound
	}
	return nil
}

func (m *mongoRepository) GetReply(ctx context.Context, board, threadID, replyID string) (*Reply, error) {
	var thread Thread
	err := m.threads.FindOne(ctx,
		bson.M{"_id": threadID, "board": board, "replies._id": replyID},
		options.FindOne().SetProjection(bson.M{"replies.$": 1}),
	).Decode(&thread)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && len(thread.Replies) == 0) {
		return nil, ErrReplyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find reply %s", replyID)
	}
	reply := thread.Replies[0]
	reply.ThreadID = threadID
	return reply, nil
}

func (m *mongoRepository) ReportReply(ctx context.Context, board, threadID, replyID string) error {
	return m.setReplyField(ctx, board, threadID, replyID, "reported", true)
}

func (m *mongoRepository) SetReplyText(ctx context.Context, board, threadID, replyID, text string) error {
	return m.setReplyField(ctx, board, threadID, replyID, "text", text)
}

func (m *mongoRepository) setReplyField(ctx context.Context, board, threadID, replyID, field string, value interface{}) error {
	res, err := m.threads.UpdateOne(ctx,
		bson.M{"_id": threadID, "board": board, "replies._id": replyID},
		bson.M{"$set": bson.M{"replies.$." + field: value}},
	)
	if err != nil {
		return errors.Wrapf(err, "update reply %s", replyID)
	}
	if res.MatchedCount == 0 {
		return ErrReplyNotFound
	}
	return nil
}

func (m *mongoRepository) ListBoards(ctx context.Context) ([]*Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$board"},
			{Key: "thread_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "bumped_on", Value: bson.D{{Key: "$max", Value: "$bumped_on"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bumped_on", Value: -1}}}},
	}
	cur, err := m.threads.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate boards")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Board       string    `bson:"_id"`
		ThreadCount int64     `bson:"thread_count"`
		BumpedOn    time.Time `bson:"bumped_on"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode boards")
	}

	boards := make([]*Summary, 0, len(rows))
	for _, row := range rows {
		boards = append(boards, &Summary{
			Board:       row.Board,
			ThreadCount: row.ThreadCount,
			BumpedOn:    row.BumpedOn,
		})
	}
	return boards, nil
}

func linkReplies(t *Thread) {
	for _, r := range t.Replies {
		r.ThreadID = t.ID
	}
}
