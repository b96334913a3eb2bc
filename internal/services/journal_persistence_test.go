package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/models"
	"github.com/AnshRaj112/serenify-journal/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestJournalStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := func(mt *mtest.T) string { return mt.DB.Name() + "." + journalCollection }

	mt.Run("insert assigns an id", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := &models.JournalEntry{UserID: "u1", Content: "a calm and peaceful day", MoodScore: sentiment.Positive}
		require.NoError(t, store.Insert(context.Background(), entry))
		assert.False(t, entry.ID.IsZero())

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "insert", evt.CommandName)
	})

	mt.Run("insert error", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := store.Insert(context.Background(), &models.JournalEntry{UserID: "u1"})
		assert.Error(t, err)
	})

	mt.Run("list counts and pages by owner", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		id := primitive.NewObjectID()
		date := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(25)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "user_id", Value: "u1"},
				{Key: "content", Value: "felt tired and sad today"},
				{Key: "mood_score", Value: int32(-1)},
				{Key: "date", Value: date},
				{Key: "created_at", Value: date},
			}),
		)

		entries, total, err := store.List(context.Background(), "u1", ListQuery{Page: 3, Limit: 10, SortBy: "date"})
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		require.Len(t, entries, 1)
		assert.Equal(t, id, entries[0].ID)
		assert.Equal(t, sentiment.Negative, entries[0].MoodScore)
		assert.True(t, date.Equal(entries[0].Date))

		mt.GetStartedEvent() // aggregate for the count
		find := mt.GetStartedEvent()
		require.NotNil(t, find)
		assert.Equal(t, "find", find.CommandName)
		assert.Equal(t, "u1", find.Command.Lookup("filter", "user_id").StringValue())
		assert.Equal(t, int64(20), find.Command.Lookup("skip").AsInt64())
		assert.Equal(t, int64(10), find.Command.Lookup("limit").AsInt64())
		assert.Equal(t, int64(-1), find.Command.Lookup("sort", "date").AsInt64())
	})

	mt.Run("list skip is computed in 64 bits", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
		)

		entries, _, err := store.List(context.Background(), "u1", ListQuery{Page: MaxPage, Limit: MaxLimit, SortBy: "date"})
		require.NoError(t, err)
		assert.Empty(t, entries)

		mt.GetStartedEvent()
		find := mt.GetStartedEvent()
		require.NotNil(t, find)
		assert.Equal(t, int64(MaxPage-1)*MaxLimit, find.Command.Lookup("skip").AsInt64())
	})

	mt.Run("list maps sort keys and rejects unknown ones", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(0)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(0)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
		)

		entries, _, err := store.List(context.Background(), "u1", ListQuery{Page: 1, Limit: 10, SortBy: "moodScore"})
		require.NoError(t, err)
		assert.NotNil(t, entries)
		mt.GetStartedEvent()
		find := mt.GetStartedEvent()
		_, err = find.Command.LookupErr("sort", "mood_score")
		assert.NoError(t, err)

		_, _, err = store.List(context.Background(), "u1", ListQuery{Page: 1, Limit: 10, SortBy: "$where"})
		require.NoError(t, err)
		mt.GetStartedEvent()
		find = mt.GetStartedEvent()
		_, err = find.Command.LookupErr("sort", "date")
		assert.NoError(t, err)
		_, err = find.Command.LookupErr("sort", "$where")
		assert.Error(t, err)
	})

	mt.Run("recent since filters by owner and date", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user_id", Value: "u1"}, {Key: "mood_score", Value: int32(-1)}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user_id", Value: "u1"}, {Key: "mood_score", Value: int32(0)}},
		))

		entries, err := store.RecentSince(context.Background(), "u1", since, 3)
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		find := mt.GetStartedEvent()
		require.NotNil(t, find)
		assert.Equal(t, "u1", find.Command.Lookup("filter", "user_id").StringValue())
		gte := find.Command.Lookup("filter", "date", "$gte").Time()
		assert.True(t, since.Equal(gte))
		assert.Equal(t, int64(3), find.Command.Lookup("limit").AsInt64())
		assert.Equal(t, int64(-1), find.Command.Lookup("sort", "date").AsInt64())
	})

	mt.Run("since sorts ascending", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		entries, err := store.Since(context.Background(), "u1", time.Now())
		require.NoError(t, err)
		assert.Empty(t, entries)

		find := mt.GetStartedEvent()
		assert.Equal(t, int64(1), find.Command.Lookup("sort", "date").AsInt64())
	})

	mt.Run("find error is returned", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := store.RecentSince(context.Background(), "u1", time.Now(), 3)
		assert.Error(t, err)
	})

	mt.Run("delete scoped by owner", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		require.NoError(t, store.Delete(context.Background(), "u1", id))

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "delete", evt.CommandName)
		assert.Equal(t, id, evt.Command.Lookup("deletes", "0", "q", "_id").ObjectID())
		assert.Equal(t, "u1", evt.Command.Lookup("deletes", "0", "q", "user_id").StringValue())
	})

	mt.Run("delete of a foreign or missing entry is not found", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		err := store.Delete(context.Background(), "intruder", primitive.NewObjectID())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		store := NewJournalStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(t, store.EnsureIndexes(context.Background()))
		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "createIndexes", evt.CommandName)
		assert.Equal(t, "idx_user_date", evt.Command.Lookup("indexes", "0", "name").StringValue())
	})
}
